package domain

// Viewer is the minimal identity resolved from a bearer credential. It is
// immutable per request and never persisted.
type Viewer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AnonymousViewer is the synthetic identity for unauthenticated requests.
// Anonymous viewers are limited to free-plan entitlements.
var AnonymousViewer = Viewer{ID: "anonymous", Email: ""}

// IsUsable reports whether the upstream returned enough identity to act on.
func (v Viewer) IsUsable() bool {
	return v.ID != "" && v.Email != ""
}
