package domain

// Plan is an entitlement grant. Only the id and expiry cross into a
// passport; richer plan metadata (access rules, pricing, provider IDs)
// never does.
type Plan struct {
	ID  string `json:"id"`
	Exp int64  `json:"exp"` // unix seconds
}

// SubscriberInfo is the payload handed to the access-control generate
// endpoint. The Email field carries the viewer's ID, not their email
// address; that is the upstream protocol's contract, kept as-is.
type SubscriberInfo struct {
	Email string `json:"email"`
	Plans []Plan `json:"plans"`
}
