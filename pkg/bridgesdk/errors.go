package bridgesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nimbusott/access-bridge/pkg/httpx"
)

// Bridge error codes. These are the wire-level codes the service emits and
// the codes the upstream access-control APIs emit, so the same taxonomy is
// shared by the server handlers and the SDK client.
const (
	ErrorCodeBadRequest       = "bad_request"
	ErrorCodeParameterMissing = "parameter_missing"
	ErrorCodeParameterInvalid = "parameter_invalid"
	ErrorCodeUnauthorized     = "unauthorized"
	ErrorCodeForbidden        = "forbidden"
	ErrorCodeNotFound         = "not_found"
	ErrorCodeMethodNotAllowed = "method_not_allowed"
	ErrorCodeInternal         = "internal_error"
)

// BridgeError is a typed access-bridge error. It implements the error
// interface and is used both by the server (to write HTTP responses) and by
// the SDK client (to represent upstream rejections).
type BridgeError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the bridge error code (e.g. "unauthorized", "parameter_missing")
	Code string `json:"code"`

	// Description is a human-readable description of the error
	Description string `json:"description"`
}

// Error implements the error interface.
func (e *BridgeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches bridge errors by code, so derived errors with customised
// descriptions still satisfy errors.Is against the predefined values.
func (e *BridgeError) Is(target error) bool {
	t, ok := target.(*BridgeError)
	return ok && e.Code == t.Code
}

// WithDescription returns a copy of e carrying a more specific description.
func (e *BridgeError) WithDescription(description string) *BridgeError {
	return &BridgeError{
		StatusCode:  e.StatusCode,
		Code:        e.Code,
		Description: description,
	}
}

// WriteError writes this BridgeError to an HTTP response writer using the
// bridge wire shape: {"errors":[{"code":..., "description":...}]}.
func (e *BridgeError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Errors: []ErrorItem{{Code: e.Code, Description: e.Description}},
	})
}

var (
	// ErrBadRequest is returned when the request was not constructed correctly.
	ErrBadRequest = &BridgeError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeBadRequest,
		Description: "The request was not constructed correctly.",
	}

	// ErrParameterMissing is returned when a required parameter is absent.
	ErrParameterMissing = &BridgeError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeParameterMissing,
		Description: "Required parameter is missing.",
	}

	// ErrParameterInvalid is returned when a parameter is present but malformed.
	ErrParameterInvalid = &BridgeError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeParameterInvalid,
		Description: "Parameter is invalid.",
	}

	// ErrUnauthorized is returned for missing or invalid auth credentials.
	ErrUnauthorized = &BridgeError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "Missing or invalid auth credentials.",
	}

	// ErrForbidden is returned when access to the requested resource is not allowed,
	// including rejected or expired refresh tokens.
	ErrForbidden = &BridgeError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "Access to the requested resource is not allowed.",
	}

	// ErrNotFound is returned for unmatched routes and missing upstream resources.
	ErrNotFound = &BridgeError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "The requested resource could not be found.",
	}

	// ErrMethodNotAllowed is returned when the HTTP method is not supported on
	// the given resource.
	ErrMethodNotAllowed = &BridgeError{
		StatusCode:  http.StatusMethodNotAllowed,
		Code:        ErrorCodeMethodNotAllowed,
		Description: "The used HTTP method is not supported on the given resource.",
	}

	// ErrInternal is returned for unexpected failures, including upstream
	// responses the bridge cannot interpret.
	ErrInternal = &BridgeError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeInternal,
		Description: "An error was encountered while processing the request. Please try again.",
	}
)

// byCode indexes the predefined errors for upstream code translation.
var byCode = map[string]*BridgeError{
	ErrorCodeBadRequest:       ErrBadRequest,
	ErrorCodeParameterMissing: ErrParameterMissing,
	ErrorCodeParameterInvalid: ErrParameterInvalid,
	ErrorCodeUnauthorized:     ErrUnauthorized,
	ErrorCodeForbidden:        ErrForbidden,
	ErrorCodeNotFound:         ErrNotFound,
	ErrorCodeMethodNotAllowed: ErrMethodNotAllowed,
	ErrorCodeInternal:         ErrInternal,
}

// NewParameterMissing returns a parameter_missing error naming the parameter.
func NewParameterMissing(parameterName string) *BridgeError {
	return ErrParameterMissing.WithDescription(
		fmt.Sprintf("Required parameter %s is missing.", parameterName),
	)
}

// NewParameterInvalid returns a parameter_invalid error naming the parameter,
// with an optional reason appended.
func NewParameterInvalid(parameterName, reason string) *BridgeError {
	description := fmt.Sprintf("Parameter %s is invalid.", parameterName)
	if reason != "" {
		description += " " + reason
	}
	return ErrParameterInvalid.WithDescription(description)
}

// ParseErrorResponse translates a non-2xx HTTP response into a BridgeError.
// Upstream bodies in the bridge error shape are translated code for code,
// keeping the upstream description; unknown codes become bad_request, and
// bodies not in the bridge shape fall back to an error derived from the
// HTTP status. Raw upstream shapes never leak past this function. Returns
// nil for 2xx responses.
func ParseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && len(errResp.Errors) > 0 {
		first := errResp.Errors[0]
		if known, ok := byCode[first.Code]; ok {
			return known.WithDescription(first.Description)
		}
		return ErrBadRequest.WithDescription(first.Description)
	}

	// Body was not in the bridge error shape; fall back to the HTTP status.
	fallback := ErrBadRequest
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		fallback = ErrUnauthorized
	case http.StatusForbidden:
		fallback = ErrForbidden
	case http.StatusNotFound:
		fallback = ErrNotFound
	case http.StatusMethodNotAllowed:
		fallback = ErrMethodNotAllowed
	}
	if resp.StatusCode >= 500 {
		fallback = ErrInternal
	}
	return fallback.WithDescription(
		fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	)
}
