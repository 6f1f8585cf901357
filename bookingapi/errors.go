package bookingapi

import "fmt"

// errorEnvelope is the booking API's error body:
// {"error": {"code": "...", "description": "..."}}.
type errorEnvelope struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// APIError is a non-2xx answer from the booking API. Code and Description
// come from the structured envelope when present; Description falls back to
// a generic message otherwise.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("booking api: %s: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("booking api: status %d: %s", e.StatusCode, e.Description)
}

// Client side errors (4xx) should not trip the circuit breaker; only
// transport failures and 5xx count against it.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}
