package storefrontsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Kareem09qyu/Okta/pkg/httpx"
)

// Error codes carried in Envelope.Error.
const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeDuplicateCredential = "duplicate_credential"
	ErrorCodeInvalidCredentials  = "invalid_credentials"
	ErrorCodeInvalidCode         = "invalid_code"
	ErrorCodeNotConfigured       = "two_factor_not_configured"
	ErrorCodeUserNotFound        = "user_not_found"
	ErrorCodeUnauthorized        = "unauthorized"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeInsufficientStock   = "insufficient_stock"
	ErrorCodeRateLimited         = "rate_limit_exceeded"
	ErrorCodeServerError         = "server_error"
)

// APIError is a non-2xx storefront response. Handlers write it with
// WriteError and the client returns it from failed calls.
type APIError struct {
	StatusCode int               `json:"-"`
	Code       string            `json:"error"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes e as an unsuccessful envelope.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, Envelope{
		Success: false,
		Message: e.Message,
		Error:   e.Code,
		Details: e.Details,
	})
}

// WithDetails returns a copy of e carrying field level details.
func (e *APIError) WithDetails(details map[string]string) *APIError {
	cp := *e
	cp.Details = details
	return &cp
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed or missing required fields",
	}

	ErrInvalidBody = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "invalid JSON body",
	}

	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "not logged in",
	}

	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "not found",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// NewAPIError creates an APIError with the given status, code and message.
func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Error,
			Message:    env.Message,
			Details:    env.Details,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
