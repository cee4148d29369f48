package http

import (
	"errors"
	"net/http"

	"github.com/Kareem09qyu/Okta/internal/storefront/service"
	"github.com/Kareem09qyu/Okta/pkg/httpx"
	"github.com/Kareem09qyu/Okta/pkg/slogx"
	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
)

// outcomes are expected failures. They are reported with 200 and
// success=false so clients branch on the envelope, not the status.
var outcomes = []struct {
	err  error
	code string
}{
	{service.ErrDuplicateCredential, storefrontsdk.ErrorCodeDuplicateCredential},
	{service.ErrInvalidCredentials, storefrontsdk.ErrorCodeInvalidCredentials},
	{service.ErrInvalidCode, storefrontsdk.ErrorCodeInvalidCode},
	{service.ErrNotConfigured, storefrontsdk.ErrorCodeNotConfigured},
	{service.ErrUserNotFound, storefrontsdk.ErrorCodeUserNotFound},
	{service.ErrProductNotFound, storefrontsdk.ErrorCodeNotFound},
	{service.ErrCartItemNotFound, storefrontsdk.ErrorCodeNotFound},
	{service.ErrInsufficientStock, storefrontsdk.ErrorCodeInsufficientStock},
}

// writeServiceError maps a service error onto the response envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		storefrontsdk.ErrInvalidRequest.WithDetails(verr.Fields).WriteError(w)
		return
	}

	for _, o := range outcomes {
		if errors.Is(err, o.err) {
			httpx.WriteJSON(w, http.StatusOK, storefrontsdk.Envelope{
				Success: false,
				Message: o.err.Error(),
				Error:   o.code,
			})
			return
		}
	}

	// ErrStoreUnavailable was logged with its cause by the service.
	if !errors.Is(err, service.ErrStoreUnavailable) {
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
	}
	storefrontsdk.ErrServerError.WriteError(w)
}

// decodeBody reads a JSON body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse request", "err", err)
		storefrontsdk.ErrInvalidBody.WriteError(w)
		return false
	}
	return true
}

func invalid(w http.ResponseWriter, details map[string]string) {
	storefrontsdk.ErrInvalidRequest.WithDetails(details).WriteError(w)
}
