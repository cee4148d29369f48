package storefront_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit runs against the production limits.
func TestLoginRateLimit(t *testing.T) {
	client := storefrontsdk.NewClient(setupStorefront(t, nil))

	var limited bool
	for range 20 {
		_, err := client.Login(t.Context(), storefrontsdk.LoginRequest{Username: "mallory", Password: "guess"})
		if err == nil {
			continue
		}
		var apiErr *storefrontsdk.APIError
		require.True(t, errors.As(err, &apiErr), "unexpected error: %v", err)
		require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		require.Equal(t, storefrontsdk.ErrorCodeRateLimited, apiErr.Code)
		limited = true
		break
	}
	require.True(t, limited, "login was never throttled")
}
