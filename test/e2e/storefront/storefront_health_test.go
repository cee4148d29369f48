package storefront_test

import (
	"testing"

	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	client := storefrontsdk.NewClient(setupStorefront(t, relaxedLimits))

	live, err := client.Liveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := client.Readiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks["database"])
}
