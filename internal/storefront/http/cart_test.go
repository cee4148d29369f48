package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	storefronthttp "github.com/Kareem09qyu/Okta/internal/storefront/http"
	"github.com/Kareem09qyu/Okta/pkg/httpx"
	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
	"github.com/stretchr/testify/require"
)

func TestCatalogRoutes(t *testing.T) {
	ts := newRelaxedServer(t)
	ctx := context.Background()
	c := ts.client()

	mug := ts.product(t, "Mug", 1250, 5, false)
	ts.product(t, "Lamp", 4999, 2, true)

	all, err := c.Products(ctx)
	require.NoError(t, err)
	require.True(t, all.Success)
	require.Len(t, all.Products, 2)
	require.Equal(t, "Lamp", all.Products[0].Name)

	featured, err := c.FeaturedProducts(ctx)
	require.NoError(t, err)
	require.Len(t, featured.Products, 1)
	require.Equal(t, "Lamp", featured.Products[0].Name)

	p, err := c.Product(ctx, mug)
	require.NoError(t, err)
	require.Equal(t, int64(1250), p.Product.PriceCents)

	_, err = c.Product(ctx, mug+100)
	var apiErr *storefrontsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	resp, env := get(t, ts.URL+"/api/products/abc")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, env.Details, "id")
}

func get(t *testing.T, url string) (*http.Response, storefrontsdk.Envelope) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env storefrontsdk.Envelope
	_ = decodeJSON(resp, &env)
	return resp, env
}

func TestCartRequiresSession(t *testing.T) {
	ts := newRelaxedServer(t)

	_, err := ts.client().Cart(context.Background())
	var apiErr *storefrontsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, storefrontsdk.ErrorCodeUnauthorized, apiErr.Code)

	_, err = ts.client().EnableTwoFactor(context.Background())
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestCartRoutes(t *testing.T) {
	ts := newRelaxedServer(t)
	ctx := context.Background()
	alice, _ := ts.signup(t, "alice")
	bob, _ := ts.signup(t, "bob")

	mug := ts.product(t, "Mug", 1250, 3, false)
	lamp := ts.product(t, "Lamp", 4999, 1, false)

	res, err := alice.AddToCart(ctx, storefrontsdk.AddToCartRequest{ProductID: mug})
	require.NoError(t, err)
	require.True(t, res.Success)

	two := 2
	res, err = alice.AddToCart(ctx, storefrontsdk.AddToCartRequest{ProductID: mug, Quantity: &two})
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = alice.AddToCart(ctx, storefrontsdk.AddToCartRequest{ProductID: mug})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, storefrontsdk.ErrorCodeInsufficientStock, res.Error)

	res, err = alice.AddToCart(ctx, storefrontsdk.AddToCartRequest{ProductID: lamp})
	require.NoError(t, err)
	require.True(t, res.Success)

	cart, err := alice.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	require.Equal(t, int64(3*1250+4999), cart.TotalCents)
	lampItem := cart.Items[0]
	require.Equal(t, "Lamp", lampItem.ProductName)

	// Bob sees an empty cart and cannot touch Alice's lines.
	bobCart, err := bob.Cart(ctx)
	require.NoError(t, err)
	require.Empty(t, bobCart.Items)
	res, err = bob.RemoveCartItem(ctx, lampItem.ID)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, storefrontsdk.ErrorCodeNotFound, res.Error)

	res, err = alice.UpdateCartItem(ctx, lampItem.ID, storefrontsdk.UpdateCartItemRequest{Quantity: 0})
	require.NoError(t, err)
	require.True(t, res.Success)

	cart, err = alice.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	res, err = alice.ClearCart(ctx)
	require.NoError(t, err)
	require.True(t, res.Success)
	cart, err = alice.Cart(ctx)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Zero(t, cart.TotalCents)
}

func TestHealthRoutes(t *testing.T) {
	ts := newRelaxedServer(t)
	ctx := context.Background()

	live, err := ts.client().Liveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := ts.client().Readiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks["database"])

	require.NoError(t, ts.store.Close())
	_, err = ts.client().Readiness(ctx)
	var apiErr *storefrontsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestSwaggerIsServed(t *testing.T) {
	ts := newRelaxedServer(t)

	resp, err := http.Get(ts.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginIsThrottled(t *testing.T) {
	strict := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	ts := newTestServer(t, storefronthttp.Limits{Credential: strict, Account: relaxed, Browse: relaxed})

	body := `{"username":"alice","password":"wrong"}`
	for range 2 {
		resp, env := post(t, ts.URL+"/api/login", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, storefrontsdk.ErrorCodeInvalidCredentials, env.Error)
	}

	resp, env := post(t, ts.URL+"/api/login", body)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, storefrontsdk.ErrorCodeRateLimited, env.Error)

	// Another username from the same address has its own bucket.
	resp, _ = post(t, ts.URL+"/api/login", `{"username":"bob","password":"wrong"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
