package storefrontsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client talks to a storefront server. It keeps the session and pending
// challenge cookies in its jar, so one Client is one browser.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client with an empty cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // only errors on a bad public suffix list
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// Cookie returns the value of the named cookie the jar would send to the
// server, or "".
func (c *Client) Cookie(name string) string {
	if c.HTTPClient.Jar == nil {
		return ""
	}
	u, err := url.Parse(c.BaseURL + "/api/")
	if err != nil {
		return ""
	}
	for _, ck := range c.HTTPClient.Jar.Cookies(u) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := parseErrorResponse(resp, raw); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyTwoFactor(ctx context.Context, req TwoFactorCodeRequest) (*Envelope, error) {
	var out Envelope
	if err := c.do(ctx, http.MethodPost, "/api/verify-2fa", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EnableTwoFactor(ctx context.Context) (*EnableTwoFactorResponse, error) {
	var out EnableTwoFactorResponse
	if err := c.do(ctx, http.MethodPost, "/api/enable-2fa", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmTwoFactor(ctx context.Context, req TwoFactorCodeRequest) (*Envelope, error) {
	var out Envelope
	if err := c.do(ctx, http.MethodPost, "/api/confirm-2fa", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

func (c *Client) Products(ctx context.Context) (*ProductsResponse, error) {
	var out ProductsResponse
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FeaturedProducts(ctx context.Context) (*ProductsResponse, error) {
	var out ProductsResponse
	if err := c.do(ctx, http.MethodGet, "/api/products/featured", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*ProductResponse, error) {
	var out ProductResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Cart(ctx context.Context) (*CartResponse, error) {
	var out CartResponse
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) (*Envelope, error) {
	var out Envelope
	if err := c.do(ctx, http.MethodPost, "/api/cart", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, req UpdateCartItemRequest) (*Envelope, error) {
	var out Envelope
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/cart/%d", itemID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) (*Envelope, error) {
	var out Envelope
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/%d", itemID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearCart(ctx context.Context) (*Envelope, error) {
	var out Envelope
	if err := c.do(ctx, http.MethodDelete, "/api/cart", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Liveness checks if the service is alive.
func (c *Client) Liveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readiness checks if the service can reach its database.
func (c *Client) Readiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
