package storefrontsdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Envelope is embedded in every response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	// Error is a machine readable code, set when Success is false.
	Error string `json:"error,omitempty"`

	// Details maps request fields to validation messages.
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Auth
// ============================================================================

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

type RegisterResponse struct {
	Envelope
	UserID int64 `json:"userId,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Envelope
	UserID           int64 `json:"userId,omitempty"`
	RequireTwoFactor bool  `json:"requireTwoFactor,omitempty"`
}

// UserID accepts either a JSON number or a string holding a decimal integer.
// Clients built against the older storefront send both.
type UserID int64

func (u *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*u = 0
		return nil
	}

	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*u = 0
			return nil
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("userId must be an integer, got %s", b)
	}
	*u = UserID(n)
	return nil
}

// TwoFactorCodeRequest is the body of verify-2fa and confirm-2fa.
type TwoFactorCodeRequest struct {
	UserID UserID `json:"userId"`
	Code   string `json:"code"`
}

type EnableTwoFactorResponse struct {
	Envelope
	QRCodeURL  string `json:"qrCodeUrl,omitempty"`
	SecretKey  string `json:"secretKey,omitempty"`
	OTPAuthURL string `json:"otpAuthUrl,omitempty"`
}

// User is the public profile. It never carries the password hash.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Address   *string   `json:"address"`
	Phone     *string   `json:"phone"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MeResponse struct {
	Envelope
	User *User `json:"user,omitempty"`
}

// ============================================================================
// Catalog
// ============================================================================

type Product struct {
	ID                 int64     `json:"id"`
	CategoryID         *int64    `json:"category_id"`
	Name               string    `json:"name"`
	Description        *string   `json:"description"`
	PriceCents         int64     `json:"price_cents"`
	DiscountPriceCents *int64    `json:"discount_price_cents"`
	StockQuantity      int       `json:"stock_quantity"`
	ImageURL           *string   `json:"image_url"`
	IsFeatured         bool      `json:"is_featured"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ProductsResponse struct {
	Envelope
	Products []Product `json:"products"`
}

type ProductResponse struct {
	Envelope
	Product *Product `json:"product,omitempty"`
}

// ============================================================================
// Cart
// ============================================================================

type CartItem struct {
	ID                int64     `json:"id"`
	ProductID         int64     `json:"product_id"`
	Quantity          int       `json:"quantity"`
	ProductName       string    `json:"product_name"`
	ProductPriceCents int64     `json:"product_price_cents"`
	ProductImage      *string   `json:"product_image"`
	CreatedAt         time.Time `json:"created_at"`
}

type CartResponse struct {
	Envelope
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"totalCents"`
}

type AddToCartRequest struct {
	ProductID int64 `json:"productId"`
	// Quantity defaults to 1 when omitted.
	Quantity *int `json:"quantity,omitempty"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime,omitempty"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}
