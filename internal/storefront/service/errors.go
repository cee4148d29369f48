package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Kareem09qyu/Okta/pkg/slogx"
)

var (
	ErrDuplicateCredential = errors.New("username or email already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidCode         = errors.New("invalid two-factor code")
	ErrNotConfigured       = errors.New("two-factor authentication is not configured")
	ErrUserNotFound        = errors.New("user not found")

	// ErrStoreUnavailable hides any storage or crypto fault from callers.
	// The cause is logged where it happens.
	ErrStoreUnavailable = errors.New("service temporarily unavailable")

	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCartItemNotFound  = errors.New("cart item not found")
)

// ValidationError reports malformed input, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

// unavailable logs err against the request and returns ErrStoreUnavailable.
func unavailable(ctx context.Context, op string, err error) error {
	slogx.FromContext(ctx).Error("storefront fault", "op", op, "err", err)
	return ErrStoreUnavailable
}
