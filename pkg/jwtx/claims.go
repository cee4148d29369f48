package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. A token minted for one purpose never verifies as another.
const (
	PurposeSession   = "session"
	PurposeChallenge = "2fa_challenge"
)

// Claims carried by storefront tokens. Subject is the decimal user id.
type Claims struct {
	jwt.RegisteredClaims

	// Purpose separates session tokens from pending second-factor challenges.
	Purpose string `json:"pur"`
}

// NewClaims builds claims for subject valid for ttl from now.
func NewClaims(subject, purpose, issuer string, ttl time.Duration, now time.Time) Claims {
	now = now.UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Purpose: purpose,
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidatePurpose checks the token was minted for expected.
func (c *Claims) ValidatePurpose(expected string) error {
	if c.Purpose != expected {
		return ErrPurpose
	}
	return nil
}

// ValidateExpiry checks exp and nbf against now, allowing leeway either way
// for clock skew.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
