package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinHMACKeySize is the shortest HS256 key accepted, in bytes.
const MinHMACKeySize = 32

// Signer is anything that can sign storefront claims.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with a shared HMAC-SHA256 key.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 returns a signer for key, which must be at least
// MinHMACKeySize bytes.
func NewSignerHS256(key []byte) (*HS256Signer, error) {
	if len(key) < MinHMACKeySize {
		return nil, fmt.Errorf("jwtx: hmac key too short: %d bytes", len(key))
	}
	return &HS256Signer{key: key}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

func (s *HS256Signer) Sign(c Claims) (string, error) {
	if c.Subject == "" {
		return "", errors.New("jwtx: missing subject")
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}
