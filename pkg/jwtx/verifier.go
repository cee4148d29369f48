package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures what a verifier enforces beyond the signature.
type VerifyOptions struct {
	// Issuer the token must carry. Empty means "don't care".
	Issuer string
	// Purpose the token must have been minted for.
	Purpose string
	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrPurpose     = errors.New("jwtx: purpose mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// HS256Verifier checks tokens signed by an HS256Signer with the same key.
type HS256Verifier struct {
	key  []byte
	opts VerifyOptions
}

func NewVerifierHS256(key []byte, opts VerifyOptions) *HS256Verifier {
	return &HS256Verifier{key: key, opts: opts}
}

func (v *HS256Verifier) now() time.Time {
	if v.opts.Now != nil {
		return v.opts.Now().UTC()
	}
	return time.Now().UTC()
}

func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	// exp/nbf are checked below against our own clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenUnverifiable):
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	default:
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidatePurpose(v.opts.Purpose); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(v.now(), v.opts.Leeway); err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" {
		return Claims{}, ErrMalformed
	}

	return claims, nil
}
