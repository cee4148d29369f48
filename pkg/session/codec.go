package session

import (
	"strconv"
	"time"

	"github.com/Kareem09qyu/Okta/pkg/jwtx"
)

// PlainCodec stores the user id as a decimal string.
type PlainCodec struct{}

func (PlainCodec) Encode(userID int64) (string, error) {
	return strconv.FormatInt(userID, 10), nil
}

func (PlainCodec) Decode(value string) (int64, bool) {
	return parseUserID(value)
}

// JWTCodec stores the user id as the subject of a signed token, so a client
// cannot swap in another user's id.
type JWTCodec struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	Purpose  string
	TTL      time.Duration
	Now      func() time.Time
}

// NewJWTCodec builds an HS256 codec for purpose from key.
func NewJWTCodec(key []byte, issuer, purpose string, ttl time.Duration) (*JWTCodec, error) {
	signer, err := jwtx.NewSignerHS256(key)
	if err != nil {
		return nil, err
	}
	return &JWTCodec{
		Signer: signer,
		Verifier: jwtx.NewVerifierHS256(key, jwtx.VerifyOptions{
			Issuer:  issuer,
			Purpose: purpose,
			Leeway:  5 * time.Second,
		}),
		Issuer:  issuer,
		Purpose: purpose,
		TTL:     ttl,
	}, nil
}

func (c *JWTCodec) Encode(userID int64) (string, error) {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	claims := jwtx.NewClaims(strconv.FormatInt(userID, 10), c.Purpose, c.Issuer, c.TTL, now)
	return c.Signer.Sign(claims)
}

func (c *JWTCodec) Decode(value string) (int64, bool) {
	claims, err := c.Verifier.Verify(value)
	if err != nil {
		return 0, false
	}
	return parseUserID(claims.Subject)
}

func parseUserID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
