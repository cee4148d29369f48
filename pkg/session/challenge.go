package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Kareem09qyu/Okta/pkg/jwtx"
)

const (
	// ChallengeCookieName holds the pending second-factor challenge.
	ChallengeCookieName = "storefront_2fa"
	// ChallengeTTL bounds the time between password and code entry.
	ChallengeTTL = 5 * time.Minute
)

// Challenge records that a user passed the password step and still owes a
// second factor. It is always signed, whatever codec the session uses.
type Challenge struct {
	issuer *Issuer
}

// NewChallenge returns a challenge cookie signed with key.
func NewChallenge(key []byte, tokenIssuer string, secure bool) (*Challenge, error) {
	codec, err := NewJWTCodec(key, tokenIssuer, jwtx.PurposeChallenge, ChallengeTTL)
	if err != nil {
		return nil, fmt.Errorf("challenge codec: %w", err)
	}
	return &Challenge{issuer: &Issuer{
		Name:   ChallengeCookieName,
		Secure: secure,
		MaxAge: ChallengeTTL,
		Path:   "/api/",
		Codec:  codec,
	}}, nil
}

// Begin marks userID as pending a second factor.
func (c *Challenge) Begin(w http.ResponseWriter, userID int64) error {
	return c.issuer.Issue(w, userID)
}

// Pending reports the user id awaiting a second factor, if any.
func (c *Challenge) Pending(r *http.Request) (int64, bool) {
	return c.issuer.Resolve(r)
}

// Clear drops the pending challenge.
func (c *Challenge) Clear(w http.ResponseWriter) {
	c.issuer.Revoke(w)
}
