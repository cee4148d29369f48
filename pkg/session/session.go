// Package session carries the authenticated user id between requests in a
// cookie. Nothing is stored server side: holding a valid cookie is the whole
// proof of authentication.
package session

import (
	"net/http"
	"time"
)

const (
	// DefaultCookieName is the session cookie name.
	DefaultCookieName = "user_id"
	// DefaultMaxAge is the session lifetime.
	DefaultMaxAge = 7 * 24 * time.Hour
)

// Codec turns a user id into a cookie value and back. Decode reports false
// for anything it did not produce or that is no longer valid.
type Codec interface {
	Encode(userID int64) (string, error)
	Decode(value string) (int64, bool)
}

// Issuer attaches, reads and clears the session cookie.
type Issuer struct {
	Name   string
	Secure bool
	MaxAge time.Duration
	Path   string
	Codec  Codec
}

// NewIssuer returns an Issuer with the default name, lifetime and path.
func NewIssuer(codec Codec, secure bool) *Issuer {
	return &Issuer{
		Name:   DefaultCookieName,
		Secure: secure,
		MaxAge: DefaultMaxAge,
		Path:   "/",
		Codec:  codec,
	}
}

func (i *Issuer) codec() Codec {
	if i.Codec == nil {
		return PlainCodec{}
	}
	return i.Codec
}

// Issue sets a session cookie for userID on w.
func (i *Issuer) Issue(w http.ResponseWriter, userID int64) error {
	value, err := i.codec().Encode(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, i.cookie(value, int(i.MaxAge/time.Second)))
	return nil
}

// Resolve returns the user id carried by the request's session cookie.
func (i *Issuer) Resolve(r *http.Request) (int64, bool) {
	c, err := r.Cookie(i.Name)
	if err != nil || c.Value == "" {
		return 0, false
	}
	return i.codec().Decode(c.Value)
}

// Revoke expires the session cookie on the client.
func (i *Issuer) Revoke(w http.ResponseWriter) {
	http.SetCookie(w, i.cookie("", -1))
}

func (i *Issuer) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     i.Name,
		Value:    value,
		Path:     i.Path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   i.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
