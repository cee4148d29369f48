// Package totpx implements RFC 6238 time-based one-time passwords for
// second-factor enrollment and verification, on top of pquerna/otp.
package totpx

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"net/url"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// SecretSize is the shared secret length in bytes (160 bits).
	SecretSize = 20
	// Period is the length of one time step.
	Period = 30 * time.Second
	// DefaultWindow accepts the previous and next step as well as the current one.
	DefaultWindow = 1
	// DefaultQRSize is the edge length in pixels of enrollment QR codes.
	DefaultQRSize = 200
)

var ErrInvalidSecret = errors.New("totpx: invalid secret")

// Secret is a freshly generated shared secret and its provisioning URI.
type Secret struct {
	Base32 string
	URI    string
}

// Engine generates and verifies codes for a single issuer. A nil Now uses
// the wall clock.
type Engine struct {
	Issuer string
	Now    func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func validateOpts(window int) totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    uint(Period / time.Second),
		Skew:      uint(max(window, 0)), // #nosec G115 -- clamped above
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

// GenerateSecret creates a random 160-bit secret for username.
func (e *Engine) GenerateSecret(username string) (Secret, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      e.Issuer,
		AccountName: username,
		Period:      uint(Period / time.Second),
		SecretSize:  SecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return Secret{}, fmt.Errorf("generate totp secret: %w", err)
	}

	return Secret{
		Base32: key.Secret(),
		URI:    e.ProvisioningURI(username, key.Secret()),
	}, nil
}

// ProvisioningURI builds the otpauth URI authenticator apps scan:
//
//	otpauth://totp/<issuer>:<username>?secret=<secret>&issuer=<issuer>
func (e *Engine) ProvisioningURI(username, secret string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		url.PathEscape(e.Issuer),
		url.PathEscape(username),
		secret,
		url.QueryEscape(e.Issuer),
	)
}

// Verify reports whether code matches secret at the current step or any step
// within ±window of it. Codes of the wrong length simply do not match; a
// secret that is not valid base32 is an error.
func (e *Engine) Verify(secret, code string, window int) (bool, error) {
	ok, err := totp.ValidateCustom(code, secret, e.now().UTC(), validateOpts(window))
	switch {
	case err == nil:
		return ok, nil
	case errors.Is(err, otp.ErrValidateInputInvalidLength):
		return false, nil
	case errors.Is(err, otp.ErrValidateSecretInvalidBase32):
		return false, ErrInvalidSecret
	default:
		return false, fmt.Errorf("validate totp code: %w", err)
	}
}

// CodeAt returns the code for secret at time t.
func (e *Engine) CodeAt(secret string, t time.Time) (string, error) {
	code, err := totp.GenerateCodeCustom(secret, t.UTC(), validateOpts(0))
	if err != nil {
		if errors.Is(err, otp.ErrValidateSecretInvalidBase32) {
			return "", ErrInvalidSecret
		}
		return "", fmt.Errorf("generate totp code: %w", err)
	}
	return code, nil
}

// Code returns the code for secret at the engine's current time.
func (e *Engine) Code(secret string) (string, error) {
	return e.CodeAt(secret, e.now())
}

// QRDataURI renders uri as a size×size PNG QR code and returns it as a
// data:image/png;base64 URI.
func QRDataURI(uri string, size int) (string, error) {
	if size <= 0 {
		size = DefaultQRSize
	}

	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return "", fmt.Errorf("parse otpauth uri: %w", err)
	}

	img, err := key.Image(size, size)
	if err != nil {
		return "", fmt.Errorf("render qr code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
