package storefrontsdk

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	requiredReason = "required"
	onlyAlphanum   = "must only contain a-z, A-Z, 0-9, _, . or -"
)

var reUsername = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Validate checks registration fields. Returns field → message, or nil.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)

	username := strings.TrimSpace(r.Username)
	switch {
	case username == "":
		errs["username"] = requiredReason
	case len(username) < 3 || len(username) > 32:
		errs["username"] = "must be 3-32 characters"
	case !reUsername.MatchString(username):
		errs["username"] = onlyAlphanum
	}

	email := strings.TrimSpace(r.Email)
	switch {
	case email == "":
		errs["email"] = requiredReason
	case len(email) > 254:
		errs["email"] = "too long (max 254)"
	default:
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			errs["email"] = "must be a valid email address"
		}
	}

	switch {
	case r.Password == "":
		errs["password"] = requiredReason
	case utf8.RuneCountInString(r.Password) < 6:
		errs["password"] = "too short (min 6)"
	case len(r.Password) > 128:
		errs["password"] = "too long (max 128)"
	}

	if utf8.RuneCountInString(r.FullName) > 100 {
		errs["fullName"] = "too long (max 100)"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks that both login fields are present. Credential checks
// happen server side so a bad password and a bad username look the same.
func (r LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = requiredReason
	}
	if r.Password == "" {
		errs["password"] = requiredReason
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate requires a positive user id and a non-empty code. A code that is
// present but not six digits is left to the verifier, which rejects it as a
// wrong code.
func (r TwoFactorCodeRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.UserID <= 0 {
		errs["userId"] = requiredReason
	}
	if strings.TrimSpace(r.Code) == "" {
		errs["code"] = requiredReason
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r AddToCartRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.ProductID <= 0 {
		errs["productId"] = requiredReason
	}
	if r.Quantity != nil && *r.Quantity <= 0 {
		errs["quantity"] = "must be positive"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Qty returns the requested quantity, defaulting to 1.
func (r AddToCartRequest) Qty() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}
