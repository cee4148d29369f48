package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
	"github.com/Kareem09qyu/Okta/internal/storefront/store"
	"github.com/Kareem09qyu/Okta/pkg/cryptox"
	"github.com/Kareem09qyu/Okta/pkg/slogx"
	"github.com/Kareem09qyu/Okta/pkg/totpx"
)

// AuthService drives registration, password login and the TOTP second
// factor. It never touches the transport: operations that change who is
// logged in return a domain.SessionDecision for the caller to apply.
type AuthService struct {
	Store store.Store
	TOTP  *totpx.Engine

	// Window is how many 30s steps of drift either side of now are accepted.
	Window int

	// QRSize is the enrollment QR code edge in pixels; zero uses totpx.DefaultQRSize.
	QRSize int
}

// Register creates a user together with a disabled second-factor record.
// Both rows are written in one transaction.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (int64, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.FullName = strings.TrimSpace(reg.FullName)
	if err := validateRegistration(reg); err != nil {
		return 0, err
	}

	_, err := s.Store.Users().FindByUsernameOrEmail(ctx, reg.Username, reg.Email)
	switch {
	case err == nil:
		return 0, ErrDuplicateCredential
	case !errors.Is(err, store.ErrNotFound):
		return 0, unavailable(ctx, "register.lookup", err)
	}

	hash, err := cryptox.HashPassword(reg.Password)
	if err != nil {
		return 0, unavailable(ctx, "register.hash", err)
	}

	secret, err := s.TOTP.GenerateSecret(reg.Username)
	if err != nil {
		return 0, unavailable(ctx, "register.secret", err)
	}

	nu := domain.NewUser{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
	}
	if reg.FullName != "" {
		nu.FullName = &reg.FullName
	}

	var userID int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Users().Insert(ctx, nu)
		if err != nil {
			return err
		}
		if err := tx.TwoFactor().Insert(ctx, id, secret.Base32); err != nil {
			return err
		}
		userID = id
		return nil
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a race with a concurrent registration after the lookup.
		return 0, ErrDuplicateCredential
	}
	if err != nil {
		return 0, unavailable(ctx, "register.insert", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", userID)
	return userID, nil
}

func validateRegistration(reg domain.Registration) error {
	fields := make(map[string]string)
	if reg.Username == "" {
		fields["username"] = "required"
	}
	if reg.Email == "" {
		fields["email"] = "required"
	}
	if reg.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Login checks the password. An unknown username and a wrong password fail
// identically. When the second factor is enabled no session is issued yet.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		fields := make(map[string]string)
		if username == "" {
			fields["username"] = "required"
		}
		if password == "" {
			fields["password"] = "required"
		}
		return domain.LoginResult{}, &ValidationError{Fields: fields}
	}

	u, err := s.Store.Users().FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		log.Info("login rejected", "reason", "unknown_user")
		return domain.LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.LoginResult{}, unavailable(ctx, "login.lookup", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login rejected", "reason", "bad_password", "user_id", u.ID)
			return domain.LoginResult{}, ErrInvalidCredentials
		}
		return domain.LoginResult{}, unavailable(ctx, "login.verify", err)
	}

	s.upgradeHash(ctx, u, password)

	rec, err := s.Store.TwoFactor().FindByUserID(ctx, u.ID)
	switch {
	case err == nil && rec.IsEnabled:
		return domain.LoginResult{
			UserID:           u.ID,
			RequireTwoFactor: true,
			Session:          domain.SessionDecision{Action: domain.SessionChallenge, UserID: u.ID},
		}, nil
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return domain.LoginResult{}, unavailable(ctx, "login.two_factor", err)
	}

	return domain.LoginResult{
		UserID:  u.ID,
		Session: domain.SessionDecision{Action: domain.SessionIssue, UserID: u.ID},
	}, nil
}

// upgradeHash rewrites legacy or outdated hashes once the plaintext is known.
// Failure only costs the upgrade, not the login.
func (s *AuthService) upgradeHash(ctx context.Context, u domain.User, password string) {
	if !cryptox.NeedsRehash(u.PasswordHash) {
		return
	}
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Warn("password rehash failed", "user_id", u.ID, "err", err)
		return
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		log.Warn("password rehash failed", "user_id", u.ID, "err", err)
		return
	}
	log.Info("password hash upgraded", "user_id", u.ID)
}

// VerifyTwoFactor completes a login that was left pending a second factor.
func (s *AuthService) VerifyTwoFactor(ctx context.Context, userID int64, code string) (domain.LoginResult, error) {
	if err := s.checkCode(ctx, userID, code, "verify"); err != nil {
		return domain.LoginResult{}, err
	}
	return domain.LoginResult{
		UserID:  userID,
		Session: domain.SessionDecision{Action: domain.SessionIssue, UserID: userID},
	}, nil
}

// EnrollTwoFactor returns the user's provisioning secret and QR code. The
// secret is created on first call and reused afterwards, so calling it twice
// before confirming yields the same secret.
func (s *AuthService) EnrollTwoFactor(ctx context.Context, userID int64) (domain.TwoFactorEnrollment, error) {
	username, err := s.Store.Users().FindUsernameByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.TwoFactorEnrollment{}, ErrUserNotFound
	}
	if err != nil {
		return domain.TwoFactorEnrollment{}, unavailable(ctx, "enroll.user", err)
	}

	secret, err := s.secretFor(ctx, userID, username)
	if err != nil {
		return domain.TwoFactorEnrollment{}, err
	}

	uri := s.TOTP.ProvisioningURI(username, secret)
	size := s.QRSize
	if size <= 0 {
		size = totpx.DefaultQRSize
	}
	qr, err := totpx.QRDataURI(uri, size)
	if err != nil {
		return domain.TwoFactorEnrollment{}, unavailable(ctx, "enroll.qr", err)
	}

	return domain.TwoFactorEnrollment{
		QRCodeURL:  qr,
		SecretKey:  secret,
		OTPAuthURL: uri,
	}, nil
}

func (s *AuthService) secretFor(ctx context.Context, userID int64, username string) (string, error) {
	rec, err := s.Store.TwoFactor().FindByUserID(ctx, userID)
	if err == nil {
		return rec.SecretKey, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", unavailable(ctx, "enroll.lookup", err)
	}

	gen, err := s.TOTP.GenerateSecret(username)
	if err != nil {
		return "", unavailable(ctx, "enroll.secret", err)
	}
	err = s.Store.TwoFactor().Insert(ctx, userID, gen.Base32)
	if errors.Is(err, store.ErrAlreadyExists) {
		// A concurrent enroll won; use its secret.
		rec, err = s.Store.TwoFactor().FindByUserID(ctx, userID)
		if err != nil {
			return "", unavailable(ctx, "enroll.reload", err)
		}
		return rec.SecretKey, nil
	}
	if err != nil {
		return "", unavailable(ctx, "enroll.insert", err)
	}
	return gen.Base32, nil
}

// ConfirmTwoFactor enables the second factor once the user proves they can
// produce a valid code. Confirming an enabled record again is a no-op.
func (s *AuthService) ConfirmTwoFactor(ctx context.Context, userID int64, code string) error {
	if err := s.checkCode(ctx, userID, code, "confirm"); err != nil {
		return err
	}
	err := s.Store.TwoFactor().Enable(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotConfigured
	}
	if err != nil {
		return unavailable(ctx, "confirm.enable", err)
	}
	slogx.FromContext(ctx).Info("two-factor enabled", "user_id", userID)
	return nil
}

func (s *AuthService) checkCode(ctx context.Context, userID int64, code, op string) error {
	rec, err := s.Store.TwoFactor().FindByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotConfigured
	}
	if err != nil {
		return unavailable(ctx, op+".lookup", err)
	}

	ok, err := s.TOTP.Verify(rec.SecretKey, strings.TrimSpace(code), s.Window)
	if err != nil {
		return unavailable(ctx, op+".totp", err)
	}
	if !ok {
		slogx.FromContext(ctx).Info("two-factor code rejected", "op", op, "user_id", userID)
		return ErrInvalidCode
	}
	return nil
}

// CurrentUser resolves a session user id to its public profile. A missing
// session or a user that no longer exists is reported as ok=false.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64, hasSession bool) (domain.PublicUser, bool, error) {
	if !hasSession {
		return domain.PublicUser{}, false, nil
	}
	u, err := s.Store.Users().FindPublicByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PublicUser{}, false, nil
	}
	if err != nil {
		return domain.PublicUser{}, false, unavailable(ctx, "me.lookup", err)
	}
	return u, true, nil
}

// Logout always revokes, whatever state the caller is in.
func (s *AuthService) Logout() domain.SessionDecision {
	return domain.SessionDecision{Action: domain.SessionRevoke}
}
