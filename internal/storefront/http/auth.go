package http

import (
	"net/http"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
	"github.com/Kareem09qyu/Okta/internal/storefront/service"
	"github.com/Kareem09qyu/Okta/pkg/httpx"
	"github.com/Kareem09qyu/Okta/pkg/session"
	"github.com/Kareem09qyu/Okta/pkg/slogx"
	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
)

// AuthHandler serves registration, login, two-factor and session endpoints.
// It is the only place where session decisions turn into cookies.
type AuthHandler struct {
	AuthService *service.AuthService
	Sessions    *session.Issuer
	Challenge   *session.Challenge
}

// applySession carries out a decision returned by the auth service.
func (h *AuthHandler) applySession(w http.ResponseWriter, d domain.SessionDecision) error {
	switch d.Action {
	case domain.SessionIssue:
		h.Challenge.Clear(w)
		return h.Sessions.Issue(w, d.UserID)
	case domain.SessionChallenge:
		// Whoever was logged in before is not any more.
		h.Sessions.Revoke(w)
		return h.Challenge.Begin(w, d.UserID)
	case domain.SessionRevoke:
		h.Sessions.Revoke(w)
		h.Challenge.Clear(w)
	}
	return nil
}

// HandleRegister handles POST /api/register
//
//	@Summary		Register a new account
//	@Description	Creates a user and provisions a disabled TOTP secret. Duplicate usernames or emails are reported with success=false.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		storefrontsdk.RegisterRequest	true	"Account details"
//	@Success		200		{object}	storefrontsdk.RegisterResponse	"Registered, or duplicate_credential"
//	@Failure		400		{object}	storefrontsdk.Envelope			"Invalid request"
//	@Failure		429		{object}	storefrontsdk.Envelope			"Rate limited"
//	@Failure		500		{object}	storefrontsdk.Envelope			"Internal server error"
//	@Router			/api/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req storefrontsdk.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		invalid(w, errs)
		return
	}

	userID, err := h.AuthService.Register(r.Context(), domain.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.RegisterResponse{
		Envelope: storefrontsdk.Envelope{Success: true, Message: "account created"},
		UserID:   userID,
	})
}

// HandleLogin handles POST /api/login
//
//	@Summary		Log in with username and password
//	@Description	On success either sets the session cookie, or, when two-factor is enabled, sets the pending challenge cookie and returns requireTwoFactor=true.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		storefrontsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	storefrontsdk.LoginResponse	"Logged in, second factor required, or invalid_credentials"
//	@Failure		400		{object}	storefrontsdk.Envelope		"Invalid request"
//	@Failure		429		{object}	storefrontsdk.Envelope		"Rate limited"
//	@Failure		500		{object}	storefrontsdk.Envelope		"Internal server error"
//	@Router			/api/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req storefrontsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		invalid(w, errs)
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.applySession(w, res.Session); err != nil {
		log.Error("failed to apply session", "user_id", res.UserID, "err", err)
		storefrontsdk.ErrServerError.WriteError(w)
		return
	}

	msg := "logged in"
	if res.RequireTwoFactor {
		msg = "two-factor code required"
	}
	log.Info("login accepted", "user_id", res.UserID, "session", res.Session.Action.String())

	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.LoginResponse{
		Envelope:         storefrontsdk.Envelope{Success: true, Message: msg},
		UserID:           res.UserID,
		RequireTwoFactor: res.RequireTwoFactor,
	})
}

// HandleVerifyTwoFactor handles POST /api/verify-2fa
//
//	@Summary		Complete a two-factor login
//	@Description	Checks a TOTP code for the user named in the pending challenge cookie and issues the session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		storefrontsdk.TwoFactorCodeRequest	true	"User id and code"
//	@Success		200		{object}	storefrontsdk.Envelope				"Logged in, invalid_code or two_factor_not_configured"
//	@Failure		400		{object}	storefrontsdk.Envelope				"Invalid request"
//	@Failure		401		{object}	storefrontsdk.Envelope				"No pending login for this user"
//	@Failure		429		{object}	storefrontsdk.Envelope				"Rate limited"
//	@Failure		500		{object}	storefrontsdk.Envelope				"Internal server error"
//	@Router			/api/verify-2fa [post].
func (h *AuthHandler) HandleVerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req storefrontsdk.TwoFactorCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		invalid(w, errs)
		return
	}

	userID := int64(req.UserID)
	if pending, ok := h.Challenge.Pending(r); !ok || pending != userID {
		log.Warn("two-factor verify without matching challenge", "user_id", userID)
		storefrontsdk.NewAPIError(http.StatusUnauthorized, storefrontsdk.ErrorCodeUnauthorized,
			"no pending login for this user").WriteError(w)
		return
	}

	res, err := h.AuthService.VerifyTwoFactor(r.Context(), userID, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.applySession(w, res.Session); err != nil {
		log.Error("failed to apply session", "user_id", userID, "err", err)
		storefrontsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.Envelope{Success: true, Message: "logged in"})
}

// HandleEnableTwoFactor handles POST /api/enable-2fa
//
//	@Summary		Start two-factor enrollment
//	@Description	Returns the TOTP secret and a QR code for the logged in user. Calling it again before confirming returns the same secret.
//	@Tags			Auth
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	storefrontsdk.EnableTwoFactorResponse	"Secret and QR code, or user_not_found"
//	@Failure		401	{object}	storefrontsdk.Envelope					"Not logged in"
//	@Failure		500	{object}	storefrontsdk.Envelope					"Internal server error"
//	@Router			/api/enable-2fa [post].
func (h *AuthHandler) HandleEnableTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	enr, err := h.AuthService.EnrollTwoFactor(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.EnableTwoFactorResponse{
		Envelope:   storefrontsdk.Envelope{Success: true, Message: "scan the QR code, then confirm with a code"},
		QRCodeURL:  enr.QRCodeURL,
		SecretKey:  enr.SecretKey,
		OTPAuthURL: enr.OTPAuthURL,
	})
}

// HandleConfirmTwoFactor handles POST /api/confirm-2fa
//
//	@Summary		Confirm two-factor enrollment
//	@Description	Enables two-factor login once the user proves they can produce a code. userId may be a number or a numeric string.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		storefrontsdk.TwoFactorCodeRequest	true	"User id and code"
//	@Success		200		{object}	storefrontsdk.Envelope				"Enabled, invalid_code or two_factor_not_configured"
//	@Failure		400		{object}	storefrontsdk.Envelope				"Missing or non-numeric userId, or missing code"
//	@Failure		401		{object}	storefrontsdk.Envelope				"Session belongs to another user"
//	@Failure		429		{object}	storefrontsdk.Envelope				"Rate limited"
//	@Failure		500		{object}	storefrontsdk.Envelope				"Internal server error"
//	@Router			/api/confirm-2fa [post].
func (h *AuthHandler) HandleConfirmTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req storefrontsdk.TwoFactorCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		invalid(w, errs)
		return
	}

	userID := int64(req.UserID)
	if current, ok := httpx.UserIDFromContext(r.Context()); ok && current != userID {
		storefrontsdk.ErrUnauthorized.WriteError(w)
		return
	}

	if err := h.AuthService.ConfirmTwoFactor(r.Context(), userID, req.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.Envelope{Success: true, Message: "two-factor authentication enabled"})
}

// HandleMe handles GET /api/me
//
//	@Summary		Current user
//	@Description	Returns the logged in user's public profile, or success=false without a session.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	storefrontsdk.MeResponse	"Profile, or success=false"
//	@Failure		500	{object}	storefrontsdk.Envelope		"Internal server error"
//	@Router			/api/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, hasSession := httpx.UserIDFromContext(r.Context())

	u, ok, err := h.AuthService.CurrentUser(r.Context(), userID, hasSession)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !ok {
		httpx.WriteJSON(w, http.StatusOK, storefrontsdk.MeResponse{
			Envelope: storefrontsdk.Envelope{Success: false, Message: "not logged in"},
		})
		return
	}

	user := toSDKUser(u)
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.MeResponse{
		Envelope: storefrontsdk.Envelope{Success: true},
		User:     &user,
	})
}

// HandleLogout handles POST /api/logout
//
//	@Summary	Log out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	storefrontsdk.Envelope
//	@Router		/api/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	_ = h.applySession(w, h.AuthService.Logout())
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.Envelope{Success: true, Message: "logged out"})
}
