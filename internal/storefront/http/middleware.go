package http

import (
	"net/http"

	"github.com/Kareem09qyu/Okta/pkg/httpx"
	"github.com/Kareem09qyu/Okta/pkg/session"
	"github.com/Kareem09qyu/Okta/pkg/slogx"
	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
)

// LoadSession resolves the session cookie and, when valid, puts the user id
// on the request context and the request logger. Requests without a session
// pass through untouched.
func LoadSession(sessions *session.Issuer) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := sessions.Resolve(r); ok {
				ctx := httpx.WithUserID(r.Context(), userID)
				ctx = slogx.With(ctx, "user_id", userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession rejects requests that LoadSession did not authenticate.
func RequireSession() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := httpx.UserIDFromContext(r.Context()); !ok {
				storefrontsdk.ErrUnauthorized.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
