package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Kareem09qyu/Okta/internal/storefront/service"
	"github.com/Kareem09qyu/Okta/internal/storefront/store"
	"github.com/Kareem09qyu/Okta/pkg/httpx"
	"github.com/Kareem09qyu/Okta/pkg/session"
	"github.com/Kareem09qyu/Okta/pkg/slogx"

	_ "github.com/Kareem09qyu/Okta/api/storefront" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the throttling profiles applied per route group.
type Limits struct {
	Credential httpx.RateLimitConfig // password and code submission
	Account    httpx.RateLimitConfig // session-bound account and cart calls
	Browse     httpx.RateLimitConfig // catalog and health
}

// DefaultLimits returns the built-in profiles.
func DefaultLimits() Limits {
	return Limits{
		Credential: httpx.CredentialLimit,
		Account:    httpx.AccountLimit,
		Browse:     httpx.BrowseLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       Limits

	store     store.Store
	sessions  *session.Issuer
	challenge *session.Challenge

	AuthService    *service.AuthService
	CatalogService *service.CatalogService
	CartService    *service.CartService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	sessions *session.Issuer,
	challenge *session.Challenge,
	limits Limits,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		limits:       limits,
		store:        st,
		sessions:     sessions,
		challenge:    challenge,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
		LoadSession(sessions),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCatalog()
	r.registerCart()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Storefront API
//	@version		0.1.0
//	@description	Storefront accounts, two-factor login, catalog and cart.
//	@description
//	@description	Sessions are carried in the HttpOnly "user_id" cookie. A login that still owes a
//	@description	second factor sets the short lived "storefront_2fa" cookie instead.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						user_id
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		Sessions:    r.sessions,
		Challenge:   r.challenge,
	}

	// Registration and password login are throttled per IP, login also per username.
	r.Mux.Handle("POST /api/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.limits.Credential),
		),
	)
	r.Mux.Handle("POST /api/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.limits.Credential, "username"),
		),
	)

	// Code submission endpoints share the strict profile to slow down guessing.
	r.Mux.Handle("POST /api/verify-2fa",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyTwoFactor),
			httpx.RateLimitByIP(r.limits.Credential),
		),
	)
	r.Mux.Handle("POST /api/confirm-2fa",
		httpx.Chain(http.HandlerFunc(h.HandleConfirmTwoFactor),
			httpx.RateLimitByIP(r.limits.Credential),
		),
	)

	r.Mux.Handle("POST /api/enable-2fa",
		httpx.Chain(http.HandlerFunc(h.HandleEnableTwoFactor),
			RequireSession(),
			httpx.RateLimitByUser(r.limits.Account),
		),
	)

	r.Mux.Handle("GET /api/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.RateLimitByIP(r.limits.Account),
		),
	)
	r.Mux.Handle("POST /api/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(r.limits.Account),
		),
	)
}

func (r *Router) registerCatalog() {
	h := &CatalogHandler{CatalogService: r.CatalogService}
	browse := httpx.RateLimitByIP(r.limits.Browse)

	r.Mux.Handle("GET /api/products", httpx.Chain(http.HandlerFunc(h.HandleList), browse))
	r.Mux.Handle("GET /api/products/featured", httpx.Chain(http.HandlerFunc(h.HandleFeatured), browse))
	r.Mux.Handle("GET /api/products/{id}", httpx.Chain(http.HandlerFunc(h.HandleGet), browse))
}

func (r *Router) registerCart() {
	h := &CartHandler{CartService: r.CartService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			RequireSession(),
			httpx.RateLimitByUser(r.limits.Account),
		)
	}

	r.Mux.Handle("GET /api/cart", secured(h.HandleList))
	r.Mux.Handle("POST /api/cart", secured(h.HandleAdd))
	r.Mux.Handle("DELETE /api/cart", secured(h.HandleClear))
	r.Mux.Handle("PATCH /api/cart/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/cart/{id}", secured(h.HandleRemove))
}

func (r *Router) registerSystem() {
	// Monitoring may poll frequently.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Browse),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.limits.Browse),
		),
	)
}
