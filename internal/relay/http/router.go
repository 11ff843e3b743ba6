// Package http wires the relay's HTTP surface: the browser-facing auth
// flow under /auth, bearer-guarded API routes under /v1, and the health
// probes.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/intakeworks/authrelay/internal/relay/service"
	"github.com/intakeworks/authrelay/internal/relay/store"
	"github.com/intakeworks/authrelay/pkg/httpx"
	"github.com/intakeworks/authrelay/pkg/jwtx"
	"github.com/intakeworks/authrelay/pkg/slogx"

	_ "github.com/intakeworks/authrelay/api/authrelay" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.RemoteKeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	validate     *validator.Validate

	AuthService *service.AuthService
	Results     *store.ResultStore
}

func NewRouter(
	keys *jwtx.RemoteKeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		validate:     validator.New(),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuthFlow()
	r.registerUserInfo()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Intake Auth Relay API
//	@version		0.1.0
//	@description	Backend-mediated OpenID Connect login relay. The browser is sent to the
//	@description	identity provider with a signed state, and the callback trades the
//	@description	authorization code for tokens server-side. Tokens reach the frontend only
//	@description	through a one-time result id, never through a redirect URL.
//
//	@contact.name				IntakeWorks Platform Team
//	@contact.url				https://github.com/intakeworks/authrelay
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Provider-issued JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuthFlow() {
	login := &LoginHandler{AuthService: r.AuthService}
	callback := &CallbackHandler{AuthService: r.AuthService, Validate: r.validate}
	result := &ResultHandler{AuthService: r.AuthService, Validate: r.validate}
	refresh := &RefreshHandler{AuthService: r.AuthService, Validate: r.validate}
	logout := &LogoutHandler{AuthService: r.AuthService, Validate: r.validate}

	// GET /auth/login - moderate rate limit (each hit mints a signed state)
	r.Mux.Handle("GET /auth/login",
		httpx.Chain(login,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /auth/callback - moderate rate limit (one hit per login round-trip)
	r.Mux.Handle("GET /auth/callback",
		httpx.Chain(callback,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /auth/result - strict rate limit by IP (guessing ids must stay expensive)
	r.Mux.Handle("GET /auth/result",
		httpx.Chain(result,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/refresh - strict rate limit by IP (token-granting endpoint)
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(refresh,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /auth/logout - moderate rate limit
	r.Mux.Handle("GET /auth/logout",
		httpx.Chain(logout,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUserInfo() {
	h := &UserInfoHandler{}

	// Authenticated endpoint - lenient rate limit by user
	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/aud/exp)
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /v1/userinfo", secured)
}

func (r *Router) registerAdmin() {
	h := &StatsHandler{
		Results:      r.Results,
		StartTime:    r.startTime,
		BuildVersion: r.buildVersion,
	}

	// GET /v1/admin/stats - admin role required, moderate rate limit by user
	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole("admin"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/admin/stats", secured)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
