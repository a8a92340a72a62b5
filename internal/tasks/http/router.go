package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"

	_ "github.com/aussiebroadwan/tasks/api/tasks" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	now          func() time.Time
	limits       httpx.RateLimits
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	UserService      *service.UserService
	RolesService     *service.RolesService
	TaskService      *service.TaskService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	limits httpx.RateLimits,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		now:          time.Now,
		limits:       limits,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerRoles()
	r.registerTasks()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tasks Service API
//	@version		0.1.0
//	@description	Task tracking backend with JWT bearer authentication and role-based access control.
//	@description
//	@description				Access tokens are HS256 JWTs valid for 60 minutes. Mutating user and role endpoints require the admin role.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tasks
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed verifies the bearer token before h runs.
func (r *Router) authed(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier, r.now),
		httpx.RateLimitByUser(limit, r.limits.TrustedProxies),
	)
}

// admin is authed plus the admin role, re-read from the store per request.
func (r *Router) admin(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier, r.now),
		httpx.RequireAnyRole(r.RolesService, domain.RoleAdmin),
		httpx.RateLimitByUser(r.limits.Moderate, r.limits.TrustedProxies),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// POST /auth/login - public, strict rate limit by IP against brute force
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.limits.Strict, r.limits.TrustedProxies),
		),
	)

	r.Mux.Handle("POST /auth/logout", r.authed(http.HandlerFunc(h.HandleLogout), r.limits.Moderate))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService, TaskService: r.TaskService}

	r.Mux.Handle("GET /users", r.authed(http.HandlerFunc(h.HandleList), r.limits.Lenient))
	r.Mux.Handle("GET /users/{id}", r.authed(http.HandlerFunc(h.HandleGet), r.limits.Lenient))
	r.Mux.Handle("GET /users/{id}/tasks", r.authed(http.HandlerFunc(h.HandleListTasks), r.limits.Lenient))

	r.Mux.Handle("POST /users", r.admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /users/{id}", r.admin(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /users/{id}", r.admin(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService, UserService: r.UserService}

	r.Mux.Handle("GET /roles", r.authed(http.HandlerFunc(h.HandleList), r.limits.Lenient))
	r.Mux.Handle("GET /roles/{id}", r.authed(http.HandlerFunc(h.HandleGet), r.limits.Lenient))
	r.Mux.Handle("GET /users/{id}/roles", r.authed(http.HandlerFunc(h.HandleListForUser), r.limits.Lenient))

	r.Mux.Handle("POST /roles", r.admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("POST /users/{id}/roles", r.admin(http.HandlerFunc(h.HandleGrant)))
}

func (r *Router) registerTasks() {
	h := &TasksHandler{TaskService: r.TaskService}

	r.Mux.Handle("GET /tasks", r.authed(http.HandlerFunc(h.HandleList), r.limits.Lenient))
	r.Mux.Handle("GET /tasks/{id}", r.authed(http.HandlerFunc(h.HandleGet), r.limits.Lenient))
	r.Mux.Handle("POST /tasks", r.authed(http.HandlerFunc(h.HandleCreate), r.limits.Moderate))
	r.Mux.Handle("PUT /tasks/{id}", r.authed(http.HandlerFunc(h.HandleUpdate), r.limits.Moderate))
	r.Mux.Handle("DELETE /tasks/{id}", r.authed(http.HandlerFunc(h.HandleDelete), r.limits.Moderate))
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - strict rate limit by IP (one-time setup endpoint)
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /bootstrap",
		httpx.Chain(h,
			httpx.RateLimitByIP(r.limits.Strict, r.limits.TrustedProxies),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Public, r.limits.TrustedProxies),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.verifier),
			httpx.RateLimitByIP(r.limits.Public, r.limits.TrustedProxies),
		),
	)
}
