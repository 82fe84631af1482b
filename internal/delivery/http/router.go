package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventsapi/internal/delivery/http/controllers"
	"eventsapi/internal/delivery/http/middleware"
	"eventsapi/internal/domain"
	"eventsapi/internal/metrics"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Index    *controllers.IndexController
	Events   *controllers.EventController
	Auth     *controllers.AuthController
	Accounts *controllers.AccountController
	Health   *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, authn domain.AuthService, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(authn, logger)
	optionalAuth := middleware.OptionalAuth(authn, logger)

	mux.HandleFunc("GET /{$}", c.Index.Index)

	// Events
	mux.HandleFunc("GET /events", optionalAuth(c.Events.ListEvents))
	mux.HandleFunc("POST /events", requireAuth(c.Events.CreateEvent))
	mux.HandleFunc("GET /events/{id}", optionalAuth(c.Events.GetEvent))
	mux.HandleFunc("PUT /events/{id}", requireAuth(c.Events.UpdateEvent))

	// Auth
	mux.HandleFunc("POST /oauth/token", c.Auth.Token)
	mux.HandleFunc("POST /accounts", c.Accounts.Register)

	// Ops
	mux.HandleFunc("GET /health", c.Health.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with trusted-proxy handling, request logging, metrics and
// CORS, outermost first. Nothing between logging and the mux may replace the request:
// metrics reads the pattern the mux stamps on the request logging handed down.
func NewHandler(mux *http.ServeMux, logger *slog.Logger, corsOrigins, trustedProxies []string) http.Handler {
	return middleware.TrustedProxies(trustedProxies,
		middleware.LoggingMiddleware(logger, metrics.HTTPMiddleware(middleware.CORS(corsOrigins, mux))))
}
