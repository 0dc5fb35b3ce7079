package httpserver

import (
	"net/http"

	"github.com/yndnr/userhub-go/internal/core/service"
	"github.com/yndnr/userhub-go/internal/server/httpserver/handler"
	"github.com/yndnr/userhub-go/internal/telemetry/logger"
	"github.com/yndnr/userhub-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// UserService handles user collection operations.
	UserService *service.UserService

	// SessionService handles session lifecycle operations.
	SessionService *service.SessionService

	// AuthService verifies credentials and bearer tokens.
	AuthService *service.AuthService

	// Logger for request logging.
	Logger logger.Logger

	// Metrics is the telemetry registry. Nil disables instrumentation
	// and the /metrics endpoint.
	Metrics *metric.Registry

	// CORSAllowedOrigins is the list of allowed CORS origins
	// (empty = allow all).
	CORSAllowedOrigins []string

	// RateLimit is the per-IP request rate (requests/second, 0 = off).
	RateLimit int
}

// NewRouter assembles the dispatcher, the middleware chain and the
// /metrics side endpoint into one http.Handler.
//
// The dispatcher owns all application routes including matching and
// 404s; a mux in front of it would steal the unmatched-path decision,
// so /metrics is split off by hand instead.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := handler.New(cfg.UserService, cfg.SessionService, cfg.AuthService, cfg.Logger, cfg.Metrics)

	middlewares := []Middleware{
		Recover(cfg.Logger),
		RequestID(),
	}
	if cfg.RateLimit > 0 {
		middlewares = append(middlewares, RateLimit(cfg.RateLimit))
	}
	middlewares = append(middlewares, CORS(cfg.CORSAllowedOrigins))
	if cfg.Metrics != nil {
		middlewares = append(middlewares, Metrics(cfg.Metrics))
	}
	middlewares = append(middlewares, AccessLog(cfg.Logger))

	app := Chain(h, middlewares...)

	if cfg.Metrics == nil {
		return app
	}

	metricsHandler := Chain(cfg.Metrics.Handler(), Recover(cfg.Logger), RequestID())
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" && r.Method == http.MethodGet {
			metricsHandler.ServeHTTP(w, r)
			return
		}
		app.ServeHTTP(w, r)
	})
}
