package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game"
)

// EngineInterface defines the engine methods used by the debug server.
// This interface enables mocking for tests without spinning up the game loop.
type EngineInterface interface {
	// Snapshot returns a private copy of the latest settled state
	Snapshot() game.GameSnapshot
	// Events returns the in-memory event log
	Events() *game.EventLog
	// TickCount returns the number of ticks run so far
	TickCount() uint64
	// TickRate returns the configured ticks per second
	TickRate() int
}

// RouterConfig contains all dependencies needed to construct the debug router.
//
// Example usage in tests:
//
//	router := api.NewRouter(api.RouterConfig{
//	    Engine:         mockEngine,
//	    DisableLogging: true,
//	})
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Engine is the simulation (required)
	Engine EngineInterface

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one is created from RateLimitConfig.
	RateLimiter *PeerLimiter

	// RateLimitConfig is only used if RateLimiter is nil.
	// If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// BasicAuthUser enables basic auth on every route when set.
	BasicAuthUser string
	BasicAuthPass string

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

type routerHandlers struct {
	engine  EngineInterface
	limiter *PeerLimiter
}

// NewRouter constructs the debug router with all middleware and routes.
//
// It is pure: no goroutines are started and no listeners are opened, so it
// is safe to use in tests with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - Order matters!
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewPeerLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	if cfg.BasicAuthUser != "" {
		r.Use(func(next http.Handler) http.Handler {
			return basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass, next)
		})
	}

	h := &routerHandlers{
		engine:  cfg.Engine,
		limiter: rateLimiter,
	}

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/debug/snapshot", h.handleSnapshot)
	r.Get("/debug/events", h.handleEvents)
	r.Get("/debug/stats", h.handleStats)

	// pprof and expvar under /debug/pprof and /debug/vars
	r.Mount("/debug", middleware.Profiler())

	return r
}
