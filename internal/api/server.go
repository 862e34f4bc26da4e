package api

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/config"
)

// Server is the loopback debug server: metrics, pprof and state inspection.
type Server struct {
	router      http.Handler
	rateLimiter *PeerLimiter
	srv         *http.Server
	addr        string
}

// NewServer builds the debug server. Nothing runs until Start.
func NewServer(engine EngineInterface, cfg config.ObservabilityConfig) *Server {
	s := &Server{
		rateLimiter: NewPeerLimiter(DefaultRateLimitConfig),
		addr:        debugListenAddr(cfg.ListenAddr),
	}
	s.router = NewRouter(RouterConfig{
		Engine:         engine,
		RateLimiter:    s.rateLimiter,
		BasicAuthUser:  cfg.BasicAuthUser,
		BasicAuthPass:  cfg.BasicAuthPass,
		DisableLogging: true,
	})
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// StartDebugServer starts the debug server in the background if enabled.
// Returns nil when disabled.
func StartDebugServer(engine EngineInterface, cfg config.ObservabilityConfig) *Server {
	if !cfg.Enabled {
		log.Println("📊 Debug server disabled")
		return nil
	}
	s := NewServer(engine, cfg)
	s.Start()
	return s
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		log.Printf("📊 Debug server starting on %s", s.addr)
		log.Printf("   - pprof:    http://%s/debug/pprof/", s.addr)
		log.Printf("   - metrics:  http://%s/metrics", s.addr)
		log.Printf("   - snapshot: http://%s/debug/snapshot", s.addr)

		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("⚠️ Debug server error: %v", err)
		}
	}()
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Addr returns the address the server binds to.
func (s *Server) Addr() string {
	return s.addr
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// debugListenAddr keeps the server on loopback unless ALLOW_DEBUG_EXTERNAL
// is set. pprof must never be reachable from outside the host.
func debugListenAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		log.Printf("⚠️ Invalid debug address %q, using default", addr)
		return config.DefaultObservability().ListenAddr
	}
	if isLoopback(host) || os.Getenv("ALLOW_DEBUG_EXTERNAL") == "true" {
		return addr
	}
	log.Println("⚠️ Debug server forced to localhost for security")
	return net.JoinHostPort("127.0.0.1", port)
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
