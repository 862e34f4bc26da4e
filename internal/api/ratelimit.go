package api

import (
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig sets the per-peer token bucket of the debug server.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	IdleTimeout       time.Duration // Peers quiet this long are forgotten
}

// DefaultRateLimitConfig keeps a scraping loop or a pprof session usable
// while stopping a runaway client from starving the tick.
var DefaultRateLimitConfig = RateLimitConfig{
	RequestsPerSecond: 20,
	Burst:             40,
	IdleTimeout:       10 * time.Minute,
}

type peer struct {
	limiter *rate.Limiter
	seen    time.Time
}

// PeerLimiter holds one token bucket per remote host. Idle peers are swept
// on the request path, at most once per IdleTimeout.
type PeerLimiter struct {
	cfg RateLimitConfig
	now func() time.Time

	mu        sync.Mutex
	peers     map[string]*peer
	lastSweep time.Time

	allowed  atomic.Uint64
	rejected atomic.Uint64
}

func NewPeerLimiter(cfg RateLimitConfig) *PeerLimiter {
	return &PeerLimiter{
		cfg:   cfg,
		now:   time.Now,
		peers: make(map[string]*peer),
	}
}

// Allow spends one token from host's bucket.
func (pl *PeerLimiter) Allow(host string) bool {
	pl.mu.Lock()
	now := pl.now()
	if pl.cfg.IdleTimeout > 0 && now.Sub(pl.lastSweep) >= pl.cfg.IdleTimeout {
		pl.sweep(now)
	}
	p, ok := pl.peers[host]
	if !ok {
		p = &peer{limiter: rate.NewLimiter(rate.Limit(pl.cfg.RequestsPerSecond), pl.cfg.Burst)}
		pl.peers[host] = p
	}
	p.seen = now
	ok = p.limiter.AllowN(now, 1)
	pl.mu.Unlock()

	if ok {
		pl.allowed.Add(1)
	} else {
		pl.rejected.Add(1)
	}
	return ok
}

// sweep drops peers idle past IdleTimeout. Caller holds mu.
func (pl *PeerLimiter) sweep(now time.Time) {
	for host, p := range pl.peers {
		if now.Sub(p.seen) >= pl.cfg.IdleTimeout {
			delete(pl.peers, host)
		}
	}
	pl.lastSweep = now
}

// Peers reports how many hosts currently hold a bucket.
func (pl *PeerLimiter) Peers() int {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return len(pl.peers)
}

// Middleware answers 429 once a peer's bucket is empty.
func (pl *PeerLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !pl.Allow(peerHost(r)) {
			RecordRejected("rate_limit")
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (pl *PeerLimiter) Stats() map[string]uint64 {
	return map[string]uint64{
		"allowed":  pl.allowed.Load(),
		"rejected": pl.rejected.Load(),
		"peers":    uint64(pl.Peers()),
	}
}

// peerHost keys buckets by the connecting host. The debug server is never
// proxied, so forwarding headers are ignored.
func peerHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
