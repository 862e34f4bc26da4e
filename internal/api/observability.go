package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game"
)

// Metrics with bounded cardinality (labels are event types and slot kinds only)
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arena_tick_duration_seconds",
		Help:    "Time spent in one simulation tick",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.033},
	})

	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arena_render_duration_seconds",
		Help:    "Time spent rendering a frame",
		Buckets: []float64{0.001, 0.005, 0.01, 0.02, 0.033, 0.05},
	})

	shipsAlive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_ships_alive",
		Help: "Ships currently on the field",
	})

	meteorsAlive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_meteors_alive",
		Help: "Meteors currently on the field",
	})

	bulletsAlive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_bullets_alive",
		Help: "Bullets currently in flight",
	})

	controllersBound = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_controllers_bound",
		Help: "Controllers currently driving a ship",
	})

	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_events_total",
		Help: "Simulation events by type",
	}, []string{"type"})

	slotExhausted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_slot_exhausted_total",
		Help: "Spawns dropped because every slot of a kind was taken",
	}, []string{"kind"}) // Bounded: "ship", "bullet", "meteor"

	requestRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_debug_rejected_total",
		Help: "Debug requests rejected by the rate limiter or auth",
	}, []string{"reason"}) // Bounded: "rate_limit", "auth"
)

// RecordTick records tick timing for metrics
func RecordTick(duration time.Duration) {
	tickDuration.Observe(duration.Seconds())
}

// RecordRender records render timing for metrics
func RecordRender(duration time.Duration) {
	renderDuration.Observe(duration.Seconds())
}

// ObserveSnapshot updates the population gauges.
func ObserveSnapshot(snap *game.GameSnapshot) {
	shipsAlive.Set(float64(len(snap.Ships)))
	meteorsAlive.Set(float64(len(snap.Meteors)))
	bulletsAlive.Set(float64(len(snap.Bullets)))

	bound := 0
	for _, c := range snap.Controllers {
		if c.Bound {
			bound++
		}
	}
	controllersBound.Set(float64(bound))
}

// RecordEvent counts an event. Slot exhaustion is also counted by kind.
func RecordEvent(ev game.Event) {
	eventsTotal.WithLabelValues(ev.Type.String()).Inc()
	if ev.Type == game.EventTypeSlotExhausted {
		slotExhausted.WithLabelValues(ev.Kind).Inc()
	}
}

// RecordRejected increments the rejection counter.
// reason must be one of: "rate_limit", "auth"
func RecordRejected(reason string) {
	requestRejected.WithLabelValues(reason).Inc()
}

// basicAuthMiddleware adds basic authentication to the handler
func basicAuthMiddleware(user, pass string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || u != user || p != pass {
			RecordRejected("auth")
			w.Header().Set("WWW-Authenticate", `Basic realm="debug"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
