package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// defaultRecentEvents is how many events /debug/events returns without ?n=
const defaultRecentEvents = 64

func (h *routerHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleSnapshot returns the latest fully settled tick.
func (h *routerHandlers) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Snapshot())
}

// handleEvents returns the most recent events, oldest first.
// ?n=N limits the count; n=-1 returns the whole ring.
func (h *routerHandlers) handleEvents(w http.ResponseWriter, r *http.Request) {
	n := defaultRecentEvents
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, "n must be an integer", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	log := h.engine.Events()
	writeJSON(w, map[string]interface{}{
		"events": log.Recent(n),
		"stats":  log.GetStats(),
	})
}

func (h *routerHandlers) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()

	bound := 0
	for _, c := range snap.Controllers {
		if c.Bound {
			bound++
		}
	}

	writeJSON(w, map[string]interface{}{
		"tick":        h.engine.TickCount(),
		"tickRate":    h.engine.TickRate(),
		"ships":       len(snap.Ships),
		"bullets":     len(snap.Bullets),
		"meteors":     len(snap.Meteors),
		"controllers": len(snap.Controllers),
		"bound":       bound,
		"events":      h.engine.Events().GetStats(),
		"rateLimit":   h.limiter.Stats(),
	})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
