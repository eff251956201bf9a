package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/parleychat/parley/internal/infrastructure/json"
)

var (
	startTime       = time.Now()
	healthy   int32 = 1 // 1 = healthy, 0 = unhealthy
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain probe function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type Handler struct {
	deps []Pinger
}

// NewHandler takes the stores readiness should probe. Liveness ignores them.
func NewHandler(deps ...Pinger) *Handler {
	return &Handler{deps: deps}
}

// SetHealthy flips the liveness flag, used during shutdown draining.
func SetHealthy(ok bool) {
	if ok {
		atomic.StoreInt32(&healthy, 1)
	} else {
		atomic.StoreInt32(&healthy, 0)
	}
}

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	if atomic.LoadInt32(&healthy) == 0 {
		json.Write(w, http.StatusServiceUnavailable, currentStatus("unhealthy"))
		return
	}

	json.Write(w, http.StatusOK, currentStatus("ok"))
}

// GetReady probes the backing stores. A room service that cannot reach its
// state store should not receive traffic.
func (h *Handler) GetReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for _, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			json.Write(w, http.StatusServiceUnavailable, currentStatus("unhealthy"))
			return
		}
	}

	json.Write(w, http.StatusOK, currentStatus("ok"))
}

func currentStatus(status string) healthResponse {
	return healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
	}
}
