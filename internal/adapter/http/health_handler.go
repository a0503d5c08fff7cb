package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// Probe reports whether one dependency (database, redis) is reachable.
type Probe func(ctx context.Context) error

type HealthHandler struct {
	probes  map[string]Probe
	timeout time.Duration
}

func NewHealthHandler(probes map[string]Probe) *HealthHandler {
	return &HealthHandler{probes: probes, timeout: 3 * time.Second}
}

type HealthStatus struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health is liveness only.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{Status: "ok", Time: time.Now().UTC().Format(time.RFC3339Nano)})
}

// Ready runs every probe; any failure turns the answer into a 503.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	out := HealthStatus{Status: "ok", Checks: make(map[string]string, len(h.probes))}
	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.probes[name](ctx); err != nil {
			out.Status = "error"
			out.Checks[name] = "failed: " + err.Error()
			continue
		}
		out.Checks[name] = "ok"
	}
	out.Time = time.Now().UTC().Format(time.RFC3339Nano)

	if out.Status != "ok" {
		return c.JSON(http.StatusServiceUnavailable, out)
	}
	return c.JSON(http.StatusOK, out)
}
