package handlers

import (
	"context"
	"net/http"
	"time"

	"service-pickup/internal/apperr"
	"service-pickup/internal/logx"
)

const healthcheckTimeout = 2 * time.Second

// Pinger is a backing store the healthcheck reaches out to.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check names a dependency of the healthcheck.
type Check struct {
	Name   string
	Pinger Pinger
}

// Handlers serves the service-level endpoints.
type Handlers struct {
	Logger logx.Logger
	checks []Check
}

// New creates a Handlers instance. The healthcheck pings every check.
func New(logger logx.Logger, checks ...Check) *Handlers {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Handlers{Logger: logger, checks: checks}
}

// Ping handles GET /ping and returns 200 with {"message":"pong"}.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead handles HEAD /healthcheck. It returns 204 No Content when
// every check answers and 503 otherwise.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
	defer cancel()

	for _, c := range h.checks {
		if err := c.Pinger.Ping(ctx); err != nil {
			h.Logger.Warn("healthcheck failed", logx.String("check", c.Name), logx.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// NotFound answers unknown routes with the error envelope.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, apperr.NotFound("route not found"))
}

// MethodNotAllowed answers known routes called with an unsupported method.
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, apperr.BadRequest("method", r.Method+" is not supported on this route"))
}
