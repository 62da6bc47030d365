package handlers

import (
	"net/http"
	"time"

	domain "github.com/heritage-semijoias/api/internal/domain"
	repositories "github.com/heritage-semijoias/api/internal/repositories"
)

var startTime = time.Now()

// HealthHandlers serves liveness and readiness probes. Liveness never touches
// dependencies; readiness aggregates the configured dependency checks.
type HealthHandlers struct {
	repo    repositories.HealthRepository
	version string
}

// HealthHandlersDeps wires the health handler dependencies. Repo may be nil,
// in which case readiness reports ok without probing anything.
type HealthHandlersDeps struct {
	Repo    repositories.HealthRepository
	Version string
}

// NewHealthHandlers constructs the health endpoints.
func NewHealthHandlers(deps HealthHandlersDeps) *HealthHandlers {
	return &HealthHandlers{repo: deps.Repo, version: deps.Version}
}

func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"status":    domain.HealthStatusOK,
		"uptime":    time.Since(startTime).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if h.version != "" {
		payload["version"] = h.version
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeJSONResponse(w, http.StatusOK, map[string]any{"status": domain.HealthStatusOK})
		return
	}

	report, err := h.repo.Collect(r.Context())
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, map[string]any{
			"status": domain.HealthStatusError,
			"error":  err.Error(),
		})
		return
	}

	status := http.StatusOK
	if report.Status == domain.HealthStatusError {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]any, len(report.Checks))
	for name, check := range report.Checks {
		entry := map[string]any{
			"status":     check.Status,
			"latency_ms": check.Latency.Milliseconds(),
		}
		if check.Detail != "" {
			entry["detail"] = check.Detail
		}
		if check.Error != "" {
			entry["error"] = check.Error
		}
		checks[name] = entry
	}

	payload := map[string]any{
		"status":       report.Status,
		"checks":       checks,
		"generated_at": report.GeneratedAt.UTC().Format(time.RFC3339),
	}
	if report.Version != "" {
		payload["version"] = report.Version
	}
	writeJSONResponse(w, status, payload)
}
