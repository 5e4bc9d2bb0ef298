package common

import (
	"context"
	"net/http"
)

// HealthStatus is the reported service state.
type HealthStatus string

// Health status values.
const (
	HealthStatusUp   HealthStatus = "UP"
	HealthStatusDown HealthStatus = "DOWN"
)

// UnhealthyReason is the reason reported whenever the service is DOWN.
const UnhealthyReason = "Service is unhealthy"

// HealthResponse is the body returned by the health endpoints. Reason is
// present exactly when the status is DOWN.
type HealthResponse struct {
	Status HealthStatus `json:"status"`
	Reason string       `json:"reason,omitempty"`
}

// HealthChecker is the capability the health endpoints require. A nil
// error means healthy.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthHandler returns the handler backing both /health and /healthz.
// Unhealthy state is a valid outcome, not an error: it is reported as a
// 500 with a DOWN body so callers can detect it from the status code alone.
func HealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := checker.CheckHealth(r.Context()); err != nil {
			WriteJSONResponse(w, HealthResponse{
				Status: HealthStatusDown,
				Reason: UnhealthyReason,
			}, http.StatusInternalServerError)
			return
		}
		WriteJSONResponse(w, HealthResponse{Status: HealthStatusUp}, http.StatusOK)
	}
}
