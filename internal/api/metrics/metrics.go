// Package metrics defines and registers the custom Prometheus metrics of the
// lessons API. HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigbear/lessons-api/internal/core/domain"
)

const namespace = "lessons"

// SignupsTotal counts signup attempts.
// Label:
//   - result: "success", "duplicate", "invalid" or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "not_found", "invalid_credentials", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ProgressUpdatesTotal counts update-progress calls.
// Labels:
//   - kind: "interactive", "game" or "unknown"
//   - result: "success", "not_found", "forbidden", "locked", "invalid" or "error"
var ProgressUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "progress_updates_total",
		Help:      "Total number of lesson progress updates, by kind and result.",
	},
	[]string{"kind", "result"},
)

// Result maps an operation error to the "result" label value.
func Result(err error) string {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &ve):
		return "invalid"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrProgressLocked):
		return "locked"
	default:
		return "error"
	}
}
