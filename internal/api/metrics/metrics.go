// Package metrics defines all custom Prometheus metrics for the login
// system. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "login"

// LoginAttemptsTotal counts login attempts by outcome.
// Labels:
//   - outcome: "success", "invalid_credentials", "blocked", "locked", "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LockoutsTotal counts login attempts rejected because the account was
// temporarily locked.
var LockoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockout_rejections_total",
		Help:      "Total number of login attempts rejected by a temporary lockout.",
	},
)

// RateLimitDeniedTotal counts requests rejected by the per-IP fixed-window
// limiter.
var RateLimitDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_denied_total",
		Help:      "Total number of requests denied by the IP rate limiter.",
	},
)

// RegistrationsTotal counts registration calls by result.
// Label:
//   - result: "created" or "duplicate"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registrations, by result.",
	},
	[]string{"result"},
)
