// Package metrics defines and registers all custom Prometheus metrics for
// the dashboard API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - method: "credentials" or "google"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// AuthFailuresTotal counts requests rejected by the authorization
// middleware.
// Label:
//   - reason: "missing_token", "invalid_token", "unknown_user",
//     "unverified", "suspended", "forbidden"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected during authorization.",
	},
	[]string{"reason"},
)

// OTPTotal counts one-time passcode operations.
// Labels:
//   - op: "send" or "verify"
//   - result: "success" or "failure"
var OTPTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_total",
		Help:      "Total number of OTP send/verify operations, by result.",
	},
	[]string{"op", "result"},
)

// ActivityLogDropsTotal counts audit entries that failed to persist.
// Writes are best-effort, so drops are visible only here and in logs.
var ActivityLogDropsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_log_drops_total",
		Help:      "Total number of activity log entries that could not be written.",
	},
)
