// Package metrics defines and registers the custom Prometheus metrics of the
// wavegame API. It is the single source of truth for metric names, labels
// and help strings.
//
// Metrics are registered with the default registry on package init via
// promauto and exposed on /metrics together with the HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wavegame"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "duplicate", "invalid_credentials" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsRecordedTotal counts game sessions that passed validation and
// were persisted.
var SessionsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_recorded_total",
		Help:      "Total number of game sessions persisted.",
	},
)

// SessionsRejectedTotal counts submissions refused before persistence.
// Label:
//   - reason: "range", "integrity" or "user_not_found"
var SessionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_rejected_total",
		Help:      "Total number of game session submissions rejected, by reason.",
	},
	[]string{"reason"},
)

// SessionWaveReached tracks the distribution of waves reached in recorded sessions.
var SessionWaveReached = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "session_wave_reached",
		Help:      "Wave reached per recorded game session.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	},
)

// ── Leaderboard metrics ───────────────────────────────────────────────────────

// LeaderboardCacheTotal counts leaderboard cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var LeaderboardCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leaderboard_cache_total",
		Help:      "Total number of leaderboard cache lookups, labelled by result.",
	},
	[]string{"result"},
)
