// Package metrics defines and registers all custom Prometheus metrics for the
// publishing platform. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time and
// are exposed through the /metrics endpoint wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "conflict" (username taken), or "invalid" (form rejected)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (one bucket for unknown user and wrong password)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Article metrics ───────────────────────────────────────────────────────────

// ArticlesCreatedTotal counts newly published articles.
var ArticlesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles created.",
	},
)

// ArticlesUpdatedTotal counts successful owner edits.
var ArticlesUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_updated_total",
		Help:      "Total number of articles updated by their owner.",
	},
)

// ArticlesDeletedTotal counts successful owner deletions.
var ArticlesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_deleted_total",
		Help:      "Total number of articles deleted by their owner.",
	},
)

// DeniedMutationsTotal counts article mutations rejected because the acting
// user does not own the target (or it does not exist — indistinguishable).
var DeniedMutationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "denied_mutations_total",
		Help:      "Total number of article edits/deletes rejected by the ownership check.",
	},
)
