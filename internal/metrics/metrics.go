// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "digimarket"

var (
	// AuthFailures counts rejected bearer tokens by reason
	// (missing, revoked, invalid).
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Requests rejected by the authentication gate.",
	}, []string{"reason"})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	RevocationSweeps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revocation_sweeps_total",
		Help:      "Revocation ledger sweeps by outcome.",
	}, []string{"outcome"})

	RevokedTokensPurged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revoked_tokens_purged_total",
		Help:      "Expired entries removed from the revocation ledger.",
	})
)
