package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsCreated = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_created_total",
			Help:      "Total number of events created",
		},
	)

	EventsUpdated = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_updated_total",
			Help:      "Total number of events updated",
		},
	)

	// EventValidationFailures counts rejected event payloads by field.
	EventValidationFailures = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_validation_failures_total",
			Help:      "Total number of event field errors returned to clients",
		},
		[]string{"field"},
	)

	// TokensIssued counts successful OAuth token grants by grant type.
	TokensIssued = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oauth_tokens_issued_total",
			Help:      "Total number of OAuth token grants issued",
		},
		[]string{"grant_type"},
	)

	AccountsRegistered = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_registered_total",
			Help:      "Total number of accounts created through registration",
		},
	)
)
