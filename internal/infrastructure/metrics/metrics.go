package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	MutationsCommitted *prometheus.CounterVec
	MutationErrors     *prometheus.CounterVec
	MutationDuration   prometheus.Histogram
	MutationAmount     prometheus.Histogram

	// Membership metrics
	MembersCreated prometheus.Counter
	RoleChanges    prometheus.Counter

	// Tournament metrics
	TournamentsCreated     prometheus.Counter
	Registrations          prometheus.Counter
	RegistrationsCancelled prometheus.Counter
	RegistrationsRejected  *prometheus.CounterVec
	TournamentsAdvanced    *prometheus.CounterVec
	TournamentsCancelled   prometheus.Counter

	// Assistant metrics
	AssistantRequests     *prometheus.CounterVec
	AssistantUnrecognized prometheus.Counter
	PermissionDenials     *prometheus.CounterVec
	ConfirmationsParked   prometheus.Counter
	ConfirmationsResumed  prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates all metrics on the default Prometheus registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics on the given registerer. Tests pass a fresh
// registry to read counters without colliding with the default one.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MutationsCommitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokerpal_ledger_mutations_total",
				Help: "Total committed ledger mutations by kind",
			},
			[]string{"kind"},
		),
		MutationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokerpal_ledger_mutation_errors_total",
				Help: "Total rejected ledger mutations by reason",
			},
			[]string{"reason"},
		),
		MutationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pokerpal_ledger_mutation_duration_seconds",
			Help:    "Duration of ledger mutations",
			Buckets: prometheus.DefBuckets,
		}),
		MutationAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pokerpal_ledger_mutation_amount",
			Help:    "Absolute mutation amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		MembersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "pokerpal_members_created_total",
			Help: "Total memberships created",
		}),
		RoleChanges: factory.NewCounter(prometheus.CounterOpts{
			Name: "pokerpal_role_changes_total",
			Help: "Total membership role changes",
		}),

		TournamentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "pokerpal_tournaments_created_total",
			Help: "Total tournaments created",
		}),
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "pokerpal_registrations_total",
			Help: "Total tournament registrations",
		}),
		RegistrationsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "pokerpal_registrations_cancelled_total",
			Help: "Total cancelled registrations",
		}),
		RegistrationsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokerpal_registrations_rejected_total",
				Help: "Total rejected registrations by reason",
			},
			[]string{"reason"},
		),
		TournamentsAdvanced: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokerpal_tournaments_advanced_total",
				Help: "Total lifecycle transitions by target status",
			},
			[]string{"status"},
		),
		TournamentsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "pokerpal_tournaments_cancelled_total",
			Help: "Total tournaments cancelled",
		}),

		AssistantRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokerpal_assistant_requests_total",
				Help: "Total assistant requests by operation",
			},
			[]string{"operation"},
		),
		AssistantUnrecognized: factory.NewCounter(prometheus.CounterOpts{
			Name: "pokerpal_assistant_unrecognized_total",
			Help: "Total assistant requests no rule matched",
		}),
		PermissionDenials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokerpal_permission_denials_total",
				Help: "Total permission denials by operation",
			},
			[]string{"operation"},
		),
		ConfirmationsParked: factory.NewCounter(prometheus.CounterOpts{
			Name: "pokerpal_confirmations_parked_total",
			Help: "Total operations parked awaiting confirmation",
		}),
		ConfirmationsResumed: factory.NewCounter(prometheus.CounterOpts{
			Name: "pokerpal_confirmations_resumed_total",
			Help: "Total parked operations executed after confirmation",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokerpal_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pokerpal_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokerpal_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
