package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sponsored_mint"

var (
	MintAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "attempts_total",
			Help:      "Mint attempts by result",
		},
		[]string{"result"},
	)
	MintFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "failures_total",
			Help:      "Failed mint attempts by the step that failed",
		},
		[]string{"step"},
	)
	MintStateTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "state_transitions_total",
			Help:      "Mint state machine transitions by entered state",
		},
		[]string{"state"},
	)
	ConfirmationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "confirmation_seconds",
			Help:      "Time from handleOps submission to receipt",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
	BalanceFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "balance",
			Name:      "fetch_total",
			Help:      "NFT balance reads by result",
		},
		[]string{"result"},
	)
	Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "published_total",
			Help:      "Published user notifications by kind",
		},
		[]string{"kind"},
	)
	NotificationDrops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "dropped_total",
			Help:      "Notifications not delivered to a subscriber whose buffer was full",
		},
		[]string{"kind"},
	)
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultBusy    = "busy"
)

func init() {
	prometheus.MustRegister(MintAttempts)
	prometheus.MustRegister(MintFailures)
	prometheus.MustRegister(MintStateTransitions)
	prometheus.MustRegister(ConfirmationDuration)
	prometheus.MustRegister(BalanceFetches)
	prometheus.MustRegister(Notifications)
	prometheus.MustRegister(NotificationDrops)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
