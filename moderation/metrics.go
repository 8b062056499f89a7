package moderation

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moderation_actions_total",
	Help: "Number of moderation actions processed, by kind and outcome",
}, []string{"kind", "outcome"})

var actionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "moderation_action_duration_seconds",
	Help:    "Time taken to process a moderation action",
	Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
}, []string{"kind"})

var dmAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moderation_dm_attempts_total",
	Help: "Number of direct message notifications attempted, by delivery",
}, []string{"delivered"})

func observeAction(kind Kind, err error, took time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = string(ErrorKindOf(err))
		if outcome == "" {
			outcome = "error"
		}
	}

	if !kind.Valid() {
		kind = "UNKNOWN"
	}

	actionsTotal.WithLabelValues(string(kind), outcome).Inc()
	actionDuration.WithLabelValues(string(kind)).Observe(took.Seconds())
}

func observeDM(delivered bool) {
	dmAttempts.WithLabelValues(strconv.FormatBool(delivered)).Inc()
}
