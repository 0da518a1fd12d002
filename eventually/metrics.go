package eventually

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeSync  = "sync"
	modeAsync = "async"
)

var (
	attemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "eventually_attempts_total",
		Help: "The total number of attempts executed",
	}, []string{"mode"})

	successesTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "eventually_successes_total",
		Help: "The total number of retry invocations that succeeded",
	}, []string{"mode"})

	timeoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "eventually_timeouts_total",
		Help: "The total number of retry invocations that exceeded their deadline",
	}, []string{"mode"})
)
