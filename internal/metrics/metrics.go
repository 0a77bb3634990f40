package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal    *prometheus.CounterVec
	votesCastTotal       *prometheus.CounterVec
	sessionsCreatedTotal prometheus.Counter
	registerOnce         sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voting",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the voting API.",
		}, []string{"method", "path", "status"})

		votesCastTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voting",
			Name:      "votes_cast_total",
			Help:      "Total votes recorded in the ledger, by choice.",
		}, []string{"choice"})

		sessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "voting",
			Name:      "sessions_created_total",
			Help:      "Total voting sessions created.",
		})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func IncVoteCast(choice string) {
	if votesCastTotal == nil {
		return
	}
	votesCastTotal.WithLabelValues(choice).Inc()
}

func IncSessionCreated() {
	if sessionsCreatedTotal == nil {
		return
	}
	sessionsCreatedTotal.Inc()
}
