package client

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK       = "ok"
	outcomeFailed   = "failed"
	outcomeNotFound = "not_found"
	outcomeNetwork  = "network_error"
)

const requestsTotalName = "gophnotes_client_requests_total"

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "gophnotes_client",
		Name:      "requests_total",
		Help:      "Calls to the notes service by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

func observe(op operation, outcome string) {
	requestsTotal.WithLabelValues(op.name, outcome).Inc()
}

// outcomeOf classifies the result of a call for requestsTotal.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrNetwork):
		return outcomeNetwork
	default:
		return outcomeFailed
	}
}

// RequestStat is one series of the request counter.
type RequestStat struct {
	Op      string
	Outcome string
	Count   float64
}

// RequestStats reads the request counter from g, usually
// prometheus.DefaultGatherer, ordered by operation and outcome.
func RequestStats(g prometheus.Gatherer) ([]RequestStat, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var stats []RequestStat
	for _, mf := range families {
		if mf.GetName() != requestsTotalName {
			continue
		}
		for _, m := range mf.GetMetric() {
			st := RequestStat{Count: m.GetCounter().GetValue()}
			for _, l := range m.GetLabel() {
				switch l.GetName() {
				case "op":
					st.Op = l.GetValue()
				case "outcome":
					st.Outcome = l.GetValue()
				}
			}
			stats = append(stats, st)
		}
	}

	slices.SortFunc(stats, func(a, b RequestStat) int {
		return cmp.Or(cmp.Compare(a.Op, b.Op), cmp.Compare(a.Outcome, b.Outcome))
	})
	return stats, nil
}
