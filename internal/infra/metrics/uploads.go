package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(uploadsTotal, searchesTotal) }

var uploadsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "uploads_total",
		Help: "Document submissions, labeled by outcome (accepted/rejected).",
	},
	[]string{"outcome"},
)

var searchesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "searches_total",
		Help: "Search queries issued, labeled by outcome (ok/failed).",
	},
	[]string{"outcome"},
)

func IncUpload(outcome string) { uploadsTotal.WithLabelValues(norm(outcome)).Inc() }
func IncSearch(outcome string) { searchesTotal.WithLabelValues(norm(outcome)).Inc() }
