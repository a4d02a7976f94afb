package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const ServiceName = "dataview"

var (
	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "render", "duration_seconds"),
		Help:    "Duration of parsing and shaping a view in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"view"})
	RenderCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "render", "cache_total"),
		Help: "Memoised render lookups by outcome",
	}, []string{"result"})
	RenderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "render", "errors_total"),
		Help: "Renders that failed, by stage",
	}, []string{"stage"})
)
