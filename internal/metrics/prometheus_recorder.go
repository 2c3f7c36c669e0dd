package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration prom.Histogram
	postResults   *prom.CounterVec
	buildOutcome  *prom.CounterVec
	watchRebuilds prom.Counter
	registry      *prom.Registry
}

// NewPrometheusRecorder constructs and registers Prometheus metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}

	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "blogbuilder",
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.postResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "blogbuilder",
		Name:      "post_results_total",
		Help:      "Per-post outcome counts",
	}, []string{"result"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "blogbuilder",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.watchRebuilds = prom.NewCounter(prom.CounterOpts{
		Namespace: "blogbuilder",
		Name:      "watch_rebuilds_total",
		Help:      "Rebuilds triggered by the source watcher",
	})

	reg.MustRegister(pr.buildDuration, pr.postResults, pr.buildOutcome, pr.watchRebuilds)
	return pr
}

// Registry exposes the underlying registry for the preview server's /metrics handler.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPostResult(result PostResult) {
	p.postResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncWatchRebuild() {
	p.watchRebuilds.Inc()
}
