// Package metrics records server page and action metrics with Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	obserrors "github.com/target/serverboard/internal/observability/errors"
)

// Result constants for metric labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

const namespace = "serverboard"

// ActionMetric captures one delete/leave/update attempt.
type ActionMetric struct {
	Action   string
	Result   string
	Duration time.Duration
	Err      error
}

// Recorder owns the collectors. A nil *Recorder records nothing.
type Recorder struct {
	gatherer   prometheus.Gatherer
	pageStates *prometheus.CounterVec
	staleLoads prometheus.Counter
	actions    *prometheus.CounterVec
	actionDur  *prometheus.HistogramVec
	cacheHits  *prometheus.CounterVec
}

// New registers the collectors on a fresh registry that also carries the Go and
// process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg)
}

// NewWithRegistry registers the collectors on reg. Tests pass their own registry.
func NewWithRegistry(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		gatherer: reg,
		pageStates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "server_page_renders_total",
			Help:      "Server detail content renders by terminal view state.",
		}, []string{"state"}),
		staleLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "server_page_stale_loads_total",
			Help:      "Server detail loads discarded because a newer load was issued.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "server_actions_total",
			Help:      "Server actions by action, result and error class.",
		}, []string{"action", "result", "error_class"}),
		actionDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "server_action_duration_seconds",
			Help:      "Latency of server actions.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "server_cache_lookups_total",
			Help:      "Server record cache lookups by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(r.pageStates, r.staleLoads, r.actions, r.actionDur, r.cacheHits)
	return r
}

// PageState counts one rendered view state (present, absent, invalid).
func (r *Recorder) PageState(state string) {
	if r == nil {
		return
	}
	r.pageStates.WithLabelValues(state).Inc()
}

// StaleLoad counts one discarded load.
func (r *Recorder) StaleLoad() {
	if r == nil {
		return
	}
	r.staleLoads.Inc()
}

// Action records the outcome of a mutating action.
func (r *Recorder) Action(in ActionMetric) {
	if r == nil {
		return
	}
	class := ""
	if in.Result == ResultError {
		class = obserrors.Classify(in.Err)
	}
	r.actions.WithLabelValues(in.Action, in.Result, class).Inc()
	if in.Duration > 0 {
		r.actionDur.WithLabelValues(in.Action).Observe(in.Duration.Seconds())
	}
}

// CacheLookup counts a cache hit (true) or miss (false).
func (r *Recorder) CacheLookup(hit bool) {
	if r == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheHits.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
