// Package metrics tracks scene lifecycle and frame counters with Prometheus.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the viewer's metrics on a private registry. A nil or
// disabled Manager accepts every call and records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Lifecycle
	scenesBuilt       prometheus.Counter
	scenesDisposed    prometheus.Counter
	listenersAttached prometheus.Counter
	listenersDetached prometheus.Counter
	activeRenderLoops prometheus.Gauge
	meshBuildSeconds  prometheus.Histogram

	// Per frame
	frames       prometheus.Counter
	hoverChanges prometheus.Counter

	// Data source
	fetchErrors *prometheus.CounterVec
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry it
// registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "contribscape",
		subsystem:        "viewer",
		histogramBuckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		enabled:          true,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scenesBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scenes_built_total",
		Help:      "Scenes constructed",
	})
	m.scenesDisposed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scenes_disposed_total",
		Help:      "Scenes torn down",
	})
	m.listenersAttached = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "listeners_attached_total",
		Help:      "Input listeners attached by scenes",
	})
	m.listenersDetached = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "listeners_detached_total",
		Help:      "Input listeners detached by scene teardown",
	})
	m.activeRenderLoops = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_render_loops",
		Help:      "Scenes whose frame tick is live",
	})
	m.meshBuildSeconds = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mesh_build_seconds",
		Help:      "Terrain mesh build time",
		Buckets:   m.histogramBuckets,
	})
	m.frames = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_total",
		Help:      "Frames ticked",
	})
	m.hoverChanges = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hover_changes_total",
		Help:      "Changes of the hovered cell",
	})
	m.fetchErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Contribution fetch failures by reason",
	}, []string{"reason"})
}

func (m *Manager) on() bool {
	return m != nil && m.enabled
}

// Registry returns the registry the metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// SceneBuilt records a constructed scene and its live render loop.
func (m *Manager) SceneBuilt() {
	if !m.on() {
		return
	}
	m.scenesBuilt.Inc()
	m.activeRenderLoops.Inc()
}

// SceneDisposed records a scene teardown and its stopped render loop.
func (m *Manager) SceneDisposed() {
	if !m.on() {
		return
	}
	m.scenesDisposed.Inc()
	m.activeRenderLoops.Dec()
}

// ListenersAttached records n subscriptions added.
func (m *Manager) ListenersAttached(n int) {
	if !m.on() {
		return
	}
	m.listenersAttached.Add(float64(n))
}

// ListenersDetached records n subscriptions removed.
func (m *Manager) ListenersDetached(n int) {
	if !m.on() {
		return
	}
	m.listenersDetached.Add(float64(n))
}

// ObserveMeshBuild records one mesh build duration.
func (m *Manager) ObserveMeshBuild(d time.Duration) {
	if !m.on() {
		return
	}
	m.meshBuildSeconds.Observe(d.Seconds())
}

// Frame records one ticked frame.
func (m *Manager) Frame() {
	if !m.on() {
		return
	}
	m.frames.Inc()
}

// HoverChanged records a change of the hovered cell.
func (m *Manager) HoverChanged() {
	if !m.on() {
		return
	}
	m.hoverChanges.Inc()
}

// FetchFailed records a failed data fetch.
func (m *Manager) FetchFailed(reason string) {
	if !m.on() {
		return
	}
	m.fetchErrors.WithLabelValues(reason).Inc()
}

// Values gathers every scalar metric, keyed by short name (namespace and
// subsystem stripped; labeled series as name{value}). Histograms report
// their sample count.
func (m *Manager) Values() (map[string]float64, error) {
	out := make(map[string]float64)
	if m == nil {
		return out, nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}

	prefix := m.namespace + "_" + m.subsystem + "_"
	for _, mf := range families {
		name := strings.TrimPrefix(mf.GetName(), prefix)
		for _, metric := range mf.GetMetric() {
			key := name
			if labels := metric.GetLabel(); len(labels) > 0 {
				key = fmt.Sprintf("%s{%s}", name, labels[0].GetValue())
			}
			switch {
			case metric.GetCounter() != nil:
				out[key] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				out[key] = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				out[key] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}

// Summary renders Values as a single sorted line for logging.
func (m *Manager) Summary() string {
	values, err := m.Values()
	if err != nil {
		return err.Error()
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, values[k]))
	}
	return strings.Join(parts, " ")
}
