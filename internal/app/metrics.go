package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/mandelterm/internal/renderer"
)

// Metrics tracks drawing and event counters for one application.
type Metrics struct {
	// Render passes
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMinNs   atomic.Int64
	renderMaxNs   atomic.Int64
	lastRenderNs  atomic.Int64
	renderErrors  atomic.Uint64

	// Cell totals over all passes
	cells   atomic.Uint64
	members atomic.Uint64
	steps   atomic.Uint64

	// Event handling
	eventCount   atomic.Uint64
	reloadCount  atomic.Uint64
	reloadErrors atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	m.renderMinNs.Store(1<<63 - 1)
	return m
}

// RecordRender records one completed drawing pass.
func (m *Metrics) RecordRender(stats renderer.Stats) {
	ns := stats.Duration.Nanoseconds()

	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)
	m.lastRenderNs.Store(ns)
	m.cells.Add(uint64(stats.Cells))
	m.members.Add(uint64(stats.Members))
	m.steps.Add(uint64(stats.Steps))

	for {
		old := m.renderMinNs.Load()
		if ns >= old || m.renderMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.renderMaxNs.Load()
		if ns <= old || m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordRenderError records a drawing pass that failed.
func (m *Metrics) RecordRenderError() {
	m.renderErrors.Add(1)
}

// RecordEvent records a handled surface event.
func (m *Metrics) RecordEvent() {
	m.eventCount.Add(1)
}

// RecordReload records a config reload and whether it failed.
func (m *Metrics) RecordReload(err error) {
	m.reloadCount.Add(1)
	if err != nil {
		m.reloadErrors.Add(1)
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	renderCount := m.renderCount.Load()

	var avgRenderNs int64
	if renderCount > 0 {
		avgRenderNs = m.renderTotalNs.Load() / int64(renderCount)
	}

	minRenderNs := m.renderMinNs.Load()
	if minRenderNs == 1<<63-1 {
		minRenderNs = 0
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		RenderCount:  renderCount,
		RenderErrors: m.renderErrors.Load(),
		AvgRenderNs:  avgRenderNs,
		MinRenderNs:  minRenderNs,
		MaxRenderNs:  m.renderMaxNs.Load(),
		LastRenderNs: m.lastRenderNs.Load(),
		Cells:        m.cells.Load(),
		Members:      m.members.Load(),
		Steps:        m.steps.Load(),
		EventCount:   m.eventCount.Load(),
		ReloadCount:  m.reloadCount.Load(),
		ReloadErrors: m.reloadErrors.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	RenderCount  uint64
	RenderErrors uint64
	AvgRenderNs  int64
	MinRenderNs  int64
	MaxRenderNs  int64
	LastRenderNs int64
	Cells        uint64
	Members      uint64
	Steps        uint64
	EventCount   uint64
	ReloadCount  uint64
	ReloadErrors uint64
}

// AvgSteps returns the mean iteration count per cell.
func (s MetricsSnapshot) AvgSteps() float64 {
	if s.Cells == 0 {
		return 0
	}
	return float64(s.Steps) / float64(s.Cells)
}

// MemberRate returns the percentage of cells classified as members.
func (s MetricsSnapshot) MemberRate() float64 {
	if s.Cells == 0 {
		return 0
	}
	return float64(s.Members) / float64(s.Cells) * 100
}

// Metrics returns the application's metrics instance.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
