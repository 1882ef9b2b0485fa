// Package status keeps lock-free run counters shared by the simulation and its collaborators.
package status

import (
	"math"
	"sync/atomic"

	"go.uber.org/zap"
)

// Metric names
const (
	Ticks             = "engine.ticks"
	Collisions        = "engine.collisions"
	Pickups           = "engine.pickups"
	PlacementExhaust  = "placement.exhausted"
	FramesSent        = "spectator.frames_sent"
	FramesSkipped     = "spectator.frames_skipped"
	SpectatorViewers  = "spectator.viewers"
	SpectatorAccepted = "spectator.accepted"
)

// Gauge is an atomic float64, the zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Add adds delta and returns the new value
func (g *Gauge) Add(delta float64) float64 {
	for {
		old := g.bits.Load()
		next := math.Float64frombits(old) + delta
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// Registry groups counters and gauges
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
	}
}

// Counter returns the named counter
func (r *Registry) Counter(name string) *atomic.Int64 {
	return r.Counters.Get(name)
}

// Gauge returns the named gauge
func (r *Registry) Gauge(name string) *Gauge {
	return r.Gauges.Get(name)
}

// Snapshot copies every metric value
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.Counters.Count()+r.Gauges.Count())
	r.Counters.Range(func(k string, c *atomic.Int64) {
		out[k] = float64(c.Load())
	})
	r.Gauges.Range(func(k string, g *Gauge) {
		out[k] = g.Get()
	})
	return out
}

// Fields renders the registry as log fields in key order
func (r *Registry) Fields() []zap.Field {
	fields := make([]zap.Field, 0, r.Counters.Count()+r.Gauges.Count())
	r.Counters.Range(func(k string, c *atomic.Int64) {
		fields = append(fields, zap.Int64(k, c.Load()))
	})
	r.Gauges.Range(func(k string, g *Gauge) {
		fields = append(fields, zap.Float64(k, g.Get()))
	})
	return fields
}
