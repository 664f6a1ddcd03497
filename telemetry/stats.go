// Package telemetry records per-tick physics and performance statistics for
// a running Simulation: a rolling perf collector over the tick phases
// and a window-aggregated physics summary (particle counts, conserved
// quantities, speed distribution) suitable for CSV export and structured
// logging.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated physics statistics for a tick window:
// particle counts, conserved quantities, the particle speed distribution,
// and inflow/pump event counters.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	FluidParticles int `csv:"fluid_particles"`
	SolidParticles int `csv:"solid_particles"`

	// Conserved quantities, tracked for drift detection.
	TotalMass      float64 `csv:"total_mass"`
	TotalMomentumX float64 `csv:"total_momentum_x"`
	TotalMomentumY float64 `csv:"total_momentum_y"`
	TotalMomentumZ float64 `csv:"total_momentum_z"`

	// Particle speed distribution, sampled at window end.
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	MaxSpeed  float64 `csv:"max_speed"`

	// Inflow/outflow bookkeeping.
	DroppedInflow int `csv:"dropped_inflow"`
	PumpTeleports int `csv:"pump_teleports"`
}

// quantile returns the p-quantile (p in [0,1]) of values using gonum's
// empirical-CDF interpolation; values must already be sorted ascending.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// SpeedStats computes the mean/p10/p50/p90/max of a slice of particle
// speeds. speeds is sorted in place.
func SpeedStats(speeds []float64) (mean, p10, p50, p90, max float64) {
	if len(speeds) == 0 {
		return 0, 0, 0, 0, 0
	}
	sort.Float64s(speeds)
	mean = stat.Mean(speeds, nil)
	p10 = quantile(speeds, 0.10)
	p50 = quantile(speeds, 0.50)
	p90 = quantile(speeds, 0.90)
	max = speeds[len(speeds)-1]
	return
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("fluid_particles", s.FluidParticles),
		slog.Int("solid_particles", s.SolidParticles),
		slog.Float64("total_mass", s.TotalMass),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Int("dropped_inflow", s.DroppedInflow),
		slog.Int("pump_teleports", s.PumpTeleports),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"fluid_particles", s.FluidParticles,
		"solid_particles", s.SolidParticles,
		"total_mass", s.TotalMass,
		"speed_mean", s.SpeedMean,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"max_speed", s.MaxSpeed,
		"dropped_inflow", s.DroppedInflow,
		"pump_teleports", s.PumpTeleports,
	)
}
