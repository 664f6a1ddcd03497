package main

import (
	"math"

	"github.com/pthm-cable/mlsmpm/config"
	"github.com/pthm-cable/mlsmpm/sim"
)

// FitnessEvaluator runs the still-bath scenario headless and scores a
// constitutive constant vector by how quickly and quietly the bath settles.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	baseConfig *config.Config
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{params: params, maxTicks: maxTicks, baseConfig: baseCfg}
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// mean particle speed averaged over the run's second half, which should
// approach zero for a stable, non-divergent fluid at rest. Runs that diverge
// (NaN or infinite mean speed, or mean speed above 1e6 on any tick) are
// penalized sharply.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	s, err := sim.NewSimulation(cfg)
	if err != nil {
		return math.Inf(1)
	}

	dt := cfg.Constants.WorldDT
	half := fe.maxTicks / 2
	var settleSum, settleCount float64

	for tick := int32(0); tick < fe.maxTicks; tick++ {
		s.Tick(dt)

		speed := meanSpeed(s)
		if math.IsNaN(speed) || math.IsInf(speed, 0) || speed > 1e6 {
			return 1e9
		}
		if tick >= half {
			settleSum += speed
			settleCount++
		}
	}

	if settleCount == 0 {
		return 1e9
	}
	return settleSum / settleCount
}

func meanSpeed(s *sim.Simulation) float64 {
	views := s.Particles()
	if len(views) == 0 {
		return 0
	}
	var sum float64
	for _, v := range views {
		d := v.Velocity
		sum += math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
	}
	return sum / float64(len(views))
}

func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.baseConfig
	return &c
}
