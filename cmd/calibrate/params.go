// Package main tunes the fluid/elastic constitutive constants against a
// still-bath stability scenario using CMA-ES.
package main

import (
	"github.com/pthm-cable/mlsmpm/config"
)

// ParamSpec defines a single optimizable constant.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of all optimizable constitutive constants.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector returns the standard set of fluid/elastic constants
// calibrated against the still-bath scenario.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "fluid_rest_density", Min: 1.0, Max: 10.0, Default: 4.0},
			{Name: "fluid_stiffness", Min: 1.0, Max: 50.0, Default: 10.0},
			{Name: "fluid_power", Min: 1.0, Max: 8.0, Default: 4.0},
			{Name: "fluid_viscosity", Min: 0.0, Max: 0.02, Default: 0.001},
			{Name: "elastic_mu", Min: 1_000, Max: 300_000, Default: 78_000},
			{Name: "elastic_lambda", Min: 1_000, Max: 600_000, Default: 180_000},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg's fluid/elastic
// constants.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Constants.FluidModel.RestDensity = clamped[0]
	cfg.Constants.FluidModel.Stiffness = clamped[1]
	cfg.Constants.FluidModel.Power = clamped[2]
	cfg.Constants.FluidModel.Viscosity = clamped[3]
	cfg.Constants.ElasticModel.Mu = clamped[4]
	cfg.Constants.ElasticModel.Lambda = clamped[5]
}
