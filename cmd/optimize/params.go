// Package main tunes the combat controller's thresholds with CMA-ES against the configured roster.
package main

import (
	"math"

	"github.com/pthm-cable/skirmish/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Tracking
			{Name: "lapse_ticks", Path: "pilot.lapse_ticks", Min: 20, Max: 200, Default: 60},
			{Name: "preempt_distance", Path: "pilot.preempt_distance", Min: 80, Max: 400, Default: 200},
			// Firing
			{Name: "assured_fire_threshold", Path: "pilot.assured_fire_threshold", Min: 10, Max: 60, Default: 25},
			// Engagement
			{Name: "medium_range", Path: "pilot.medium_range", Min: 60, Max: 300, Default: 120},
			{Name: "charge_ratio", Path: "pilot.charge_ratio", Min: 1.0, Max: 2.0, Default: 1.3},
			{Name: "medium_step", Path: "pilot.medium_step", Min: 8, Max: 60, Default: 16},
			{Name: "evade_step", Path: "pilot.evade_step", Min: 8, Max: 60, Default: 16},
			// Movement
			{Name: "maneuver_step", Path: "pilot.maneuver_step", Min: 8, Max: 60, Default: 16},
			// Reactions
			{Name: "ram_advance", Path: "pilot.ram_advance", Min: 10, Max: 100, Default: 40},
			{Name: "impact_turn", Path: "pilot.impact_turn", Min: 15, Max: 90, Default: 45},
			{Name: "weak_energy", Path: "pilot.weak_energy", Min: 20, Max: 80, Default: 50},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

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
		clamped[i] = math.Max(spec.Min, math.Min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	p := &cfg.Pilot

	p.LapseTicks = int64(math.Round(c[0]))
	p.PreemptDistance = c[1]
	p.AssuredFireThreshold = c[2]
	p.MediumRange = c[3]
	p.ChargeRatio = c[4]
	p.MediumStep = c[5]
	p.EvadeStep = c[6]
	p.ManeuverStep = c[7]
	p.RamAdvance = c[8]
	p.ImpactTurn = c[9]
	p.WeakEnergy = c[10]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	p := cfg.Pilot
	return []float64{
		float64(p.LapseTicks),
		p.PreemptDistance,
		p.AssuredFireThreshold,
		p.MediumRange,
		p.ChargeRatio,
		p.MediumStep,
		p.EvadeStep,
		p.ManeuverStep,
		p.RamAdvance,
		p.ImpactTurn,
		p.WeakEnergy,
	}
}
