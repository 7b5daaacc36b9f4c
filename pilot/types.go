// Package pilot is the decision core of an arena combat agent: target tracking, firing,
// engagement, boundary avoidance, radar sweep and reflexive reactions.
//
// A host drives a Controller once per tick with the agent's status and the events observed
// during the tick; the controller answers with the Orders the host applies at its commit point.
package pilot

import (
	"math"

	"github.com/pthm-cable/skirmish/config"
)

// AgentStatus is the agent's own state, refreshed by the host once per tick.
// Headings are degrees in [0,360), 0 pointing up the arena's y axis and growing clockwise.
type AgentStatus struct {
	X, Y              float64
	Heading           float64
	GunHeading        float64
	Velocity          float64
	Energy            float64
	TurnRemaining     float64
	GunTurnRemaining  float64
	DistanceRemaining float64
	GunHeat           float64
	Width, Height     float64
	Tick              int64
}

// Contact is another agent seen by the radar.
type Contact struct {
	Name     string
	Distance float64
	Bearing  float64 // (-180,180] relative to our heading
	Heading  float64
	Velocity float64
	Energy   float64
	Tick     int64 // tick the contact was observed on
}

// ArenaBounds holds the match dimensions and the ranges derived from them.
type ArenaBounds struct {
	Width, Height   float64
	MaxDistance     float64
	PointBlankRange float64
}

// NewArenaBounds derives the diagonal and point-blank range for an arena and hull size.
func NewArenaBounds(width, height, hullWidth, hullHeight float64) ArenaBounds {
	return ArenaBounds{
		Width:           width,
		Height:          height,
		MaxDistance:     math.Hypot(width, height),
		PointBlankRange: config.PointBlankRange(hullWidth, hullHeight),
	}
}

// BoundsFromConfig returns the arena bounds described by cfg.
func BoundsFromConfig(cfg *config.Config) ArenaBounds {
	return NewArenaBounds(cfg.Arena.Width, cfg.Arena.Height, cfg.Hull.Width, cfg.Hull.Height)
}
