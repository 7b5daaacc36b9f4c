// Package components defines ECS components for the arena.
package components

import "github.com/pthm-cable/skirmish/pilot"

// Position is the centre of a hull or projectile in arena units, y up.
type Position struct {
	X, Y float64
}

// Hull is the axis-aligned bounding box every agent occupies.
type Hull struct {
	Width, Height float64
}

// Motion holds the body's heading and the movement orders still being carried out.
type Motion struct {
	Heading           float64 // degrees, 0 = up, clockwise
	Velocity          float64
	TurnRemaining     float64
	DistanceRemaining float64
}

// Gun holds the turret state. The radar is mounted on the gun and sweeps with it.
type Gun struct {
	Heading       float64
	PrevHeading   float64 // heading at the start of the tick, for the radar arc
	TurnRemaining float64
	Heat          float64
	Pending       float64 // fire power ordered this tick; 0 = none
}

// Energy is the agent's life and ammunition.
type Energy struct {
	Value float64
	Alive bool
}

// Agent identifies an entrant and carries what it shows to the world.
type Agent struct {
	ID         int
	Name       string
	Kind       string
	Indicators pilot.Indicators
	DiedAt     int64 // tick of elimination, 0 while alive
	Placement  int   // 1 = last standing
}

// Projectile is a shot in flight.
type Projectile struct {
	Owner   int // Agent.ID of the shooter
	Heading float64
	Power   float64
	Speed   float64
}

// ProjectileSpeed returns the flight speed of a shot of the given power.
func ProjectileSpeed(power float64) float64 {
	return 20 - 3*power
}

// ProjectileDamage returns the energy a hit of the given power removes from the target.
func ProjectileDamage(power float64) float64 {
	d := 4 * power
	if power > 1 {
		d += 2 * (power - 1)
	}
	return d
}

// GunHeat returns the heat a shot of the given power adds to the gun.
func GunHeat(power float64) float64 {
	return 1 + power/5
}
