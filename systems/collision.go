package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/pilot"
)

// Ram records two hulls colliding. Initiator is the agent that drove into the other, or -1
// when neither did.
type Ram struct {
	A, B      int
	Initiator int
	Damage    float64
}

type body struct {
	id     int
	name   string
	pos    *components.Position
	hull   components.Hull
	mot    *components.Motion
	energy *components.Energy
}

// CollisionSystem separates overlapping hulls and applies ram damage.
type CollisionSystem struct {
	filter *ecs.Filter5[components.Position, components.Hull, components.Motion, components.Energy, components.Agent]
	rules  config.RulesConfig
	bounds Bounds
	out    *Outbox

	bodies []body
}

// NewCollisionSystem creates a new collision system.
func NewCollisionSystem(w *ecs.World, rules config.RulesConfig, bounds Bounds, out *Outbox) *CollisionSystem {
	return &CollisionSystem{
		filter: ecs.NewFilter5[components.Position, components.Hull, components.Motion, components.Energy, components.Agent](w),
		rules:  rules,
		bounds: bounds,
		out:    out,
	}
}

// Update runs the collision system.
func (s *CollisionSystem) Update() []Ram {
	s.bodies = s.bodies[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, hull, mot, energy, agent := query.Get()
		if energy.Alive {
			s.bodies = append(s.bodies, body{id: agent.ID, name: agent.Name, pos: pos, hull: *hull, mot: mot, energy: energy})
		}
	}

	var rams []Ram
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			if r, ok := s.collide(&s.bodies[i], &s.bodies[j]); ok {
				rams = append(rams, r)
			}
		}
	}
	return rams
}

func (s *CollisionSystem) collide(a, b *body) (Ram, bool) {
	ox, oy := Overlap(Vec(*a.pos), a.hull, Vec(*b.pos), b.hull)
	if ox <= 0 || oy <= 0 {
		return Ram{}, false
	}

	bearingA := pilot.NormalizeBearing(HeadingTo(Vec(*a.pos), Vec(*b.pos)) - a.mot.Heading)
	bearingB := pilot.NormalizeBearing(HeadingTo(Vec(*b.pos), Vec(*a.pos)) - b.mot.Heading)
	aRams := drivingInto(a.mot.Velocity, bearingA)
	bRams := drivingInto(b.mot.Velocity, bearingB)

	dmg := s.rules.RamDamage
	a.energy.Value = math.Max(a.energy.Value-dmg, 0)
	b.energy.Value = math.Max(b.energy.Value-dmg, 0)

	s.separate(a, b, ox, oy)
	for _, x := range []*body{a, b} {
		x.mot.Velocity = 0
		x.mot.DistanceRemaining = 0
	}

	s.out.Post(a.id, pilot.CollisionImpact{Name: b.name, Energy: b.energy.Value, Bearing: bearingA, SelfInitiated: aRams})
	s.out.Post(b.id, pilot.CollisionImpact{Name: a.name, Energy: a.energy.Value, Bearing: bearingB, SelfInitiated: bRams})

	r := Ram{A: a.id, B: b.id, Initiator: -1, Damage: dmg}
	switch {
	case aRams:
		r.Initiator = a.id
	case bRams:
		r.Initiator = b.id
	}
	return r, true
}

// drivingInto reports whether a hull moving at velocity is heading toward something at the
// given relative bearing.
func drivingInto(velocity, bearing float64) bool {
	switch {
	case velocity > 0:
		return math.Abs(bearing) < 90
	case velocity < 0:
		return math.Abs(bearing) > 90
	default:
		return false
	}
}

// separate pushes both hulls apart along the axis of least overlap.
func (s *CollisionSystem) separate(a, b *body, ox, oy float64) {
	if ox < oy {
		push := ox / 2
		if a.pos.X < b.pos.X {
			push = -push
		}
		a.pos.X += push
		b.pos.X -= push
	} else {
		push := oy / 2
		if a.pos.Y < b.pos.Y {
			push = -push
		}
		a.pos.Y += push
		b.pos.Y -= push
	}
	ClampToArena(a.pos, a.hull, s.bounds)
	ClampToArena(b.pos, b.hull, s.bounds)
}
