package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/pilot"
)

// WallHit records an agent running into the arena edge.
type WallHit struct {
	Agent  int
	Damage float64
}

// PhysicsSystem turns and moves hulls and stops them at the walls.
type PhysicsSystem struct {
	filter *ecs.Filter5[components.Position, components.Hull, components.Motion, components.Energy, components.Agent]
	rules  config.RulesConfig
	bounds Bounds
	out    *Outbox
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, rules config.RulesConfig, bounds Bounds, out *Outbox) *PhysicsSystem {
	return &PhysicsSystem{
		filter: ecs.NewFilter5[components.Position, components.Hull, components.Motion, components.Energy, components.Agent](w),
		rules:  rules,
		bounds: bounds,
		out:    out,
	}
}

// Update runs the physics system.
func (s *PhysicsSystem) Update() []WallHit {
	var hits []WallHit

	query := s.filter.Query()
	for query.Next() {
		pos, hull, mot, energy, agent := query.Get()
		if !energy.Alive {
			continue
		}

		s.turn(mot)
		s.accelerate(mot)

		p := r2.Add(Vec(*pos), r2.Scale(mot.Velocity, Direction(mot.Heading)))
		pos.X, pos.Y = p.X, p.Y

		wall, hit := ClampToArena(pos, *hull, s.bounds)
		if !hit {
			continue
		}
		damage := math.Max(math.Abs(mot.Velocity)*s.rules.WallDamageFactor-1, 0)
		energy.Value = math.Max(energy.Value-damage, 0)
		mot.Velocity = 0
		mot.DistanceRemaining = 0
		s.out.Post(agent.ID, pilot.WallImpact{Bearing: pilot.NormalizeBearing(wall - mot.Heading)})
		hits = append(hits, WallHit{Agent: agent.ID, Damage: damage})
	}
	return hits
}

// TurnRate returns the most the body can turn in one tick at the given speed.
func (s *PhysicsSystem) TurnRate(velocity float64) float64 {
	return math.Max(s.rules.MaxTurnRate-s.rules.TurnRateVelocityFactor*math.Abs(velocity), 0)
}

func (s *PhysicsSystem) turn(m *components.Motion) {
	if m.TurnRemaining == 0 {
		return
	}
	rate := s.TurnRate(m.Velocity)
	step := clamp(m.TurnRemaining, -rate, rate)
	m.Heading = pilot.NormalizeHeading(m.Heading + step)
	m.TurnRemaining -= step
	if math.Abs(m.TurnRemaining) < 1e-9 {
		m.TurnRemaining = 0
	}
}

// accelerate moves the velocity toward the remaining distance, never carrying the hull past
// the end of the order.
func (s *PhysicsSystem) accelerate(m *components.Motion) {
	want := clamp(m.DistanceRemaining, -s.rules.MaxVelocity, s.rules.MaxVelocity)
	v := m.Velocity

	switch {
	case want > v:
		rate := s.rules.Acceleration
		if v < 0 {
			rate = s.rules.Deceleration
		}
		v = math.Min(v+rate, want)
	case want < v:
		rate := s.rules.Acceleration
		if v > 0 {
			rate = s.rules.Deceleration
		}
		v = math.Max(v-rate, want)
	}

	switch r := m.DistanceRemaining; {
	case r >= 0 && v > r:
		v = r
	case r <= 0 && v < r:
		v = r
	}

	m.Velocity = v
	m.DistanceRemaining -= v
	if math.Abs(m.DistanceRemaining) < 1e-9 {
		m.DistanceRemaining = 0
	}
}
