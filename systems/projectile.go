package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/pilot"
)

// interceptRadius is how close two shots from different agents pass before both are destroyed.
const interceptRadius = 3

// Hit records a projectile striking an agent.
type Hit struct {
	Shooter int
	Target  int
	Power   float64
	Damage  float64
}

// target is a per-tick snapshot of an agent a projectile can strike.
type target struct {
	entity  ecs.Entity
	id      int
	name    string
	pos     r2.Vec
	hull    components.Hull
	heading float64
	alive   bool
}

// ProjectileSystem moves shots, resolves hits, misses and intercepts, and transfers energy.
type ProjectileSystem struct {
	world     *ecs.World
	shots     *ecs.Filter2[components.Position, components.Projectile]
	agents    *ecs.Filter5[components.Position, components.Hull, components.Motion, components.Energy, components.Agent]
	energyMap *ecs.Map[components.Energy]
	bounds    Bounds
	out       *Outbox

	targets []target
}

// NewProjectileSystem creates a new projectile system.
func NewProjectileSystem(w *ecs.World, bounds Bounds, out *Outbox) *ProjectileSystem {
	return &ProjectileSystem{
		world:     w,
		shots:     ecs.NewFilter2[components.Position, components.Projectile](w),
		agents:    ecs.NewFilter5[components.Position, components.Hull, components.Motion, components.Energy, components.Agent](w),
		energyMap: ecs.NewMap[components.Energy](w),
		bounds:    bounds,
		out:       out,
	}
}

type inFlight struct {
	entity ecs.Entity
	pos    r2.Vec
	proj   components.Projectile
}

// Update runs the projectile system.
func (s *ProjectileSystem) Update() []Hit {
	s.snapshotTargets()

	var flying []inFlight
	var spent []ecs.Entity
	var hits []Hit

	query := s.shots.Query()
	for query.Next() {
		pos, proj := query.Get()
		p := r2.Add(Vec(*pos), r2.Scale(proj.Speed, Direction(proj.Heading)))
		pos.X, pos.Y = p.X, p.Y

		if p.X < 0 || p.Y < 0 || p.X > s.bounds.Width || p.Y > s.bounds.Height {
			s.out.Post(proj.Owner, pilot.ShotMissed{Power: proj.Power})
			spent = append(spent, query.Entity())
			continue
		}
		flying = append(flying, inFlight{entity: query.Entity(), pos: p, proj: *proj})
	}

	gone := make(map[ecs.Entity]bool)
	for _, e := range spent {
		gone[e] = true
	}

	for i := range flying {
		f := &flying[i]
		if gone[f.entity] {
			continue
		}
		if t := s.struck(f); t != nil {
			hits = append(hits, s.resolveHit(f, t))
			gone[f.entity] = true
			continue
		}
		for j := i + 1; j < len(flying); j++ {
			g := &flying[j]
			if gone[g.entity] || g.proj.Owner == f.proj.Owner {
				continue
			}
			if Distance(f.pos, g.pos) <= interceptRadius {
				s.out.Post(f.proj.Owner, pilot.ShotIntercepted{Power: f.proj.Power})
				s.out.Post(g.proj.Owner, pilot.ShotIntercepted{Power: g.proj.Power})
				gone[f.entity], gone[g.entity] = true, true
				break
			}
		}
	}

	for e := range gone {
		s.world.RemoveEntity(e)
	}
	return hits
}

// Clear removes every projectile in flight.
func (s *ProjectileSystem) Clear() {
	var all []ecs.Entity
	query := s.shots.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		s.world.RemoveEntity(e)
	}
}

func (s *ProjectileSystem) snapshotTargets() {
	s.targets = s.targets[:0]
	query := s.agents.Query()
	for query.Next() {
		pos, hull, mot, energy, agent := query.Get()
		s.targets = append(s.targets, target{
			entity:  query.Entity(),
			id:      agent.ID,
			name:    agent.Name,
			pos:     Vec(*pos),
			hull:    *hull,
			heading: mot.Heading,
			alive:   energy.Alive,
		})
	}
}

func (s *ProjectileSystem) struck(f *inFlight) *target {
	for i := range s.targets {
		t := &s.targets[i]
		if t.alive && t.id != f.proj.Owner && Contains(t.pos, t.hull, f.pos) {
			return t
		}
	}
	return nil
}

func (s *ProjectileSystem) resolveHit(f *inFlight, t *target) Hit {
	damage := components.ProjectileDamage(f.proj.Power)
	victim := s.energyMap.Get(t.entity)
	victim.Value = math.Max(victim.Value-damage, 0)

	shooterName := ""
	for i := range s.targets {
		if s.targets[i].id == f.proj.Owner {
			shooter := s.energyMap.Get(s.targets[i].entity)
			if shooter.Alive {
				shooter.Value += 3 * f.proj.Power
			}
			shooterName = s.targets[i].name
			break
		}
	}

	s.out.Post(f.proj.Owner, pilot.ShotHit{Target: t.name, Power: f.proj.Power, TargetEnergy: victim.Value})
	s.out.Post(t.id, pilot.ProjectileImpact{
		Source:   shooterName,
		Power:    f.proj.Power,
		Bearing:  pilot.NormalizeBearing(f.proj.Heading + 180 - t.heading),
		Velocity: f.proj.Speed,
	})
	return Hit{Shooter: f.proj.Owner, Target: t.id, Power: f.proj.Power, Damage: damage}
}
