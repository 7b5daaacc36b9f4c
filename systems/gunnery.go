package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/pilot"
)

// Shot records a projectile leaving a gun.
type Shot struct {
	Agent int
	Power float64
}

// GunnerySystem turns guns, cools them and launches projectiles.
type GunnerySystem struct {
	filter      *ecs.Filter5[components.Position, components.Hull, components.Gun, components.Energy, components.Agent]
	projectiles *ecs.Map2[components.Position, components.Projectile]
	rules       config.RulesConfig
}

// NewGunnerySystem creates a new gunnery system.
func NewGunnerySystem(w *ecs.World, rules config.RulesConfig) *GunnerySystem {
	return &GunnerySystem{
		filter:      ecs.NewFilter5[components.Position, components.Hull, components.Gun, components.Energy, components.Agent](w),
		projectiles: ecs.NewMap2[components.Position, components.Projectile](w),
		rules:       rules,
	}
}

type launch struct {
	pos  components.Position
	proj components.Projectile
}

// Update runs the gunnery system. A fire order on a hot gun, or one the agent cannot pay for,
// lapses with the tick.
func (s *GunnerySystem) Update() []Shot {
	var launches []launch
	var shots []Shot

	query := s.filter.Query()
	for query.Next() {
		pos, hull, gun, energy, agent := query.Get()
		gun.PrevHeading = gun.Heading
		if !energy.Alive {
			gun.Pending = 0
			continue
		}

		step := clamp(gun.TurnRemaining, -s.rules.GunTurnRate, s.rules.GunTurnRate)
		gun.Heading = pilot.NormalizeHeading(gun.Heading + step)
		gun.TurnRemaining -= step
		if math.Abs(gun.TurnRemaining) < 1e-9 {
			gun.TurnRemaining = 0
		}

		gun.Heat = math.Max(gun.Heat-s.rules.GunCooling, 0)
		if gun.Heat < 1e-9 {
			gun.Heat = 0
		}

		power := gun.Pending
		gun.Pending = 0
		if power <= 0 || gun.Heat > 0 {
			continue
		}
		power = clamp(power, s.rules.MinPower, s.rules.MaxPower)
		if power >= energy.Value {
			continue
		}

		energy.Value -= power
		gun.Heat = components.GunHeat(power)

		// Launch from the hull edge so the shooter cannot hit itself.
		reach := math.Max(hull.Width, hull.Height)/2 + 1
		muzzle := r2.Add(Vec(*pos), r2.Scale(reach, Direction(gun.Heading)))
		launches = append(launches, launch{
			pos: components.Position{X: muzzle.X, Y: muzzle.Y},
			proj: components.Projectile{
				Owner:   agent.ID,
				Heading: gun.Heading,
				Power:   power,
				Speed:   components.ProjectileSpeed(power),
			},
		})
		shots = append(shots, Shot{Agent: agent.ID, Power: power})
	}

	for i := range launches {
		s.projectiles.NewEntity(&launches[i].pos, &launches[i].proj)
	}
	return shots
}
