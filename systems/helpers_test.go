package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/pilot"
)

func init() {
	config.MustInit("")
}

var arena = Bounds{Width: 800, Height: 600}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// testWorld wraps a world with a mapper for spawning agents.
type testWorld struct {
	w      *ecs.World
	agents *ecs.Map6[components.Position, components.Hull, components.Motion, components.Gun, components.Energy, components.Agent]
	nextID int
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		w:      w,
		agents: ecs.NewMap6[components.Position, components.Hull, components.Motion, components.Gun, components.Energy, components.Agent](w),
	}
}

type spawn struct {
	name   string
	x, y   float64
	mot    components.Motion
	gun    components.Gun
	energy float64
}

func (tw *testWorld) add(s spawn) ecs.Entity {
	pos := components.Position{X: s.x, Y: s.y}
	hull := components.Hull{Width: 20, Height: 20}
	mot := s.mot
	gun := s.gun
	if s.energy == 0 {
		s.energy = 100
	}
	energy := components.Energy{Value: s.energy, Alive: true}
	agent := components.Agent{ID: tw.nextID, Name: s.name}
	tw.nextID++
	return tw.agents.NewEntity(&pos, &hull, &mot, &gun, &energy, &agent)
}

func (tw *testWorld) get(e ecs.Entity) (*components.Position, *components.Motion, *components.Gun, *components.Energy) {
	pos, _, mot, gun, energy, _ := tw.agents.Get(e)
	return pos, mot, gun, energy
}

func find[T pilot.Event](evs []pilot.Event) (T, bool) {
	for _, ev := range evs {
		if t, ok := ev.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
