package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/pilot"
)

func fireAt(w *ecs.World, owner int, x, y, heading, power float64) {
	pos := components.Position{X: x, Y: y}
	proj := components.Projectile{Owner: owner, Heading: heading, Power: power, Speed: components.ProjectileSpeed(power)}
	ecs.NewMap2[components.Position, components.Projectile](w).NewEntity(&pos, &proj)
}

func TestProjectileHit(t *testing.T) {
	tw := newTestWorld()
	shooter := tw.add(spawn{name: "shooter", x: 100, y: 300})
	victim := tw.add(spawn{name: "victim", x: 130, y: 300, mot: components.Motion{Heading: 0}})
	out := NewOutbox()
	s := NewProjectileSystem(tw.w, arena, out)

	// Power 3 travels 11 per tick and lands inside the victim's hull at x=121.
	fireAt(tw.w, 0, 110, 300, 90, 3)
	hits := s.Update()

	if len(hits) != 1 {
		t.Fatalf("hits = %v, want one", hits)
	}
	if hits[0].Shooter != 0 || hits[0].Target != 1 || hits[0].Damage != 16 {
		t.Errorf("hit = %+v", hits[0])
	}

	_, _, _, se := tw.get(shooter)
	_, _, _, ve := tw.get(victim)
	if se.Value != 109 || ve.Value != 84 {
		t.Errorf("energy shooter = %v victim = %v, want 109, 84", se.Value, ve.Value)
	}

	hit, ok := find[pilot.ShotHit](out.Drain(0))
	if !ok || hit.Target != "victim" || hit.TargetEnergy != 84 {
		t.Errorf("ShotHit = %+v (%v)", hit, ok)
	}
	impact, ok := find[pilot.ProjectileImpact](out.Drain(1))
	if !ok || impact.Source != "shooter" || !near(impact.Bearing, -90) || impact.Power != 3 {
		t.Errorf("ProjectileImpact = %+v (%v)", impact, ok)
	}

	if n, _, _ := countProjectiles(tw.w); n != 0 {
		t.Errorf("projectiles left = %d, want 0", n)
	}
}

func TestProjectileMiss(t *testing.T) {
	tw := newTestWorld()
	tw.add(spawn{name: "shooter", x: 100, y: 300})
	out := NewOutbox()
	s := NewProjectileSystem(tw.w, arena, out)

	fireAt(tw.w, 0, 400, 595, 0, 1)
	s.Update()

	if _, ok := find[pilot.ShotMissed](out.Drain(0)); !ok {
		t.Error("no ShotMissed posted")
	}
	if n, _, _ := countProjectiles(tw.w); n != 0 {
		t.Errorf("projectiles left = %d, want 0", n)
	}
}

func TestProjectileIntercept(t *testing.T) {
	tw := newTestWorld()
	tw.add(spawn{name: "a", x: 100, y: 100})
	tw.add(spawn{name: "b", x: 700, y: 100})
	out := NewOutbox()
	s := NewProjectileSystem(tw.w, arena, out)

	// Both shots travel 17 per tick and end up 1 apart.
	fireAt(tw.w, 0, 383, 300, 90, 1)
	fireAt(tw.w, 1, 418, 300, 270, 1)
	s.Update()

	if _, ok := find[pilot.ShotIntercepted](out.Drain(0)); !ok {
		t.Error("a not told of intercept")
	}
	if _, ok := find[pilot.ShotIntercepted](out.Drain(1)); !ok {
		t.Error("b not told of intercept")
	}
	if n, _, _ := countProjectiles(tw.w); n != 0 {
		t.Errorf("projectiles left = %d, want 0", n)
	}
}

func TestProjectileIgnoresOwnerAndDead(t *testing.T) {
	tw := newTestWorld()
	tw.add(spawn{name: "a", x: 100, y: 300})
	dead := tw.add(spawn{name: "b", x: 200, y: 300})
	_, _, _, energy := tw.get(dead)
	energy.Alive = false
	s := NewProjectileSystem(tw.w, arena, NewOutbox())

	fireAt(tw.w, 0, 90, 300, 90, 3)
	fireAt(tw.w, 0, 190, 300, 90, 3)

	if hits := s.Update(); len(hits) != 0 {
		t.Errorf("hits = %v, want none", hits)
	}
	if n, _, _ := countProjectiles(tw.w); n != 2 {
		t.Errorf("projectiles left = %d, want 2", n)
	}
}

func TestProjectileClear(t *testing.T) {
	tw := newTestWorld()
	s := NewProjectileSystem(tw.w, arena, NewOutbox())
	fireAt(tw.w, 0, 100, 100, 0, 1)
	fireAt(tw.w, 0, 200, 100, 0, 1)

	s.Clear()

	if n, _, _ := countProjectiles(tw.w); n != 0 {
		t.Errorf("projectiles left = %d, want 0", n)
	}
}
