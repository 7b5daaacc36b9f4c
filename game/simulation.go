package game

import (
	"github.com/pthm-cable/skirmish/pilot"
	"github.com/pthm-cable/skirmish/telemetry"
)

// simulationStep runs one tick: every live pilot decides, then the systems apply the orders.
func (m *Match) simulationStep() {
	m.perf.StartTick()

	m.perf.StartPhase(telemetry.PhaseDecide)
	for _, e := range m.alive() {
		orders := m.deliver(e)
		m.apply(e, orders)
	}

	m.perf.StartPhase(telemetry.PhasePhysics)
	for _, w := range m.physics.Update() {
		m.collector.RecordWall(w.Agent, w.Damage)
	}

	m.perf.StartPhase(telemetry.PhaseGunnery)
	for _, s := range m.gunnery.Update() {
		m.collector.RecordShot(s.Agent, s.Power)
	}

	m.perf.StartPhase(telemetry.PhaseProjectiles)
	for _, h := range m.projectiles.Update() {
		m.collector.RecordHit(h.Shooter, h.Target, h.Damage)
	}

	m.perf.StartPhase(telemetry.PhaseCollisions)
	for _, r := range m.collisions.Update() {
		m.collector.RecordRam(r.A, r.B, r.Initiator)
	}

	m.perf.StartPhase(telemetry.PhaseScan)
	m.scanner.Update()

	m.perf.StartPhase(telemetry.PhaseBookkeeping)
	m.tick++
	m.totalTicks++
	m.eliminate()

	m.perf.EndTick()
}

// deliver hands an entrant its status and queued events and returns its orders.
func (m *Match) deliver(e *entrant) pilot.Orders {
	events := m.out.Drain(e.id)
	m.collector.RecordEvents(e.id, events)
	return e.pilot.Step(pilot.Tick{
		Index:  m.tick,
		Status: m.status(e),
		Events: events,
	})
}

// status reads an entrant's components into the snapshot its pilot sees.
func (m *Match) status(e *entrant) pilot.AgentStatus {
	pos, hull, mot, gun, energy, _ := m.agents.Get(e.entity)
	return pilot.AgentStatus{
		X:                 pos.X,
		Y:                 pos.Y,
		Heading:           mot.Heading,
		GunHeading:        gun.Heading,
		Velocity:          mot.Velocity,
		Energy:            energy.Value,
		TurnRemaining:     mot.TurnRemaining,
		GunTurnRemaining:  gun.TurnRemaining,
		DistanceRemaining: mot.DistanceRemaining,
		GunHeat:           gun.Heat,
		Width:             hull.Width,
		Height:            hull.Height,
		Tick:              m.tick,
	}
}

// apply writes a pilot's orders onto its entity. Set slots replace the standing order; unset
// slots leave it running.
func (m *Match) apply(e *entrant, o pilot.Orders) {
	_, _, mot, gun, _, agent := m.agents.Get(e.entity)

	if o.TurnBody.Set {
		mot.TurnRemaining = o.TurnBody.Value
	}
	if o.Move.Set {
		mot.DistanceRemaining = o.Move.Value
	}
	if o.TurnSensor.Set {
		gun.TurnRemaining = o.TurnSensor.Value
	}
	if o.Fire.Set {
		if p := o.Fire.Value; p <= 0 || p > m.cfg.Rules.MaxPower {
			m.invalidFires++
			m.log.Warn("invalid fire order", "agent", e.name, "tick", m.tick, "power", p)
		} else {
			gun.Pending = p
		}
	}
	if o.HasColours {
		agent.Indicators = o.Colours
	}
}
