package game

import (
	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
)

// AgentView is a read-only copy of one agent's state for a viewer.
type AgentView struct {
	Position components.Position
	Hull     components.Hull
	Motion   components.Motion
	Gun      components.Gun
	Energy   components.Energy
	Agent    components.Agent
}

// ProjectileView is a read-only copy of one shot in flight.
type ProjectileView struct {
	Position   components.Position
	Projectile components.Projectile
}

// Agents returns every agent in roster order, eliminated ones included.
func (m *Match) Agents() []AgentView {
	out := make([]AgentView, 0, len(m.entrants))
	for _, e := range m.entrants {
		pos, hull, mot, gun, energy, agent := m.agents.Get(e.entity)
		out = append(out, AgentView{
			Position: *pos,
			Hull:     *hull,
			Motion:   *mot,
			Gun:      *gun,
			Energy:   *energy,
			Agent:    *agent,
		})
	}
	return out
}

// Projectiles returns every shot in flight.
func (m *Match) Projectiles() []ProjectileView {
	var out []ProjectileView
	query := m.shots.Query()
	for query.Next() {
		pos, proj := query.Get()
		out = append(out, ProjectileView{Position: *pos, Projectile: *proj})
	}
	return out
}

// Config returns the configuration the match runs with.
func (m *Match) Config() *config.Config { return m.cfg }
