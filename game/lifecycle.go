package game

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/pilot"
)

// spawnAttempts bounds the search for a free spot at round start.
const spawnAttempts = 200

// enter creates the pilot and entity for one roster entry.
func (m *Match) enter(id int, entry config.RosterEntry) error {
	e := &entrant{id: id, name: entry.Name, kind: entry.Kind}

	switch entry.Kind {
	case config.KindPilot:
		opts := pilot.OptionsFromConfig(m.cfg, entry.Name)
		opts.Logger = m.log
		e.ctrl = pilot.New(opts)
		e.pilot = e.ctrl
	case config.KindDuck:
		e.pilot = NewDuck(entry.Name)
	case config.KindSpinner:
		e.pilot = NewSpinner(entry.Name)
	case config.KindCrawler:
		e.pilot = NewCrawler(entry.Name)
	default:
		return fmt.Errorf("%w: roster entry %q has unknown kind %q", config.ErrInvalid, entry.Name, entry.Kind)
	}

	pos := components.Position{}
	hull := components.Hull{Width: m.cfg.Hull.Width, Height: m.cfg.Hull.Height}
	mot := components.Motion{}
	gun := components.Gun{}
	energy := components.Energy{}
	agent := components.Agent{ID: id, Name: entry.Name, Kind: entry.Kind}
	e.entity = m.agents.NewEntity(&pos, &hull, &mot, &gun, &energy, &agent)

	m.entrants = append(m.entrants, e)
	m.collector.Register(id, entry.Name, entry.Kind)
	return nil
}

// startRound clears the arena and places every agent at a fresh spot with full energy.
func (m *Match) startRound() {
	m.round++
	m.tick = 0
	m.projectiles.Clear()
	m.out.Reset()

	var placed []components.Position
	for _, e := range m.entrants {
		pos, hull, mot, gun, energy, agent := m.agents.Get(e.entity)
		*pos = m.freeSpot(*hull, placed)
		placed = append(placed, *pos)

		heading := math.Floor(m.rng.Float64() * 360)
		*mot = components.Motion{Heading: heading}
		*gun = components.Gun{Heading: heading, PrevHeading: heading}
		*energy = components.Energy{Value: m.cfg.Rules.StartEnergy, Alive: true}
		agent.DiedAt = 0
		agent.Placement = 0
		agent.Indicators = pilot.Indicators{}
	}

	m.log.Info("round started", "round", m.round)
}

// freeSpot picks a random position whose hull clears the walls and keeps a hull's length from
// every placed agent. It falls back to the last candidate when the arena is crowded.
func (m *Match) freeSpot(hull components.Hull, placed []components.Position) components.Position {
	w, h := m.cfg.Arena.Width, m.cfg.Arena.Height
	gap := 2 * math.Max(hull.Width, hull.Height)

	var p components.Position
	for range spawnAttempts {
		p = components.Position{
			X: hull.Width + m.rng.Float64()*math.Max(w-2*hull.Width, 0),
			Y: hull.Height + m.rng.Float64()*math.Max(h-2*hull.Height, 0),
		}
		free := true
		for _, q := range placed {
			if math.Hypot(p.X-q.X, p.Y-q.Y) < gap {
				free = false
				break
			}
		}
		if free {
			return p
		}
	}
	return p
}

// eliminate retires every live agent whose energy ran out this tick.
func (m *Match) eliminate() {
	var fallen []*entrant
	for _, e := range m.entrants {
		_, _, _, _, energy, agent := m.agents.Get(e.entity)
		if energy.Alive && energy.Value <= 0 {
			energy.Alive = false
			energy.Value = 0
			agent.DiedAt = m.tick
			fallen = append(fallen, e)
		}
	}

	for _, f := range fallen {
		m.log.Info("agent eliminated", "round", m.round, "tick", m.tick, "agent", f.name)
		m.out.Post(f.id, pilot.SelfEliminated{Tick: m.tick})
		others := make([]int, 0, len(m.entrants)-1)
		for _, e := range m.entrants {
			if e != f {
				others = append(others, e.id)
			}
		}
		m.out.Broadcast(others, pilot.AgentEliminated{Name: f.name})
		// The fallen pilot hears about its own end once more; its orders are ignored.
		m.deliver(f)
	}
}

// alive returns the entrants still in the round.
func (m *Match) alive() []*entrant {
	var out []*entrant
	for _, e := range m.entrants {
		_, _, _, _, energy, _ := m.agents.Get(e.entity)
		if energy.Alive {
			out = append(out, e)
		}
	}
	return out
}

func (m *Match) roundOver() bool {
	if len(m.alive()) <= 1 {
		return true
	}
	return m.limit > 0 && m.tick >= int64(m.limit)
}

// endRound ranks the agents, tells every pilot the round is over and records the round.
func (m *Match) endRound() {
	ranked := m.rank()
	var winner *entrant
	if survivors := m.alive(); len(survivors) == 1 {
		winner = survivors[0]
		m.out.Post(winner.id, pilot.MatchWon{})
	}

	for place, e := range ranked {
		_, _, _, _, energy, agent := m.agents.Get(e.entity)
		agent.Placement = place + 1
		survival := m.tick
		if agent.DiedAt > 0 {
			survival = agent.DiedAt
		}
		m.out.Post(e.id, pilot.RoundEnded{Round: m.round, Turns: m.tick})
		m.deliver(e)
		m.collector.Finish(e.id, agent.Placement, survival, energy.Value)
		if e.ctrl != nil {
			m.collector.RecordCounters(e.id, e.ctrl.ResetCounters())
		}
	}

	attrs := []any{"round", m.round, "ticks", m.tick}
	if winner != nil {
		attrs = append(attrs, "winner", winner.name)
	}
	m.log.Info("round ended", attrs...)
	m.recordRound()
}

// rank orders entrants by survival: the living by energy, then the fallen by time of death.
func (m *Match) rank() []*entrant {
	ranked := slices.Clone(m.entrants)
	slices.SortStableFunc(ranked, func(a, b *entrant) int {
		_, _, _, _, ea, aa := m.agents.Get(a.entity)
		_, _, _, _, eb, ab := m.agents.Get(b.entity)
		switch {
		case ea.Alive != eb.Alive:
			if ea.Alive {
				return -1
			}
			return 1
		case ea.Alive:
			return cmp.Compare(eb.Value, ea.Value)
		default:
			return cmp.Compare(ab.DiedAt, aa.DiedAt)
		}
	})
	return ranked
}

// finish writes the match summary once.
func (m *Match) finish() {
	if m.finished {
		return
	}
	m.finished = true
	m.writeSummary()
	m.log.Info("match finished", "run_id", m.runID, "rounds", m.round, "ticks", m.totalTicks)
}
