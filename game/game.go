// Package game runs matches between pilots in a headless arena.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/pilot"
	"github.com/pthm-cable/skirmish/systems"
	"github.com/pthm-cable/skirmish/telemetry"
)

// ErrRoster is returned when the roster cannot make a match.
var ErrRoster = errors.New("roster needs at least two agents")

// Pilot steers one agent: it sees a tick and answers with orders.
type Pilot interface {
	Name() string
	Step(t pilot.Tick) pilot.Orders
}

// Options configure a match.
type Options struct {
	Config   *config.Config
	RunID    string
	Seed     int64
	Rounds   int // 0 = config
	MaxTicks int // per round; 0 = config
	Logger   *slog.Logger
	Output   *telemetry.OutputManager
}

// entrant is one roster entry and the entity it drives.
type entrant struct {
	id     int
	name   string
	kind   string
	entity ecs.Entity
	pilot  Pilot
	ctrl   *pilot.Controller // nil for drones
}

// Result is the outcome of a finished (or interrupted) match.
type Result struct {
	RunID             string
	Rounds            int
	Ticks             int64
	Summaries         []telemetry.Summary
	InvalidFireOrders int
}

// Match holds the complete match state.
type Match struct {
	cfg    *config.Config
	log    *slog.Logger
	rng    *rand.Rand
	runID  string
	seed   int64
	rounds int
	limit  int

	world  *ecs.World
	agents *ecs.Map6[components.Position, components.Hull, components.Motion, components.Gun, components.Energy, components.Agent]
	shots  *ecs.Filter2[components.Position, components.Projectile]

	entrants []*entrant
	out      *systems.Outbox

	physics     *systems.PhysicsSystem
	gunnery     *systems.GunnerySystem
	projectiles *systems.ProjectileSystem
	collisions  *systems.CollisionSystem
	scanner     *systems.ScannerSystem

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	history   []telemetry.RoundStats

	// State
	round        int
	tick         int64
	totalTicks   int64
	invalidFires int
	finished     bool
}

// NewMatch creates a match and starts its first round.
func NewMatch(opts Options) (*Match, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if len(cfg.Roster) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrRoster, len(cfg.Roster))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rounds := opts.Rounds
	if rounds <= 0 {
		rounds = cfg.Arena.Rounds
	}
	if rounds <= 0 {
		rounds = 1
	}
	limit := opts.MaxTicks
	if limit <= 0 {
		limit = cfg.Arena.MaxTicks
	}

	world := ecs.NewWorld()
	out := systems.NewOutbox()
	bounds := systems.Bounds{Width: cfg.Arena.Width, Height: cfg.Arena.Height}

	m := &Match{
		cfg:    cfg,
		log:    logger,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		runID:  opts.RunID,
		seed:   opts.Seed,
		rounds: rounds,
		limit:  limit,
		world:  world,
		agents: ecs.NewMap6[components.Position, components.Hull, components.Motion, components.Gun, components.Energy, components.Agent](world),
		shots:  ecs.NewFilter2[components.Position, components.Projectile](world),
		out:    out,

		physics:     systems.NewPhysicsSystem(world, cfg.Rules, bounds, out),
		gunnery:     systems.NewGunnerySystem(world, cfg.Rules),
		projectiles: systems.NewProjectileSystem(world, bounds, out),
		collisions:  systems.NewCollisionSystem(world, cfg.Rules, bounds, out),
		scanner:     systems.NewScannerSystem(world, cfg.Rules.RadarRange, out),

		collector: telemetry.NewCollector(opts.RunID),
		perf:      telemetry.NewPerfCollector(120),
		output:    opts.Output,
	}

	for i, entry := range cfg.Roster {
		if err := m.enter(i, entry); err != nil {
			return nil, err
		}
	}

	m.log.Info("match created",
		"run_id", m.runID,
		"seed", m.seed,
		"rounds", m.rounds,
		"max_ticks", m.limit,
		"agents", len(m.entrants),
	)
	m.startRound()
	return m, nil
}

// Run steps the match until every round is played or ctx is cancelled.
func (m *Match) Run(ctx context.Context) (Result, error) {
	for m.Step() {
		if err := ctx.Err(); err != nil {
			m.finish()
			return m.Result(), err
		}
	}
	return m.Result(), nil
}

// Step runs a single tick. It returns false once the match is over.
func (m *Match) Step() bool {
	if m.finished {
		return false
	}

	m.simulationStep()

	if m.roundOver() {
		m.endRound()
		if m.round >= m.rounds {
			m.finish()
			return false
		}
		m.startRound()
	}
	return true
}

// Result reports the match so far.
func (m *Match) Result() Result {
	return Result{
		RunID:             m.runID,
		Rounds:            len(m.history) / max(len(m.entrants), 1),
		Ticks:             m.totalTicks,
		Summaries:         telemetry.Summarize(m.history),
		InvalidFireOrders: m.invalidFires,
	}
}

// Finished reports whether every round has been played.
func (m *Match) Finished() bool { return m.finished }

// Round returns the current round, counting from 1.
func (m *Match) Round() int { return m.round }

// Tick returns the tick within the current round.
func (m *Match) Tick() int64 { return m.tick }

// Perf returns tick timing over the recent window.
func (m *Match) Perf() telemetry.PerfStats { return m.perf.Stats() }

// History returns every finished round's stats.
func (m *Match) History() []telemetry.RoundStats { return m.history }

// Rounds returns the number of rounds the match plays.
func (m *Match) Rounds() int { return m.rounds }

// Stop ends the match early, writing the summary of the rounds played so far.
func (m *Match) Stop() { m.finish() }
