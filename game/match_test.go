package game

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/pilot"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns a fresh copy of the defaults with the given roster.
func testConfig(t *testing.T, roster ...config.RosterEntry) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(roster) > 0 {
		cfg.Roster = roster
	}
	return cfg
}

func entry(name, kind string) config.RosterEntry {
	return config.RosterEntry{Name: name, Kind: kind}
}

func newTestMatch(t *testing.T, cfg *config.Config, rounds, maxTicks int) *Match {
	t.Helper()
	m, err := NewMatch(Options{
		Config:   cfg,
		RunID:    "test",
		Seed:     7,
		Rounds:   rounds,
		MaxTicks: maxTicks,
		Logger:   quiet(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMatchRunsToCompletion(t *testing.T) {
	cfg := testConfig(t)
	m := newTestMatch(t, cfg, 2, 600)

	res, err := m.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !m.Finished() {
		t.Fatal("match not finished")
	}
	if res.Rounds != 2 {
		t.Errorf("Rounds = %d, want 2", res.Rounds)
	}
	if res.InvalidFireOrders != 0 {
		t.Errorf("InvalidFireOrders = %d, want 0", res.InvalidFireOrders)
	}
	if len(res.Summaries) != len(cfg.Roster) {
		t.Errorf("got %d summaries, want %d", len(res.Summaries), len(cfg.Roster))
	}

	hist := m.History()
	if len(hist) != 2*len(cfg.Roster) {
		t.Fatalf("history has %d records, want %d", len(hist), 2*len(cfg.Roster))
	}
	for round := 1; round <= 2; round++ {
		seen := make(map[int]bool)
		for _, r := range hist {
			if r.Round != round {
				continue
			}
			if r.Placement < 1 || r.Placement > len(cfg.Roster) || seen[r.Placement] {
				t.Errorf("round %d: bad placement %d for %s", round, r.Placement, r.Agent)
			}
			seen[r.Placement] = true
			if r.SurvivalTicks <= 0 || r.SurvivalTicks > 600 {
				t.Errorf("round %d: %s survived %d ticks", round, r.Agent, r.SurvivalTicks)
			}
		}
	}

	if m.Step() {
		t.Error("Step after the last round should report false")
	}
}

func TestMatchRoundLimit(t *testing.T) {
	cfg := testConfig(t, entry("a", config.KindDuck), entry("b", config.KindDuck))
	m := newTestMatch(t, cfg, 3, 5)

	res, err := m.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Ticks != 15 {
		t.Errorf("Ticks = %d, want 15", res.Ticks)
	}
	// Equal energy keeps roster order.
	for _, r := range m.History() {
		want := 1
		if r.Agent == "b" {
			want = 2
		}
		if r.Placement != want {
			t.Errorf("round %d: %s placed %d, want %d", r.Round, r.Agent, r.Placement, want)
		}
		if r.SurvivalTicks != 5 || r.EndEnergy != cfg.Rules.StartEnergy {
			t.Errorf("round %d: %s survival=%d energy=%g", r.Round, r.Agent, r.SurvivalTicks, r.EndEnergy)
		}
	}
}

func TestMatchEliminationEndsRound(t *testing.T) {
	cfg := testConfig(t, entry("a", config.KindDuck), entry("b", config.KindDuck))
	m := newTestMatch(t, cfg, 1, 0)

	_, _, _, _, energy, _ := m.agents.Get(m.entrants[0].entity)
	energy.Value = 0

	if m.Step() {
		t.Fatal("match should end when one agent is left")
	}

	hist := m.History()
	if len(hist) != 2 {
		t.Fatalf("history has %d records, want 2", len(hist))
	}
	if hist[0].Agent != "b" || hist[0].Placement != 1 {
		t.Errorf("winner = %s (placement %d), want b", hist[0].Agent, hist[0].Placement)
	}
	if hist[1].Agent != "a" || hist[1].Placement != 2 || hist[1].SurvivalTicks != 1 {
		t.Errorf("loser = %+v", hist[1])
	}

	_, _, _, _, energy, agent := m.agents.Get(m.entrants[0].entity)
	if energy.Alive || agent.DiedAt != 1 {
		t.Errorf("eliminated agent alive=%v diedAt=%d", energy.Alive, agent.DiedAt)
	}
}

func TestMatchRanksDeadByTimeOfDeath(t *testing.T) {
	cfg := testConfig(t, entry("a", config.KindDuck), entry("b", config.KindDuck), entry("c", config.KindDuck))
	m := newTestMatch(t, cfg, 1, 0)

	set := func(i int, alive bool, value float64, diedAt int64) {
		_, _, _, _, energy, agent := m.agents.Get(m.entrants[i].entity)
		energy.Alive = alive
		energy.Value = value
		agent.DiedAt = diedAt
	}
	set(0, false, 0, 3)
	set(1, false, 0, 9)
	set(2, true, 40, 0)

	var names []string
	for _, e := range m.rank() {
		names = append(names, e.name)
	}
	if want := []string{"c", "b", "a"}; !reflect.DeepEqual(names, want) {
		t.Errorf("rank = %v, want %v", names, want)
	}
}

func TestMatchDeterministic(t *testing.T) {
	roster := []config.RosterEntry{
		entry("spin", config.KindSpinner),
		entry("crawl", config.KindCrawler),
		entry("duck", config.KindDuck),
	}
	run := func() []any {
		m := newTestMatch(t, testConfig(t, roster...), 2, 300)
		if _, err := m.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
		var out []any
		for _, r := range m.History() {
			out = append(out, r)
		}
		return out
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different histories")
	}
}

func TestMatchRunCancelled(t *testing.T) {
	m := newTestMatch(t, testConfig(t), 5, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if !m.Finished() {
		t.Error("cancelled match should be finished")
	}
}

func TestNewMatchRoster(t *testing.T) {
	tests := []struct {
		name   string
		roster []config.RosterEntry
		want   error
	}{
		{"single", []config.RosterEntry{entry("a", config.KindDuck)}, ErrRoster},
		{"unknown kind", []config.RosterEntry{entry("a", config.KindDuck), entry("b", "tank")}, config.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Roster = tt.roster
			_, err := NewMatch(Options{Config: cfg, Logger: quiet()})
			if !errors.Is(err, tt.want) {
				t.Errorf("NewMatch = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMatchStartRoundPlacement(t *testing.T) {
	cfg := testConfig(t)
	m := newTestMatch(t, cfg, 1, 0)

	agents := m.Agents()
	for i, a := range agents {
		if !a.Energy.Alive || a.Energy.Value != cfg.Rules.StartEnergy {
			t.Errorf("%s energy = %+v", a.Agent.Name, a.Energy)
		}
		if a.Gun.Heading != a.Motion.Heading {
			t.Errorf("%s gun %g != body %g", a.Agent.Name, a.Gun.Heading, a.Motion.Heading)
		}
		if a.Position.X < a.Hull.Width/2 || a.Position.X > cfg.Arena.Width-a.Hull.Width/2 ||
			a.Position.Y < a.Hull.Height/2 || a.Position.Y > cfg.Arena.Height-a.Hull.Height/2 {
			t.Errorf("%s placed outside the arena at %+v", a.Agent.Name, a.Position)
		}
		for _, b := range agents[i+1:] {
			if dx, dy := a.Position.X-b.Position.X, a.Position.Y-b.Position.Y; dx*dx+dy*dy < 40*40 {
				t.Errorf("%s and %s placed too close", a.Agent.Name, b.Agent.Name)
			}
		}
	}
	if len(m.Projectiles()) != 0 {
		t.Error("projectiles at round start")
	}
}

func TestApplyOrders(t *testing.T) {
	cfg := testConfig(t, entry("a", config.KindDuck), entry("b", config.KindDuck))
	m := newTestMatch(t, cfg, 1, 0)
	e := m.entrants[0]

	m.apply(e, pilot.Orders{
		TurnBody:   order(30),
		TurnSensor: order(-45),
		Move:       order(100),
		Fire:       order(2),
		Colours:    pilot.Indicators{Radar: pilot.ColourRed},
		HasColours: true,
	})
	_, _, mot, gun, _, agent := m.agents.Get(e.entity)
	if mot.TurnRemaining != 30 || mot.DistanceRemaining != 100 || gun.TurnRemaining != -45 || gun.Pending != 2 {
		t.Errorf("motion=%+v gun=%+v", *mot, *gun)
	}
	if agent.Indicators.Radar != pilot.ColourRed {
		t.Errorf("indicators = %+v", agent.Indicators)
	}

	// Unset slots keep the standing order.
	m.apply(e, pilot.Orders{Move: order(-20)})
	if mot.TurnRemaining != 30 || mot.DistanceRemaining != -20 {
		t.Errorf("motion = %+v", *mot)
	}

	gun.Pending = 0
	for _, p := range []float64{0, -1, cfg.Rules.MaxPower + 0.5} {
		m.apply(e, pilot.Orders{Fire: order(p)})
	}
	if gun.Pending != 0 || m.invalidFires != 3 {
		t.Errorf("pending=%g invalid=%d", gun.Pending, m.invalidFires)
	}
}

func TestDrones(t *testing.T) {
	contact := func(d float64) pilot.Tick {
		return pilot.Tick{Events: []pilot.Event{pilot.ContactObserved{Name: "x", Distance: d}}}
	}

	if o := NewDuck("d").Step(contact(50)); !o.Empty() {
		t.Errorf("duck orders = %+v", o)
	}

	s := NewSpinner("s")
	if o := s.Step(pilot.Tick{}); o.Fire.Set || o.TurnBody.Value != 10 || o.TurnSensor.Value != 20 {
		t.Errorf("idle spinner orders = %+v", o)
	}
	if o := s.Step(contact(700)); o.Fire != order(1) {
		t.Errorf("spinner fire = %+v", o.Fire)
	}

	c := NewCrawler("c")
	if o := c.Step(pilot.Tick{}); o.TurnBody.Set || o.Move.Value != 100 {
		t.Errorf("idle crawler orders = %+v", o)
	}
	if o := c.Step(pilot.Tick{Events: []pilot.Event{pilot.WallImpact{Bearing: 0}}}); o.TurnBody != order(90) {
		t.Errorf("crawler wall turn = %+v", o.TurnBody)
	}
	if o := c.Step(contact(500)); o.Fire.Set {
		t.Error("crawler fired out of range")
	}
	if o := c.Step(contact(300)); o.Fire != order(2) {
		t.Errorf("crawler fire = %+v", o.Fire)
	}
}

func TestMatchRecordsHitsAndRams(t *testing.T) {
	cfg := testConfig(t, entry("a", config.KindDuck), entry("b", config.KindDuck))
	m := newTestMatch(t, cfg, 1, 0)
	a, b := m.entrants[0], m.entrants[1]

	place := func(e *entrant, x, y float64) {
		pos, _, mot, gun, _, _ := m.agents.Get(e.entity)
		pos.X, pos.Y = x, y
		mot.Heading, mot.Velocity, mot.TurnRemaining, mot.DistanceRemaining = 0, 0, 0, 0
		gun.Heading, gun.TurnRemaining, gun.Heat, gun.Pending = 0, 0, 0, 0
	}

	// a fires straight up at b, 40 units away.
	place(a, 400, 300)
	place(b, 400, 340)
	_, _, _, gun, _, _ := m.agents.Get(a.entity)
	gun.Pending = 3
	for i := 0; i < 3; i++ {
		m.Step()
	}
	if s := m.collector.Get(a.id); s.Hits != 1 || s.DamageDealt != 16 {
		t.Errorf("shooter hits=%d dealt=%g, want 1 and 16", s.Hits, s.DamageDealt)
	}
	if s := m.collector.Get(b.id); s.DamageTaken != 16 {
		t.Errorf("target took %g, want 16", s.DamageTaken)
	}

	// Overlapping hulls with neither moving: both sides are rammed.
	place(a, 400, 300)
	place(b, 400, 310)
	m.Step()
	for _, e := range []*entrant{a, b} {
		if s := m.collector.Get(e.id); s.Rams != 0 || s.Rammed != 1 {
			t.Errorf("%s rams=%d rammed=%d, want 0 and 1", e.name, s.Rams, s.Rammed)
		}
	}
}

// recorder is a pilot that keeps every event it is handed.
type recorder struct {
	name   string
	events []pilot.Event
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Step(t pilot.Tick) pilot.Orders {
	r.events = append(r.events, t.Events...)
	return pilot.Orders{}
}

func TestEliminationIsAnnouncedToEveryOtherAgent(t *testing.T) {
	cfg := testConfig(t, entry("a", config.KindDuck), entry("b", config.KindDuck), entry("c", config.KindDuck))
	m := newTestMatch(t, cfg, 1, 0)

	recs := make([]*recorder, len(m.entrants))
	for i, e := range m.entrants {
		recs[i] = &recorder{name: e.name}
		e.pilot = recs[i]
	}
	_, _, _, _, energy, _ := m.agents.Get(m.entrants[0].entity)
	energy.Value = 0

	m.Step()
	m.Step()

	count := func(r *recorder) (self, others int) {
		for _, ev := range r.events {
			switch ev := ev.(type) {
			case pilot.SelfEliminated:
				self++
			case pilot.AgentEliminated:
				if ev.Name == "a" {
					others++
				}
			}
		}
		return self, others
	}
	if self, others := count(recs[0]); self != 1 || others != 0 {
		t.Errorf("a heard self=%d others=%d, want 1 and 0", self, others)
	}
	for _, r := range recs[1:] {
		if self, others := count(r); self != 0 || others != 1 {
			t.Errorf("%s heard self=%d others=%d, want 0 and 1", r.name, self, others)
		}
	}
}
