package telemetry

import (
	"cmp"
	"slices"

	"github.com/pthm-cable/skirmish/pilot"
)

// Collector accumulates per-agent statistics over a round and produces RoundStats.
type Collector struct {
	runID string
	stats map[int]*RoundStats
	order []int
}

// NewCollector creates a new stats collector for the given run.
func NewCollector(runID string) *Collector {
	return &Collector{
		runID: runID,
		stats: make(map[int]*RoundStats),
	}
}

// Register starts tracking an agent.
func (c *Collector) Register(id int, name, kind string) {
	if _, ok := c.stats[id]; !ok {
		c.order = append(c.order, id)
	}
	c.stats[id] = &RoundStats{RunID: c.runID, Agent: name, Kind: kind}
}

// Get returns the running stats for an agent, or nil if not registered.
func (c *Collector) Get(id int) *RoundStats {
	return c.stats[id]
}

// RecordShot records a projectile launched by an agent.
func (c *Collector) RecordShot(id int, power float64) {
	if s := c.stats[id]; s != nil {
		s.ShotsFired++
		s.PowerSpent += power
	}
}

// RecordWall records an agent running into a wall.
func (c *Collector) RecordWall(id int, damage float64) {
	if s := c.stats[id]; s != nil {
		s.WallHits++
		s.WallDamage += damage
	}
}

// RecordHit records a projectile from shooter striking target.
func (c *Collector) RecordHit(shooter, target int, damage float64) {
	if s := c.stats[shooter]; s != nil {
		s.Hits++
		s.DamageDealt += damage
	}
	if s := c.stats[target]; s != nil {
		s.DamageTaken += damage
	}
}

// RecordRam records two hulls colliding. The initiator counts a ram and the other side is
// rammed; with no initiator (-1) both sides are rammed.
func (c *Collector) RecordRam(a, b, initiator int) {
	for _, id := range []int{a, b} {
		s := c.stats[id]
		if s == nil {
			continue
		}
		if id == initiator {
			s.Rams++
		} else {
			s.Rammed++
		}
	}
}

// RecordEvents tallies the shot outcomes delivered to an agent that the systems do not report
// directly.
func (c *Collector) RecordEvents(id int, evs []pilot.Event) {
	s := c.stats[id]
	if s == nil {
		return
	}
	for _, ev := range evs {
		switch ev.(type) {
		case pilot.ShotMissed:
			s.Misses++
		case pilot.ShotIntercepted:
			s.Intercepted++
		}
	}
}

// RecordCounters copies a controller's decision counters into the agent's stats.
func (c *Collector) RecordCounters(id int, k pilot.Counters) {
	s := c.stats[id]
	if s == nil {
		return
	}
	s.Acquisitions = k.Acquisitions
	s.Lapses = k.Releases[pilot.ReleaseLapse]
	s.Preemptions = k.Releases[pilot.ReleasePreempt]
	s.ShotsWithheld = k.ShotsWithheld
	s.OpportunityShots = k.OpportunityShots
	s.ShortCharges = k.ShortCharges
	s.MediumCharges = k.MediumCharges
	s.Evades = k.Evades
	s.CourseCorrections = k.CourseCorrections
	s.FullSweeps = k.FullSweeps
	s.ImpactTurns = k.ImpactTurns
}

// Finish records how an agent's round ended.
func (c *Collector) Finish(id int, placement int, survival int64, energy float64) {
	if s := c.stats[id]; s != nil {
		s.Placement = placement
		s.SurvivalTicks = survival
		s.EndEnergy = energy
	}
}

// Flush returns the round's stats ordered by placement and starts a fresh round for the same
// agents.
func (c *Collector) Flush(round int) []RoundStats {
	out := make([]RoundStats, 0, len(c.order))
	for _, id := range c.order {
		s := *c.stats[id]
		s.Round = round
		s.HitRate = rate(s.Hits, s.ShotsFired)
		out = append(out, s)
		c.stats[id] = &RoundStats{RunID: c.runID, Agent: s.Agent, Kind: s.Kind}
	}
	slices.SortStableFunc(out, func(a, b RoundStats) int {
		return cmp.Compare(a.Placement, b.Placement)
	})
	return out
}
