package pilot

import (
	"log/slog"
	"maps"

	"github.com/pthm-cable/skirmish/config"
)

// Counters tally the controller's decisions over a round.
type Counters struct {
	Acquisitions      int
	Releases          [ReleaseMissing + 1]int
	ShotsOrdered      int
	ShotsWithheld     int
	PointBlankShots   int
	OpportunityShots  int
	ShortCharges      int
	MediumCharges     int
	Evades            int
	CourseCorrections int
	FullSweeps        int
	ImpactTurns       int
	Rams              int
	WallContacts      int
	Hits              int
	Misses            int
	Intercepted       int
	SkippedTurns      int
}

// State is everything the controller remembers between events.
type State struct {
	Tick     int64
	Self     AgentStatus
	Lock     TargetLock
	Flags    Flags
	Sweep    Sweep
	Contacts map[string]Contact
	Counters Counters
}

// Options configure a Controller.
type Options struct {
	Name     string
	Pilot    config.PilotConfig
	MaxPower float64
	Bounds   ArenaBounds
	Logger   *slog.Logger
}

// OptionsFromConfig builds controller options for the named agent.
func OptionsFromConfig(cfg *config.Config, name string) Options {
	return Options{
		Name:     name,
		Pilot:    cfg.Pilot,
		MaxPower: cfg.Rules.MaxPower,
		Bounds:   BoundsFromConfig(cfg),
	}
}

// Controller is the combat decision core for one agent. It is not safe for concurrent use; the
// host drives it from a single goroutine.
type Controller struct {
	name     string
	cfg      config.PilotConfig
	maxPower float64
	bounds   ArenaBounds
	log      *slog.Logger

	tracker    TargetTracker
	fire       FireController
	engagement EngagementController
	planner    MovementPlanner
	radar      RadarSweepController

	state State
	batch Batch
}

// New creates a controller.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pc := opts.Pilot
	b := opts.Bounds

	return &Controller{
		name:     opts.Name,
		cfg:      pc,
		maxPower: opts.MaxPower,
		bounds:   b,
		log:      logger.With("agent", opts.Name),
		tracker: TargetTracker{
			LapseTicks:      pc.LapseTicks,
			PreemptDistance: pc.PreemptDistance,
		},
		fire: FireController{
			PointBlankRange:     b.PointBlankRange,
			MaxPower:            opts.MaxPower,
			Threshold:           pc.AssuredFireThreshold,
			Reflection:          pc.HeadingReflection,
			MaxDistance:         b.MaxDistance,
			OpportunityRange:    pc.OpportunityRange,
			OpportunityVelocity: pc.OpportunityVelocity,
		},
		engagement: EngagementController{
			PointBlankRange: b.PointBlankRange,
			MediumRange:     pc.MediumRange,
			ChargeRatio:     pc.ChargeRatio,
		},
		planner: MovementPlanner{Bounds: b},
		radar:   RadarSweepController{Step: pc.SweepStep},
		state: State{
			Sweep:    Sweep{Direction: 1},
			Contacts: make(map[string]Contact),
		},
	}
}

// Name returns the agent name the controller was created for.
func (c *Controller) Name() string { return c.name }

// Tick is everything the host hands over for one decision tick.
type Tick struct {
	Index  int64
	Status AgentStatus
	Events []Event
}

// Step runs one full tick: begin, dispatch every event in order, plan, commit.
func (c *Controller) Step(t Tick) Orders {
	c.Begin(t.Index, t.Status)
	for _, ev := range t.Events {
		c.Dispatch(ev)
	}
	return c.End()
}

// Begin opens a tick with a fresh status snapshot. Tick-scoped flags are cleared, stale contacts
// are forgotten and a lock on an agent no longer in the contact table is dropped.
func (c *Controller) Begin(index int64, status AgentStatus) {
	c.state.Tick = index
	c.state.Self = status
	c.state.Flags.Reset()
	c.prune(index)

	if lock := c.state.Lock; lock.Active() {
		if _, ok := c.state.Contacts[lock.Name]; !ok {
			c.state.Lock = TargetLock{}
			c.state.Counters.Releases[ReleaseMissing]++
			c.log.Debug("dropping lock on unknown contact", "target", lock.Name)
		}
	}
}

// prune forgets contacts not seen for more than ContactTTLTicks.
func (c *Controller) prune(now int64) {
	ttl := c.cfg.ContactTTLTicks
	if ttl <= 0 {
		return
	}
	for name, ct := range c.state.Contacts {
		if now-ct.Tick > ttl {
			delete(c.state.Contacts, name)
		}
	}
}

// Dispatch handles one inbound event.
func (c *Controller) Dispatch(ev Event) {
	switch ev := ev.(type) {
	case StatusUpdated:
		c.state.Self = ev.Status
	case ContactObserved:
		c.onContact(ev)
	case ProjectileImpact:
		c.onProjectileImpact(ev)
	case WallImpact:
		c.onWallContact(ev)
	case CollisionImpact:
		c.onCollision(ev)
	case AgentEliminated:
		c.onElimination(ev)
	case ShotHit:
		c.state.Counters.Hits++
		c.log.Debug("shot hit", "target", ev.Target, "power", ev.Power, "their_energy", ev.TargetEnergy)
	case ShotMissed:
		c.state.Counters.Misses++
	case ShotIntercepted:
		c.state.Counters.Intercepted++
	case TurnSkipped:
		c.state.Counters.SkippedTurns++
		c.log.Warn("turn skipped", "tick", ev.Index)
	case TurnEnded:
	case SelfEliminated:
		c.log.Debug("eliminated", "tick", ev.Tick)
	case MatchWon:
		c.log.Info("won")
		c.ResetRound()
	case RoundEnded:
		c.log.Debug("round ended", "round", ev.Round, "turns", ev.Turns)
		c.ResetRound()
	default:
		c.log.Debug("ignoring event", "event", ev)
	}
}

// End runs the planner and sweep unless an engagement holds them off, sets the indicator
// colours and commits the tick's orders.
func (c *Controller) End() Orders {
	if !c.state.Flags.Gated() {
		c.maneuver(c.cfg.ManeuverStep)
		c.sweep()
	}
	c.batch.Colours(c.indicators())
	return c.batch.Commit()
}

// ResetRound forgets the target, the contact table and any pending sweep. Counters survive
// until ResetCounters.
func (c *Controller) ResetRound() {
	c.state.Lock = TargetLock{}
	c.state.Flags.Reset()
	c.state.Sweep = Sweep{Direction: 1}
	clear(c.state.Contacts)
}

// ResetCounters zeroes the decision counters and returns their previous values.
func (c *Controller) ResetCounters() Counters {
	out := c.state.Counters
	c.state.Counters = Counters{}
	return out
}

// Counters returns the decision counters so far.
func (c *Controller) Counters() Counters { return c.state.Counters }

// Snapshot returns a copy of the controller state.
func (c *Controller) Snapshot() State {
	s := c.state
	s.Contacts = maps.Clone(c.state.Contacts)
	return s
}

func (c *Controller) onContact(ev ContactObserved) {
	now := c.state.Tick
	ct := ev.Contact(now)
	c.state.Contacts[ct.Name] = ct

	acquired, released := c.tracker.Acquire(&c.state.Lock, ct, now)
	if released != ReleaseNone {
		c.state.Counters.Releases[released]++
		c.log.Debug("giving up on target", "reason", released.String(), "tick", now)
	}
	if acquired {
		c.state.Counters.Acquisitions++
		c.state.Sweep.Flip()
		c.log.Debug("target acquired", "target", ct.Name, "distance", ct.Distance, "tick", now)
	}

	if c.state.Lock.Name != ct.Name {
		c.opportunity(ct)
		return
	}

	d := c.fire.Decide(ct, c.state.Self)
	c.log.Debug("considering shot", "target", ct.Name, "score", d.Score, "distance", ct.Distance,
		"velocity", ct.Velocity, "gun_heading", c.state.Self.GunHeading, "heading", ct.Heading)
	if d.Fire {
		c.shoot(d)
	} else {
		c.state.Counters.ShotsWithheld++
		if !d.Aligned {
			c.state.Sweep.Fallback = true
		}
	}

	c.engage(ct)
}

func (c *Controller) opportunity(ct Contact) {
	d := c.fire.Opportunity(ct)
	if !d.Fire {
		return
	}
	c.log.Debug("target of opportunity", "name", ct.Name, "distance", ct.Distance, "power", d.Power)
	c.state.Counters.OpportunityShots++
	c.shoot(d)
}

func (c *Controller) shoot(d FireDecision) {
	if d.PointBlank {
		c.state.Counters.PointBlankShots++
	}
	c.state.Counters.ShotsOrdered++
	c.batch.Fire(d.Power)
}

func (c *Controller) indicators() Indicators {
	self := c.state.Self
	ind := Indicators{Body: ColourBlue, Gun: ColourBlue, Radar: ColourBlue}
	if self.Energy < c.cfg.LowEnergyColour {
		ind.Body = ColourRed
	}
	switch {
	case self.GunHeat > 1:
		ind.Gun = ColourRed
	case self.GunHeat > 0:
		ind.Gun = ColourOrange
	}
	if c.state.Lock.Active() {
		ind.Radar = ColourRed
	}
	return ind
}
