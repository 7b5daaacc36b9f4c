package pilot

// Action is an engagement decision.
type Action uint8

const (
	ActionNone Action = iota
	ActionShortCharge
	ActionMediumCharge
	ActionEvade
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionShortCharge:
		return "short_charge"
	case ActionMediumCharge:
		return "medium_charge"
	case ActionEvade:
		return "evade"
	default:
		return "unknown"
	}
}

// Flags gate the movement planner and radar sweep while an engagement action runs.
// Charge and Evade are never both set.
type Flags struct {
	Charge bool
	Evade  bool
}

func (f *Flags) SetCharge() { f.Charge, f.Evade = true, false }
func (f *Flags) SetEvade()  { f.Charge, f.Evade = false, true }
func (f *Flags) Reset()     { *f = Flags{} }

// Gated reports whether the planner and sweep must sit this tick out.
func (f Flags) Gated() bool { return f.Charge || f.Evade }

// EngagementController picks charge or evade from range and relative energy.
type EngagementController struct {
	PointBlankRange float64
	MediumRange     float64
	ChargeRatio     float64
}

// Choose returns the action to take against the locked contact c.
func (e EngagementController) Choose(c Contact, self AgentStatus) Action {
	switch {
	case c.Distance < e.PointBlankRange:
		if e.outmatched(c, self) {
			return ActionEvade
		}
		return ActionShortCharge
	case c.Distance < e.MediumRange:
		if e.outmatched(c, self) {
			return ActionEvade
		}
		return ActionMediumCharge
	default:
		return ActionMediumCharge
	}
}

// outmatched reports whether the contact's energy is at least ChargeRatio times ours.
// With no energy left we are always outmatched.
func (e EngagementController) outmatched(c Contact, self AgentStatus) bool {
	if self.Energy == 0 {
		return true
	}
	return c.Energy/self.Energy >= e.ChargeRatio
}

// engage runs the chosen action. Every action seals its orders before returning.
func (c *Controller) engage(ct Contact) {
	action := c.engagement.Choose(ct, c.state.Self)
	switch action {
	case ActionShortCharge:
		c.charge(ct, ct.Distance)
		c.state.Counters.ShortCharges++
	case ActionMediumCharge:
		c.charge(ct, c.cfg.MediumStep)
		c.state.Counters.MediumCharges++
	case ActionEvade:
		c.evade(ct)
	}
}

func (c *Controller) charge(ct Contact, distance float64) {
	c.state.Flags.SetCharge()
	c.log.Debug("charging", "target", ct.Name, "distance", ct.Distance, "advance", distance)
	c.batch.TurnBody(ct.Bearing)
	c.batch.Move(distance)
	c.batch.Seal()
	c.state.Flags.Charge = false
}

func (c *Controller) evade(ct Contact) {
	if ct.Energy > c.state.Self.Energy {
		// The sweep flips and the break is counted once per tick, however often the contact repeats.
		first := !c.state.Flags.Evade
		c.state.Flags.SetEvade()
		c.log.Debug("evading", "target", ct.Name, "their_energy", ct.Energy, "our_energy", c.state.Self.Energy)
		c.batch.TurnBody(NormalizeBearing(ct.Bearing + 90))
		if c.cfg.EvadeStep > 0 {
			c.batch.Move(c.cfg.EvadeStep)
		}
		if first {
			if c.cfg.EvadeFlipsSweep {
				c.state.Sweep.Flip()
			}
			c.state.Counters.Evades++
		}
		c.batch.Seal()
	}
	c.state.Flags.Charge = false
}
