package pilot

import "math"

// RamPower returns a shot power that hurts a rammed opponent with the given energy, stepping
// down as the opponent weakens so that the ram rather than the shot finishes it. Zero means
// hold fire.
func RamPower(opponentEnergy float64) float64 {
	switch {
	case opponentEnergy > 16:
		return 3
	case opponentEnergy > 10:
		return 2
	case opponentEnergy > 4:
		return 1
	case opponentEnergy > 2:
		return 0.5
	case opponentEnergy > 0.4:
		return 0.1
	default:
		return 0
	}
}

func (c *Controller) onWallContact(ev WallImpact) {
	c.state.Counters.WallContacts++
	c.log.Debug("hit wall", "bearing", ev.Bearing, "heading", c.state.Self.Heading,
		"x", c.state.Self.X, "y", c.state.Self.Y)
	c.state.Flags.Reset()
}

// breaksOnImpact reports whether a hit calls for an immediate turn: a weak agent shot from
// behind, or a strong shot taken almost head on.
func (c *Controller) breaksOnImpact(ev ProjectileImpact) bool {
	bearing := math.Abs(ev.Bearing)
	weakFromBehind := c.state.Self.Energy < c.cfg.WeakEnergy && bearing > c.cfg.RearArc
	strongFrontal := bearing < c.cfg.FrontalArc && ev.Power >= c.cfg.StrongImpactPower
	return weakFromBehind || strongFrontal
}

func (c *Controller) onProjectileImpact(ev ProjectileImpact) {
	c.log.Debug("hit by projectile", "source", ev.Source, "power", ev.Power, "bearing", ev.Bearing)
	if !c.breaksOnImpact(ev) {
		return
	}
	c.state.Counters.ImpactTurns++
	c.batch.TurnBody(c.cfg.ImpactTurn)
	c.batch.Seal()
	c.state.Flags.Charge = false
}

func (c *Controller) onCollision(ev CollisionImpact) {
	self := c.state.Self
	c.state.Flags.SetCharge()
	c.state.Counters.Rams++
	c.log.Debug("collision", "other", ev.Name, "their_energy", ev.Energy, "bearing", ev.Bearing,
		"self_initiated", ev.SelfInitiated)

	c.batch.TurnBody(ev.Bearing)
	c.batch.TurnSensor(ShortestTurn(self.GunHeading, self.Heading))

	if self.Energy > ev.Energy {
		power := math.Min(RamPower(ev.Energy), c.maxPower)
		if power > 0 && power < ev.Energy {
			c.log.Debug("ram fire", "power", power)
			c.batch.Fire(power)
			c.state.Counters.ShotsOrdered++
		}
	}

	c.batch.Move(c.cfg.RamAdvance)
	c.batch.Seal()
	c.state.Flags.Charge = false
}

func (c *Controller) onElimination(ev AgentEliminated) {
	delete(c.state.Contacts, ev.Name)
	if c.tracker.Drop(&c.state.Lock, ev.Name) {
		c.state.Counters.Releases[ReleaseEliminated]++
		c.log.Debug("target eliminated", "target", ev.Name)
	}
}
