package pilot

// Sweep is the radar's search state.
type Sweep struct {
	Direction float64 // +1 sweeps right, -1 left
	Fallback  bool    // a full rotation is owed after a withheld shot
	Spinning  bool    // a full rotation is in progress
}

// Flip reverses the sweep direction.
func (s *Sweep) Flip() {
	if s.Direction == 0 {
		s.Direction = 1
	}
	s.Direction = -s.Direction
}

// RadarSweepController oscillates the sensor while searching.
type RadarSweepController struct {
	Step float64
}

// Next returns this tick's sensor turn. A dead agent does not sweep. When the fallback is armed
// the sensor makes one full rotation in the current direction instead of the default step, and
// the default step waits until that rotation has finished.
func (r RadarSweepController) Next(self AgentStatus, s *Sweep) Command {
	if self.Energy <= 0 {
		return Command{}
	}
	if s.Direction == 0 {
		s.Direction = 1
	}
	if s.Fallback {
		s.Fallback = false
		s.Spinning = true
		return set(360 * s.Direction)
	}
	if s.Spinning {
		if self.GunTurnRemaining != 0 {
			return Command{}
		}
		s.Spinning = false
	}
	return set(r.Step * s.Direction)
}

func (c *Controller) sweep() {
	full := c.state.Sweep.Fallback
	turn := c.radar.Next(c.state.Self, &c.state.Sweep)
	if !turn.Set {
		return
	}
	if full {
		c.state.Counters.FullSweeps++
		c.log.Debug("full radar sweep", "direction", c.state.Sweep.Direction)
	}
	c.batch.TurnSensor(turn.Value)
}
