package pilot

// Edge identifies an arena boundary.
type Edge uint8

const (
	EdgeRight Edge = 1 << iota
	EdgeTop
	EdgeLeft
	EdgeBottom
)

// EdgeSet is a bitmask of edges.
type EdgeSet uint8

func (s EdgeSet) Has(e Edge) bool { return uint8(s)&uint8(e) != 0 }

// MovePlan is the movement planner's output for one tick.
type MovePlan struct {
	Edges   EdgeSet // edges that forced a correction
	Heading float64 // correction heading, valid when Edges != 0
	Turn    Command // unset while a previous turn is still running
	Forward float64
}

// Corrected reports whether any edge forced a course correction.
func (p MovePlan) Corrected() bool { return p.Edges != 0 }

// MovementPlanner keeps the agent moving forward without running into the arena edges.
type MovementPlanner struct {
	Bounds ArenaBounds
}

// Plan projects the hull twice the remaining travel distance ahead and checks it against each
// edge the agent is heading toward. A triggered edge turns the agent in place toward a cardinal
// heading running along that edge; otherwise the agent advances by step.
func (m MovementPlanner) Plan(self AgentStatus, step float64) MovePlan {
	margin := 2 * self.DistanceRemaining
	h := self.Heading

	var plan MovePlan
	correct := func(e Edge, heading float64) {
		plan.Edges |= EdgeSet(e)
		plan.Heading = heading
	}

	if self.X+self.Width+margin > m.Bounds.Width && h > 0 && h < 180 {
		correct(EdgeRight, m.alongVerticalEdge(self))
	}
	if self.Y+self.Height+margin > m.Bounds.Height && (h > 270 || h < 90) {
		correct(EdgeTop, m.alongHorizontalEdge(self))
	}
	if self.X-self.Width-margin < 0 && h > 180 && h < 360 {
		correct(EdgeLeft, m.alongVerticalEdge(self))
	}
	if self.Y-self.Height-margin < 0 && h > 90 && h < 270 {
		correct(EdgeBottom, m.alongHorizontalEdge(self))
	}

	if !plan.Corrected() {
		plan.Forward = step
		return plan
	}
	if self.TurnRemaining == 0 {
		plan.Turn = set(ShortestTurn(h, plan.Heading))
	}
	return plan
}

// alongVerticalEdge heads up the arena from the lower half and down it from the upper half.
func (m MovementPlanner) alongVerticalEdge(self AgentStatus) float64 {
	if self.Y/m.Bounds.Height < 0.5 {
		return 0
	}
	return 180
}

// alongHorizontalEdge heads right from the left half and left from the right half.
func (m MovementPlanner) alongHorizontalEdge(self AgentStatus) float64 {
	if self.X/m.Bounds.Width < 0.5 {
		return 90
	}
	return 270
}

func (c *Controller) maneuver(step float64) {
	plan := c.planner.Plan(c.state.Self, step)
	if plan.Corrected() {
		c.state.Counters.CourseCorrections++
		if plan.Turn.Set {
			c.log.Debug("course correction", "heading", plan.Heading, "turn", plan.Turn.Value,
				"x", c.state.Self.X, "y", c.state.Self.Y)
			c.batch.TurnBody(plan.Turn.Value)
		} else {
			c.log.Debug("course correction deferred", "heading", plan.Heading,
				"turn_remaining", c.state.Self.TurnRemaining)
		}
	}
	c.batch.Move(plan.Forward)
}
