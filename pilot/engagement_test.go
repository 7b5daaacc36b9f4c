package pilot

import "testing"

func TestChoose(t *testing.T) {
	e := EngagementController{PointBlankRange: 40, MediumRange: 120, ChargeRatio: 1.3}

	tests := []struct {
		name       string
		distance   float64
		energy     float64
		selfEnergy float64
		want       Action
	}{
		{"short range weaker", 30, 50, 100, ActionShortCharge},
		{"short range just under ratio", 30, 129, 100, ActionShortCharge},
		{"short range at ratio", 30, 130, 100, ActionEvade},
		{"medium range weaker", 80, 50, 100, ActionMediumCharge},
		{"medium range stronger", 80, 200, 100, ActionEvade},
		{"point-blank boundary is medium band", 40, 50, 100, ActionMediumCharge},
		{"long range ignores energy", 120, 500, 100, ActionMediumCharge},
		{"no energy at short range", 30, 0, 0, ActionEvade},
		{"no energy at medium range", 80, 10, 0, ActionEvade},
		{"no energy at long range", 300, 10, 0, ActionMediumCharge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Choose(Contact{Distance: tt.distance, Energy: tt.energy}, AgentStatus{Energy: tt.selfEnergy})
			if got != tt.want {
				t.Errorf("Choose = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShortChargeClosesTheGap(t *testing.T) {
	c := newTestController()
	orders := c.Step(Tick{
		Index:  1,
		Status: centered(),
		Events: []Event{ContactObserved{Name: "a", Distance: 30, Bearing: -20, Energy: 50}},
	})

	if !orders.Move.Set || orders.Move.Value != 30 {
		t.Errorf("move = %+v, want the full 30 units", orders.Move)
	}
	if !orders.TurnBody.Set || orders.TurnBody.Value != -20 {
		t.Errorf("turn = %+v, want -20", orders.TurnBody)
	}
	if !orders.Fire.Set || orders.Fire.Value != 3 {
		t.Errorf("fire = %+v, want point-blank 3", orders.Fire)
	}
	if got := c.Counters().ShortCharges; got != 1 {
		t.Errorf("ShortCharges = %d, want 1", got)
	}
	if c.Snapshot().Flags.Charge {
		t.Error("charge flag left set")
	}
}

func TestMediumChargeStepsForward(t *testing.T) {
	c := newTestController()
	orders := c.Step(Tick{
		Index:  1,
		Status: centered(),
		Events: []Event{ContactObserved{Name: "a", Distance: 200, Bearing: 30, Energy: 50}},
	})

	if orders.Move.Value != 16 || orders.TurnBody.Value != 30 {
		t.Errorf("orders = %+v, want turn 30 and move 16", orders)
	}
	// heading delta 0, distance 200: score 10
	if !orders.Fire.Set || !near(orders.Fire.Value, 3*(1-10.0/25)) {
		t.Errorf("fire = %+v", orders.Fire)
	}
	if got := c.Counters().MediumCharges; got != 1 {
		t.Errorf("MediumCharges = %d, want 1", got)
	}
}

func TestEvadeBreaksPerpendicular(t *testing.T) {
	c := newTestController()
	c.Begin(1, centered())
	c.Dispatch(ContactObserved{Name: "a", Distance: 80, Bearing: 120, Energy: 200})

	s := c.Snapshot()
	if !s.Flags.Evade || s.Flags.Charge {
		t.Errorf("flags = %+v, want evade only", s.Flags)
	}
	// acquisition flipped the sweep once, the break flipped it back
	if s.Sweep.Direction != 1 {
		t.Errorf("sweep direction = %v, want 1", s.Sweep.Direction)
	}

	orders := c.End()
	if !orders.TurnBody.Set || orders.TurnBody.Value != -150 {
		t.Errorf("turn = %+v, want -150", orders.TurnBody)
	}
	if orders.Move.Value != 16 {
		t.Errorf("move = %+v, want 16", orders.Move)
	}
	if orders.TurnSensor.Set {
		t.Errorf("sweep ran during an evade: %+v", orders.TurnSensor)
	}
}

func TestOutOfEnergyEvadeSkipsBreakAgainstEmptyContact(t *testing.T) {
	c := newTestController()
	self := centered()
	self.Energy = 0
	// With no energy every contact outmatches us, but one with no energy either is not
	// stronger, so there is no break and the planner keeps control.
	orders := c.Step(Tick{
		Index:  1,
		Status: self,
		Events: []Event{ContactObserved{Name: "a", Distance: 80, Bearing: 120, Energy: 0}},
	})

	if c.Counters().Evades != 0 {
		t.Errorf("Evades = %d, want 0", c.Counters().Evades)
	}
	if orders.Move.Value != 16 {
		t.Errorf("move = %+v, want the planner step", orders.Move)
	}
	if orders.TurnSensor.Set {
		t.Error("a dead agent must not sweep")
	}
}
