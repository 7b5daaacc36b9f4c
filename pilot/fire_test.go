package pilot

import "testing"

func testFire(b ArenaBounds) FireController {
	return FireController{
		PointBlankRange:     b.PointBlankRange,
		MaxPower:            3,
		Threshold:           25,
		Reflection:          175,
		MaxDistance:         b.MaxDistance,
		OpportunityRange:    100,
		OpportunityVelocity: 1,
	}
}

func TestPointBlankAlwaysFiresAtMax(t *testing.T) {
	b := NewArenaBounds(800, 600, 40, 20)
	if b.PointBlankRange != 40 {
		t.Fatalf("PointBlankRange = %v, want 40", b.PointBlankRange)
	}

	f := testFire(b)
	self := AgentStatus{GunHeading: 0, Energy: 1}
	contacts := []Contact{
		{Name: "a", Distance: 35},
		{Name: "b", Distance: 35, Heading: 90, Velocity: 8},
		{Name: "c", Distance: 0, Heading: 179, Velocity: -8, Energy: 200},
	}
	for _, c := range contacts {
		d := f.Decide(c, self)
		if !d.Fire || d.Power != 3 || !d.PointBlank {
			t.Errorf("Decide(%+v) = %+v, want point-blank shot at 3", c, d)
		}
	}
}

func TestFiringThreshold(t *testing.T) {
	f := testFire(NewArenaBounds(800, 600, 20, 20))

	tests := []struct {
		name      string
		heading   float64
		gun       float64
		velocity  float64
		distance  float64
		wantScore float64
		wantFire  bool
		wantPower float64
	}{
		{"too much aiming error", 10, 0, 2, 200, 30, false, 0},
		{"good alignment", 2, 0, 1, 100, 7, true, 3 * (1 - 7.0/25)},
		{"negative velocity counts by magnitude", 0, 2, -1, 100, 7, true, 3 * (1 - 7.0/25)},
		{"stationary far target", 90, 0, 0, 500, 25, false, 0},
		{"perfect score fires at max", 0, 0, 0, 1, 0.05, true, 3},
		{"reflected delta", 350, 0, 1, 100, 175, false, 0},
		{"delta at reflection limit is kept", 175, 0, 0.1, 100, 22.5, true, 3 * (1 - 22.5/25)},
		{"reflected near-opposite heading", 178, 0, 2, 100, 9, true, 3 * (1 - 9.0/25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Contact{Name: "x", Heading: tt.heading, Velocity: tt.velocity, Distance: tt.distance}
			d := f.Decide(c, AgentStatus{GunHeading: tt.gun})

			if !near(d.Score, tt.wantScore) {
				t.Errorf("score = %v, want %v", d.Score, tt.wantScore)
			}
			if d.Fire != tt.wantFire {
				t.Errorf("fire = %v, want %v", d.Fire, tt.wantFire)
			}
			if !near(d.Power, tt.wantPower) {
				t.Errorf("power = %v, want %v", d.Power, tt.wantPower)
			}
		})
	}
}

func TestOpportunity(t *testing.T) {
	b := NewArenaBounds(800, 600, 20, 20)
	f := testFire(b)

	d := f.Opportunity(Contact{Distance: 30, Velocity: 8})
	if !d.Fire || d.Power != 3 {
		t.Errorf("point-blank opportunity = %+v", d)
	}

	d = f.Opportunity(Contact{Distance: 90, Velocity: 0.5})
	want := 3 * (1 - 90/b.MaxDistance)
	if !d.Fire || !near(d.Power, want) {
		t.Errorf("slow near opportunity = %+v, want power %v", d, want)
	}

	if d := f.Opportunity(Contact{Distance: 90, Velocity: 4}); d.Fire {
		t.Errorf("moving contact should not be an opportunity: %+v", d)
	}
	if d := f.Opportunity(Contact{Distance: 150, Velocity: 0}); d.Fire {
		t.Errorf("distant contact should not be an opportunity: %+v", d)
	}
}

func TestThresholdScoreIsAlignedWithoutPower(t *testing.T) {
	f := testFire(NewArenaBounds(800, 600, 20, 20))

	d := f.Decide(Contact{Name: "x", Distance: 500}, AgentStatus{})
	if !near(d.Score, 25) || !d.Aligned || d.Fire || d.Power != 0 {
		t.Errorf("Decide at the threshold = %+v, want aligned and withheld", d)
	}
	d = f.Decide(Contact{Name: "x", Distance: 35}, AgentStatus{})
	if !d.Aligned || !d.PointBlank {
		t.Errorf("point-blank decision = %+v, want aligned", d)
	}
	d = f.Decide(Contact{Name: "x", Distance: 200, Heading: 10, Velocity: 2}, AgentStatus{})
	if d.Aligned {
		t.Errorf("score %v counted as aligned", d.Score)
	}
}
