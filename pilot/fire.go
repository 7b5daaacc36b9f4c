package pilot

import "math"

// FireDecision is the outcome of a firing evaluation.
type FireDecision struct {
	Fire       bool
	Power      float64
	Score      float64 // aiming error, lower is better; zero for point-blank shots
	PointBlank bool
	Aligned    bool // the score is within the threshold, whether or not the shot is taken
}

// FireController scores a shot at a contact from the gun's current alignment.
type FireController struct {
	PointBlankRange float64
	MaxPower        float64
	Threshold       float64 // highest score still worth a shot
	Reflection      float64 // heading deltas above this are reflected about 180

	// Targets of opportunity that are not locked.
	MaxDistance         float64
	OpportunityRange    float64
	OpportunityVelocity float64
}

// Decide scores a shot at c. Inside point-blank range the shot is always taken at full power.
//
// Otherwise the score grows with the angle between the contact's heading and our gun, scaled by
// the contact's speed, plus a twentieth of the distance. A delta above Reflection is replaced by
// its distance from 180; this is a reflection, not a wraparound.
func (f FireController) Decide(c Contact, self AgentStatus) FireDecision {
	if c.Distance < f.PointBlankRange {
		return FireDecision{Fire: true, Power: f.MaxPower, PointBlank: true, Aligned: true}
	}

	delta := math.Abs(c.Heading - self.GunHeading)
	if delta > f.Reflection {
		delta = math.Abs(180 - delta)
	}
	score := delta*math.Abs(c.Velocity) + c.Distance/20

	d := FireDecision{Score: score, Power: f.MaxPower}
	if score > 0.1 {
		d.Power = f.MaxPower * (1 - score/f.Threshold)
	}
	// A score of exactly Threshold is aligned but leaves no power, so nothing is fired.
	d.Aligned = score <= f.Threshold
	d.Fire = d.Aligned && d.Power > 0
	if !d.Fire {
		d.Power = 0
	}
	return d
}

// Opportunity decides whether an untracked contact is worth a shot anyway: anything in
// point-blank range, or a near contact that is barely moving.
func (f FireController) Opportunity(c Contact) FireDecision {
	if c.Distance < f.PointBlankRange {
		return FireDecision{Fire: true, Power: f.MaxPower, PointBlank: true}
	}
	if c.Distance < f.OpportunityRange && c.Velocity < f.OpportunityVelocity && f.MaxDistance > 0 {
		power := f.MaxPower * (1 - c.Distance/f.MaxDistance)
		return FireDecision{Fire: power > 0, Power: power}
	}
	return FireDecision{}
}
