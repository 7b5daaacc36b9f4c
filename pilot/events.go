package pilot

// Event is one inbound notification from the host. The concrete types below are the only
// implementations; the controller dispatches on them with a type switch.
type Event interface {
	event()
}

// StatusUpdated replaces the agent's status snapshot.
type StatusUpdated struct {
	Status AgentStatus
}

// ContactObserved reports another agent swept by the radar this tick.
type ContactObserved struct {
	Name     string
	Distance float64
	Bearing  float64
	Heading  float64
	Velocity float64
	Energy   float64
}

// ProjectileImpact reports that one of our hulls took a shot.
type ProjectileImpact struct {
	Source   string
	Power    float64
	Bearing  float64
	Velocity float64
}

// WallImpact reports that the agent ran into an arena edge.
type WallImpact struct {
	Bearing float64
}

// CollisionImpact reports hull contact with another agent.
type CollisionImpact struct {
	Name          string
	Energy        float64
	Bearing       float64
	SelfInitiated bool
}

// AgentEliminated reports that another agent left the match.
type AgentEliminated struct {
	Name string
}

// TurnEnded marks the end of a host turn.
type TurnEnded struct {
	Index int64
}

// MatchWon reports that the agent is the last one standing.
type MatchWon struct{}

// ShotHit reports that one of our projectiles struck another agent.
type ShotHit struct {
	Target       string
	Power        float64
	TargetEnergy float64
}

// ShotMissed reports that one of our projectiles left the arena.
type ShotMissed struct {
	Power float64
}

// ShotIntercepted reports that one of our projectiles collided with another projectile.
type ShotIntercepted struct {
	Power float64
}

// TurnSkipped reports a tick the host ran without our orders.
type TurnSkipped struct {
	Index int64
}

// SelfEliminated reports the agent's own elimination.
type SelfEliminated struct {
	Tick int64
}

// RoundEnded closes a round.
type RoundEnded struct {
	Round int
	Turns int64
}

func (StatusUpdated) event()    {}
func (ContactObserved) event()  {}
func (ProjectileImpact) event() {}
func (WallImpact) event()       {}
func (CollisionImpact) event()  {}
func (AgentEliminated) event()  {}
func (TurnEnded) event()        {}
func (MatchWon) event()         {}
func (ShotHit) event()          {}
func (ShotMissed) event()       {}
func (ShotIntercepted) event()  {}
func (TurnSkipped) event()      {}
func (SelfEliminated) event()   {}
func (RoundEnded) event()       {}

// Contact converts the notification into a retained contact observed at tick.
func (e ContactObserved) Contact(tick int64) Contact {
	return Contact{
		Name:     e.Name,
		Distance: e.Distance,
		Bearing:  e.Bearing,
		Heading:  e.Heading,
		Velocity: e.Velocity,
		Energy:   e.Energy,
		Tick:     tick,
	}
}
