package pilot

// Colour is a cosmetic indicator colour.
type Colour uint8

const (
	ColourBlue Colour = iota
	ColourRed
	ColourOrange
)

func (c Colour) String() string {
	switch c {
	case ColourBlue:
		return "blue"
	case ColourRed:
		return "red"
	case ColourOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// Indicators are the body, gun and radar colours shown by a viewer.
type Indicators struct {
	Body, Gun, Radar Colour
}

// Command is one optional order slot.
type Command struct {
	Value float64
	Set   bool
}

func set(v float64) Command { return Command{Value: v, Set: true} }

// Orders is the batch of commands the host applies atomically at the end of a tick.
// Turns are degrees, positive to the right. Unset slots leave the host's state alone.
type Orders struct {
	TurnBody   Command
	TurnSensor Command
	Move       Command
	Fire       Command
	Colours    Indicators
	HasColours bool
}

// Empty reports whether no command slot is set.
func (o Orders) Empty() bool {
	return !o.TurnBody.Set && !o.TurnSensor.Set && !o.Move.Set && !o.Fire.Set && !o.HasColours
}

// over returns o with every slot set in top replacing the matching slot.
func (o Orders) over(top Orders) Orders {
	if top.TurnBody.Set {
		o.TurnBody = top.TurnBody
	}
	if top.TurnSensor.Set {
		o.TurnSensor = top.TurnSensor
	}
	if top.Move.Set {
		o.Move = top.Move
	}
	if top.Fire.Set {
		o.Fire = top.Fire
	}
	if top.HasColours {
		o.Colours = top.Colours
		o.HasColours = true
	}
	return o
}

// Batch queues the commands issued during one tick.
//
// A later write to a slot replaces an earlier one. Seal binds everything queued so far:
// sealed slots survive any unsealed write that follows in the same tick, while a later Seal
// replaces them again. Commit is the tick barrier.
type Batch struct {
	pending Orders
	sealed  Orders
}

func (b *Batch) TurnBody(deg float64)   { b.pending.TurnBody = set(deg) }
func (b *Batch) TurnSensor(deg float64) { b.pending.TurnSensor = set(deg) }
func (b *Batch) Move(distance float64)  { b.pending.Move = set(distance) }

// Fire queues a shot. Non-positive power is ignored.
func (b *Batch) Fire(power float64) {
	if power <= 0 {
		return
	}
	b.pending.Fire = set(power)
}

func (b *Batch) Colours(ind Indicators) {
	b.pending.Colours = ind
	b.pending.HasColours = true
}

// Seal binds the pending commands for the rest of the tick.
func (b *Batch) Seal() {
	b.sealed = b.sealed.over(b.pending)
	b.pending = Orders{}
}

// Commit returns the tick's orders and resets the batch.
func (b *Batch) Commit() Orders {
	out := b.pending.over(b.sealed)
	*b = Batch{}
	return out
}
