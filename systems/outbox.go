package systems

import "github.com/pthm-cable/skirmish/pilot"

// Outbox collects the events each agent will see at the start of its next tick.
type Outbox struct {
	boxes map[int][]pilot.Event
}

// NewOutbox creates an empty outbox.
func NewOutbox() *Outbox {
	return &Outbox{boxes: make(map[int][]pilot.Event)}
}

// Post queues an event for the agent with the given id.
func (o *Outbox) Post(id int, ev pilot.Event) {
	o.boxes[id] = append(o.boxes[id], ev)
}

// Broadcast queues an event for every listed agent.
func (o *Outbox) Broadcast(ids []int, ev pilot.Event) {
	for _, id := range ids {
		o.Post(id, ev)
	}
}

// Drain returns and forgets the agent's queued events in posting order.
func (o *Outbox) Drain(id int) []pilot.Event {
	evs := o.boxes[id]
	delete(o.boxes, id)
	return evs
}

// Pending returns the number of events queued for an agent.
func (o *Outbox) Pending(id int) int {
	return len(o.boxes[id])
}

// Reset drops everything queued.
func (o *Outbox) Reset() {
	clear(o.boxes)
}
