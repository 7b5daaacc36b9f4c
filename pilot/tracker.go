package pilot

// TargetLock is the single contact the agent is tracking.
type TargetLock struct {
	Name         string
	LastSeen     int64
	LastDistance float64
}

// Active reports whether a target is locked.
func (l TargetLock) Active() bool {
	return l.Name != ""
}

// Release says why a lock was dropped.
type Release uint8

const (
	ReleaseNone Release = iota
	ReleaseLapse
	ReleasePreempt
	ReleaseEliminated
	ReleaseMissing
)

func (r Release) String() string {
	switch r {
	case ReleaseNone:
		return "none"
	case ReleaseLapse:
		return "lapse"
	case ReleasePreempt:
		return "preempt"
	case ReleaseEliminated:
		return "eliminated"
	case ReleaseMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// TargetTracker decides when a contact takes over the lock.
type TargetTracker struct {
	LapseTicks      int64
	PreemptDistance float64
}

// Acquire offers a contact to the lock at tick now. It reports whether the contact became the
// new target and, if a previous target was dropped to make room, why.
func (t TargetTracker) Acquire(lock *TargetLock, c Contact, now int64) (acquired bool, released Release) {
	if lock.Active() && lock.Name == c.Name {
		lock.LastSeen = now
		lock.LastDistance = c.Distance
		return false, ReleaseNone
	}

	if lock.Active() {
		switch {
		case now-lock.LastSeen > t.LapseTicks:
			released = ReleaseLapse
		case lock.LastDistance > t.PreemptDistance && c.Distance <= lock.LastDistance:
			released = ReleasePreempt
		}
		if released != ReleaseNone {
			*lock = TargetLock{}
		}
	}

	if lock.Active() {
		return false, released
	}

	*lock = TargetLock{Name: c.Name, LastSeen: now, LastDistance: c.Distance}
	return true, released
}

// Drop clears the lock if it names the given agent.
func (t TargetTracker) Drop(lock *TargetLock, name string) bool {
	if !lock.Active() || lock.Name != name {
		return false
	}
	*lock = TargetLock{}
	return true
}
