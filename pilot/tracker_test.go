package pilot

import (
	"math/rand"
	"testing"
)

func testTracker() TargetTracker {
	return TargetTracker{LapseTicks: 60, PreemptDistance: 200}
}

func TestAcquireEmptyLockIgnoresLapse(t *testing.T) {
	var lock TargetLock
	acquired, released := testTracker().Acquire(&lock, Contact{Name: "a", Distance: 500}, 10000)

	if !acquired {
		t.Fatal("empty lock should accept the first contact")
	}
	if released != ReleaseNone {
		t.Errorf("released = %v, want none", released)
	}
	if lock.Name != "a" || lock.LastSeen != 10000 || lock.LastDistance != 500 {
		t.Errorf("lock = %+v", lock)
	}
}

func TestAcquireRefreshesLockedTarget(t *testing.T) {
	lock := TargetLock{Name: "a", LastSeen: 5, LastDistance: 300}
	acquired, _ := testTracker().Acquire(&lock, Contact{Name: "a", Distance: 120}, 40)

	if acquired {
		t.Error("refreshing the locked target must not signal an acquisition")
	}
	if lock.LastDistance != 120 {
		t.Errorf("LastDistance = %v, want 120", lock.LastDistance)
	}
	if lock.LastSeen != 40 {
		t.Errorf("LastSeen = %v, want 40", lock.LastSeen)
	}
}

func TestAcquireLapse(t *testing.T) {
	tests := []struct {
		name string
		now  int64
		want bool
	}{
		{"within window", 50, false},
		{"exactly at window", 60, false},
		{"past window", 61, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lock := TargetLock{Name: "a", LastSeen: 0, LastDistance: 100}
			acquired, released := testTracker().Acquire(&lock, Contact{Name: "b", Distance: 150}, tt.now)

			if acquired != tt.want {
				t.Errorf("acquired = %v, want %v", acquired, tt.want)
			}
			if tt.want && released != ReleaseLapse {
				t.Errorf("released = %v, want lapse", released)
			}
			if !tt.want && lock.Name != "a" {
				t.Errorf("lock moved to %q", lock.Name)
			}
		})
	}
}

func TestAcquirePreemption(t *testing.T) {
	tests := []struct {
		name     string
		lockDist float64
		newDist  float64
		want     bool
	}{
		{"closer contender", 250, 100, true},
		{"equal distance", 250, 250, true},
		{"farther contender", 250, 260, false},
		{"lock inside preempt distance", 200, 50, false},
		{"lock just outside preempt distance", 200.5, 200.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lock := TargetLock{Name: "a", LastSeen: 10, LastDistance: tt.lockDist}
			acquired, released := testTracker().Acquire(&lock, Contact{Name: "b", Distance: tt.newDist}, 20)

			if acquired != tt.want {
				t.Errorf("acquired = %v, want %v", acquired, tt.want)
			}
			if tt.want {
				if released != ReleasePreempt {
					t.Errorf("released = %v, want preempt", released)
				}
				if lock.Name != "b" || lock.LastDistance != tt.newDist {
					t.Errorf("lock = %+v", lock)
				}
			}
		})
	}
}

func TestLockExclusivity(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	rng := rand.New(rand.NewSource(7))
	tracker := testTracker()

	var lock TargetLock
	var now int64
	for i := 0; i < 5000; i++ {
		now += int64(rng.Intn(30))
		c := Contact{Name: names[rng.Intn(len(names))], Distance: rng.Float64() * 800}
		prev := lock.Name

		acquired, _ := tracker.Acquire(&lock, c, now)

		if !lock.Active() {
			t.Fatalf("step %d: lock empty after offering %q", i, c.Name)
		}
		if acquired && lock.Name != c.Name {
			t.Fatalf("step %d: acquired but lock names %q, not %q", i, lock.Name, c.Name)
		}
		if !acquired && lock.Name != prev {
			t.Fatalf("step %d: lock changed from %q to %q without an acquisition", i, prev, lock.Name)
		}
	}
}

func TestDrop(t *testing.T) {
	lock := TargetLock{Name: "a", LastSeen: 3, LastDistance: 90}
	tracker := testTracker()

	if tracker.Drop(&lock, "b") {
		t.Error("dropping another name must not clear the lock")
	}
	if !tracker.Drop(&lock, "a") {
		t.Error("dropping the locked name should clear the lock")
	}
	if lock.Active() {
		t.Errorf("lock still active: %+v", lock)
	}
}
