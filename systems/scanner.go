package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/pilot"
)

type blip struct {
	id       int
	name     string
	pos      r2.Vec
	hull     components.Hull
	heading  float64
	velocity float64
	energy   float64
	arcFrom  float64
	arcDelta float64
}

// ScannerSystem reports every agent inside the arc the radar swept this tick.
type ScannerSystem struct {
	filter *ecs.Filter5[components.Position, components.Hull, components.Motion, components.Gun, components.Agent]
	energy *ecs.Map[components.Energy]
	rng    float64
	out    *Outbox

	blips []blip
}

// NewScannerSystem creates a new scanner with the given radar range.
func NewScannerSystem(w *ecs.World, radarRange float64, out *Outbox) *ScannerSystem {
	return &ScannerSystem{
		filter: ecs.NewFilter5[components.Position, components.Hull, components.Motion, components.Gun, components.Agent](w),
		energy: ecs.NewMap[components.Energy](w),
		rng:    radarRange,
		out:    out,
	}
}

// Update runs the scanner system and returns the number of contacts reported.
func (s *ScannerSystem) Update() int {
	s.blips = s.blips[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, hull, mot, gun, agent := query.Get()
		e := s.energy.Get(query.Entity())
		if !e.Alive {
			continue
		}
		s.blips = append(s.blips, blip{
			id:       agent.ID,
			name:     agent.Name,
			pos:      Vec(*pos),
			hull:     *hull,
			heading:  mot.Heading,
			velocity: mot.Velocity,
			energy:   e.Value,
			arcFrom:  gun.PrevHeading,
			arcDelta: pilot.ShortestTurn(gun.PrevHeading, gun.Heading),
		})
	}

	n := 0
	for i := range s.blips {
		a := &s.blips[i]
		for j := range s.blips {
			b := &s.blips[j]
			if i == j {
				continue
			}
			if c, ok := s.scan(a, b); ok {
				s.out.Post(a.id, c)
				n++
			}
		}
	}
	return n
}

func (s *ScannerSystem) scan(a, b *blip) (pilot.ContactObserved, bool) {
	d := Distance(a.pos, b.pos)
	if d > s.rng || d == 0 {
		return pilot.ContactObserved{}, false
	}
	abs := HeadingTo(a.pos, b.pos)
	// The beam clips a hull when any part of it is inside the arc.
	slack := math.Atan2(math.Max(b.hull.Width, b.hull.Height)/2, d) * 180 / math.Pi
	if !InArc(a.arcFrom, a.arcDelta, slack, abs) {
		return pilot.ContactObserved{}, false
	}
	return pilot.ContactObserved{
		Name:     b.name,
		Distance: d,
		Bearing:  pilot.NormalizeBearing(abs - a.heading),
		Heading:  b.heading,
		Velocity: b.velocity,
		Energy:   b.energy,
	}, true
}
