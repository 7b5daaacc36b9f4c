// Package systems contains ECS systems for the arena.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/pilot"
)

// Bounds represents the arena bounds.
type Bounds struct {
	Width, Height float64
}

// Vec returns the position as a plane vector.
func Vec(p components.Position) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Direction returns the unit vector for a heading in degrees (0 = up, clockwise).
func Direction(heading float64) r2.Vec {
	rad := heading * math.Pi / 180
	return r2.Vec{X: math.Sin(rad), Y: math.Cos(rad)}
}

// HeadingTo returns the absolute heading from a to b.
func HeadingTo(a, b r2.Vec) float64 {
	d := r2.Sub(b, a)
	return pilot.NormalizeHeading(math.Atan2(d.X, d.Y) * 180 / math.Pi)
}

// Distance returns the distance between a and b.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// Contains reports whether p lies inside the hull centred on c.
func Contains(c r2.Vec, h components.Hull, p r2.Vec) bool {
	return math.Abs(p.X-c.X) <= h.Width/2 && math.Abs(p.Y-c.Y) <= h.Height/2
}

// Overlap returns how far two hulls intersect along each axis. Both values are positive only
// when the hulls intersect.
func Overlap(a r2.Vec, ha components.Hull, b r2.Vec, hb components.Hull) (x, y float64) {
	x = (ha.Width+hb.Width)/2 - math.Abs(a.X-b.X)
	y = (ha.Height+hb.Height)/2 - math.Abs(a.Y-b.Y)
	return x, y
}

// InArc reports whether heading h lies within the arc swept from `from` by `delta` degrees,
// widened by `slack` on both ends. Positive deltas sweep clockwise.
func InArc(from, delta, slack, h float64) bool {
	if math.Abs(delta)+2*slack >= 360 {
		return true
	}
	start := from - slack
	span := delta + 2*slack
	if delta < 0 {
		start = from + delta - slack
		span = -delta + 2*slack
	}
	return pilot.NormalizeHeading(h-start) <= span
}

// ClampToArena keeps a hull entirely inside the bounds and reports the heading of the wall
// it was pushed off, if any.
func ClampToArena(p *components.Position, h components.Hull, b Bounds) (wall float64, hit bool) {
	hw, hh := h.Width/2, h.Height/2
	if p.X > b.Width-hw {
		p.X, wall, hit = b.Width-hw, 90, true
	}
	if p.X < hw {
		p.X, wall, hit = hw, 270, true
	}
	if p.Y > b.Height-hh {
		p.Y, wall, hit = b.Height-hh, 0, true
	}
	if p.Y < hh {
		p.Y, wall, hit = hh, 180, true
	}
	return wall, hit
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
