package pilot

import "math"

// NormalizeBearing wraps an angle in degrees into (-180, 180].
func NormalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

// NormalizeHeading wraps an angle in degrees into [0, 360).
func NormalizeHeading(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// ShortestTurn returns the signed rotation, in degrees, from one heading to another.
// Positive turns right.
func ShortestTurn(from, to float64) float64 {
	return NormalizeBearing(to - from)
}
