// Package units provides shared constants and conversions for boat speeds
// and compass angles.
package units

import "math"

// Unit constants
const (
	Knots = "kn"
	MPS   = "mps"
	KMPH  = "kmph"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Knots, MPS, KMPH}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ConvertSpeed converts a speed from knots to the target units.
// Telemetry stores speed over ground in knots.
func ConvertSpeed(speedKnots float64, targetUnits string) float64 {
	switch targetUnits {
	case Knots:
		return speedKnots
	case MPS:
		return speedKnots * 0.514444
	case KMPH:
		return speedKnots * 1.852
	default:
		return speedKnots
	}
}

// NormalizeAngle wraps an angle in degrees into [0, 360). Unlike a single
// conditional add/subtract of 360, this handles inputs arbitrarily far
// outside the range (-400 becomes 320, 720 becomes 0).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleDelta returns the signed shortest-arc difference b-a in degrees,
// wrapped into (-180, 180].
func AngleDelta(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// LerpAngle interpolates between two bearings along the shortest arc.
// ratio 0 returns a, ratio 1 returns b (modulo 360); the result is
// normalized into [0, 360).
func LerpAngle(a, b, ratio float64) float64 {
	return NormalizeAngle(a + AngleDelta(a, b)*ratio)
}
