package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid knots", Knots, true},
		{"valid mps", MPS, true},
		{"valid kmph", KMPH, true},
		{"invalid unit", "furlongs", false},
		{"empty unit", "", false},
		{"uppercase KN", "KN", false}, // Case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsValid(tt.unit); result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name       string
		speedKnots float64
		unit       string
		expected   float64
	}{
		{"0 kn to kn", 0.0, Knots, 0.0},
		{"10 kn to kn", 10.0, Knots, 10.0},
		{"1 kn to mps", 1.0, MPS, 0.514444},
		{"10 kn to mps", 10.0, MPS, 5.14444},
		{"1 kn to kmph", 1.0, KMPH, 1.852},
		{"10 kn to kmph", 10.0, KMPH, 18.52},
		{"unknown unit falls back to knots", 7.5, "unknown", 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertSpeed(tt.speedKnots, tt.unit)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ConvertSpeed(%v, %s) = %v, want %v", tt.speedKnots, tt.unit, result, tt.expected)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"in range", 123.4, 123.4},
		{"exactly 360", 360, 0},
		{"negative", -90, 270},
		{"just under zero", -0.5, 359.5},
		{"far negative", -400, 320},
		{"far positive", 720, 0},
		{"multiple turns", 1085, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAngle(tt.in); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestAngleDelta(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		expected float64
	}{
		{"no difference", 45, 45, 0},
		{"simple forward", 10, 30, 20},
		{"simple backward", 30, 10, -20},
		{"across north forward", 350, 10, 20},
		{"across north backward", 10, 350, -20},
		{"opposite picks +180", 0, 180, 180},
		{"almost opposite negative", 0, 181, -179},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngleDelta(tt.a, tt.b); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("AngleDelta(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestLerpAngle(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		ratio    float64
		expected float64
	}{
		{"ratio 0 returns a", 80, 120, 0, 80},
		{"ratio 1 returns b", 80, 120, 1, 120},
		{"midpoint simple", 80, 120, 0.5, 100},
		{"midpoint across north", 350, 10, 0.5, 0},
		{"quarter across north", 350, 10, 0.25, 355},
		{"three quarters across north", 350, 10, 0.75, 5},
		{"backwards across north", 10, 350, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LerpAngle(tt.a, tt.b, tt.ratio); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("LerpAngle(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.ratio, got, tt.expected)
			}
		})
	}
}
