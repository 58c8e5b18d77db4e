// Package polar parses reference boat-performance tables: for a grid of
// true wind angles and true wind speeds, the boat speed the design should
// achieve. The curves are only used for overlay comparison against the
// recorded telemetry.
package polar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrFormat reports that the table text is not usable at all (fewer than
// two lines, or no wind-speed columns in the header). Individual bad lines
// and cells are skipped, not fatal.
var ErrFormat = errors.New("polar: invalid performance table")

// Point is one cell of the performance grid.
type Point struct {
	TrueWindAngle float64 // degrees
	TrueWindSpeed float64 // knots
	BoatSpeed     float64 // knots
}

// Curve is the boat-speed-by-angle profile for one wind speed.
type Curve struct {
	TrueWindSpeed float64
	Points        []CurvePoint
}

// CurvePoint pairs a wind angle with the boat speed achieved at the curve's
// wind speed.
type CurvePoint struct {
	Angle     float64
	BoatSpeed float64
}

// ParseTable parses whitespace-delimited polar text.
//
// The first line holds two placeholder tokens followed by the wind-speed
// column values; each following line holds a wind angle, one placeholder
// token, then boat speeds aligned to the header's columns. Lines whose
// leading angle does not parse are skipped whole; non-numeric cells within
// a valid line are skipped individually.
func ParseTable(content string) ([]Point, error) {
	var lines []string
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: need a header and at least one data line", ErrFormat)
	}

	// Header: tokens from the third position onward are wind speeds. A
	// non-numeric header cell disables that column rather than failing.
	headerTokens := strings.Fields(lines[0])
	windSpeeds := make([]*float64, 0)
	for _, tok := range headerTokens[min(2, len(headerTokens)):] {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			windSpeeds = append(windSpeeds, &v)
		} else {
			windSpeeds = append(windSpeeds, nil)
		}
	}
	usable := 0
	for _, ws := range windSpeeds {
		if ws != nil {
			usable++
		}
	}
	if usable == 0 {
		return nil, fmt.Errorf("%w: no wind-speed columns in header", ErrFormat)
	}

	var points []Point
	for _, line := range lines[1:] {
		tokens := strings.Fields(line)
		if len(tokens) < 3 {
			continue
		}
		angle, err := strconv.ParseFloat(tokens[0], 64)
		if err != nil {
			continue // unusable angle skips the whole line
		}
		// tokens[1] is the placeholder column on every line.
		for i, tok := range tokens[2:] {
			if i >= len(windSpeeds) || windSpeeds[i] == nil {
				continue
			}
			speed, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				continue // bad cell, keep the rest of the line
			}
			points = append(points, Point{
				TrueWindAngle: angle,
				TrueWindSpeed: *windSpeeds[i],
				BoatSpeed:     speed,
			})
		}
	}
	return points, nil
}

// GroupByWindSpeed folds points into curves, one per wind speed, ordered by
// wind speed ascending with each curve's points ordered by angle ascending.
func GroupByWindSpeed(points []Point) []Curve {
	byWS := map[float64]*Curve{}
	var speeds []float64
	for _, p := range points {
		c, ok := byWS[p.TrueWindSpeed]
		if !ok {
			c = &Curve{TrueWindSpeed: p.TrueWindSpeed}
			byWS[p.TrueWindSpeed] = c
			speeds = append(speeds, p.TrueWindSpeed)
		}
		c.Points = append(c.Points, CurvePoint{Angle: p.TrueWindAngle, BoatSpeed: p.BoatSpeed})
	}

	sort.Float64s(speeds)
	curves := make([]Curve, 0, len(speeds))
	for _, ws := range speeds {
		c := byWS[ws]
		sort.Slice(c.Points, func(i, j int) bool { return c.Points[i].Angle < c.Points[j].Angle })
		curves = append(curves, *c)
	}
	return curves
}
