// Package replay answers point-in-time questions against a boat's sample
// sequence: interpolated position and instruments at an arbitrary timestamp,
// travelled-so-far prefixes, rolling speed averages and time-range
// restriction. All functions are pure; tracks are never modified, so
// concurrent queries against the same dataset need no synchronization.
package replay

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/regatta-data/race.replay/internal/telemetry"
	"github.com/regatta-data/race.replay/internal/units"
)

// DefaultWindowSeconds is the rolling-average window used when the caller
// does not specify one.
const DefaultWindowSeconds = 30

// Interpolated is the result of a point-in-time query. Sample holds the
// synthesized values at the query timestamp; Before and After reference the
// stored samples it was derived from (identical on an exact timestamp hit).
type Interpolated struct {
	Sample telemetry.Sample
	Before *telemetry.Sample
	After  *telemetry.Sample
	Ratio  float64
}

// InterpolateAt reconstructs the track's state at unixMs, or returns nil
// when the track is empty or unixMs falls outside [first, last] — the engine
// never extrapolates.
//
// Position, speed and course interpolate linearly; speed and course require
// both bracketing samples to carry the field. Wind-direction fields (TWD,
// AWA, TWA) interpolate along the shortest arc and, because wind is
// quasi-stationary between fixes, carry a single endpoint's value through
// when only one side defines it.
func InterpolateAt(t telemetry.Track, unixMs int64) *Interpolated {
	n := len(t.Samples)
	if n == 0 || unixMs < t.Samples[0].UnixMs || unixMs > t.Samples[n-1].UnixMs {
		return nil
	}

	// First index whose timestamp is >= the query time. The timestamps are
	// sorted at ingestion, so a binary search finds the bracket.
	idx := sort.Search(n, func(i int) bool { return t.Samples[i].UnixMs >= unixMs })

	if idx < n && t.Samples[idx].UnixMs == unixMs {
		s := &t.Samples[idx]
		return &Interpolated{Sample: *s, Before: s, After: s, Ratio: 0}
	}

	p1 := &t.Samples[idx-1]
	p2 := &t.Samples[idx]
	span := p2.UnixMs - p1.UnixMs
	if span <= 0 {
		// Duplicate timestamps at the tail; fall back to the last sample.
		last := &t.Samples[n-1]
		return &Interpolated{Sample: *last, Before: last, After: last, Ratio: 0}
	}
	ratio := float64(unixMs-p1.UnixMs) / float64(span)

	s := telemetry.Sample{
		UnixMs: unixMs,
		Lat:    lerp(p1.Lat, p2.Lat, ratio),
		Lon:    lerp(p1.Lon, p2.Lon, ratio),
		SOG:    lerpField(p1.SOG, p2.SOG, ratio),
		COG:    lerpField(p1.COG, p2.COG, ratio),
		TWD:    lerpWind(p1.TWD, p2.TWD, ratio),
		AWA:    lerpWind(p1.AWA, p2.AWA, ratio),
		TWA:    lerpWind(p1.TWA, p2.TWA, ratio),
	}
	return &Interpolated{Sample: s, Before: p1, After: p2, Ratio: ratio}
}

func lerp(a, b, ratio float64) float64 { return a + (b-a)*ratio }

// lerpField interpolates an optional linear field; absent on either side
// means absent in the result.
func lerpField(a, b *float64, ratio float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	v := lerp(*a, *b, ratio)
	return &v
}

// lerpWind interpolates an optional bearing along the shortest arc, carrying
// a lone endpoint's value through unchanged.
func lerpWind(a, b *float64, ratio float64) *float64 {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		v := *b
		return &v
	case b == nil:
		v := *a
		return &v
	}
	v := units.LerpAngle(*a, *b, ratio)
	return &v
}

// PointsUpTo returns the samples with timestamp <= unixMs, in order. The
// returned slice shares the track's backing array; callers must not modify
// it.
func PointsUpTo(t telemetry.Track, unixMs int64) []telemetry.Sample {
	idx := sort.Search(len(t.Samples), func(i int) bool {
		return t.Samples[i].UnixMs > unixMs
	})
	return t.Samples[:idx]
}

// RollingAverageSpeed returns the mean speed over ground across samples in
// the window [unixMs - windowSeconds*1000, unixMs], both ends inclusive.
// Samples without a speed value are excluded entirely; when no speed-bearing
// sample falls inside the window the second return is false.
func RollingAverageSpeed(t telemetry.Track, unixMs int64, windowSeconds int) (float64, bool) {
	start := unixMs - int64(windowSeconds)*1000

	var speeds []float64
	for _, s := range t.Samples {
		if s.UnixMs < start {
			continue
		}
		if s.UnixMs > unixMs {
			break
		}
		if s.SOG != nil {
			speeds = append(speeds, *s.SOG)
		}
	}
	if len(speeds) == 0 {
		return 0, false
	}
	return stat.Mean(speeds, nil), true
}

// FilterByTimeRange returns a copy of the track restricted to samples with
// startMs <= timestamp <= endMs. The original track is untouched.
func FilterByTimeRange(t telemetry.Track, startMs, endMs int64) telemetry.Track {
	out := telemetry.Track{ID: t.ID, Name: t.Name, Color: t.Color}
	for _, s := range t.Samples {
		if s.UnixMs >= startMs && s.UnixMs <= endMs {
			out.Samples = append(out.Samples, s)
		}
	}
	return out
}
