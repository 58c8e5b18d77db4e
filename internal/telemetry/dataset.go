package telemetry

import (
	"github.com/google/uuid"

	"github.com/regatta-data/race.replay/internal/geo"
)

// Dataset is one replay session's worth of tracks. TimeMin and TimeMax span
// the first and last sample across all tracks; both are 0 when no track has
// samples, so consumers never see infinities.
type Dataset struct {
	// SourceID identifies where this dataset came from (one per ingested
	// file, and a fresh one per merge).
	SourceID string

	// Tracks are unique by Track.ID.
	Tracks []Track

	TimeMin int64 // ms
	TimeMax int64 // ms
}

// NewDataset assembles a dataset from tracks, computing the time extent and
// assigning a fresh source ID.
func NewDataset(tracks []Track) Dataset {
	ds := Dataset{SourceID: uuid.NewString(), Tracks: tracks}
	ds.TimeMin, ds.TimeMax = timeExtent(tracks)
	return ds
}

// TrackByID returns the track with the given ID, or nil.
func (ds *Dataset) TrackByID(id string) *Track {
	for i := range ds.Tracks {
		if ds.Tracks[i].ID == id {
			return &ds.Tracks[i]
		}
	}
	return nil
}

// timeExtent returns the min first-sample and max last-sample timestamps
// across tracks, or (0, 0) when no track has samples.
func timeExtent(tracks []Track) (int64, int64) {
	var minMs, maxMs int64
	seen := false
	for _, t := range tracks {
		if len(t.Samples) == 0 {
			continue
		}
		if !seen || t.StartMs() < minMs {
			minMs = t.StartMs()
		}
		if !seen || t.EndMs() > maxMs {
			maxMs = t.EndMs()
		}
		seen = true
	}
	if !seen {
		return 0, 0
	}
	return minMs, maxMs
}

// Merge combines datasets into one. A boat ID appearing in several inputs
// yields a single track whose samples are the concatenation of the inputs
// (in input order) re-sorted ascending by timestamp. The inputs are not
// modified; sample slices in the result are fresh copies.
func Merge(datasets ...Dataset) Dataset {
	var order []string
	byID := map[string]*Track{}

	for _, ds := range datasets {
		for _, src := range ds.Tracks {
			dst, ok := byID[src.ID]
			if !ok {
				t := NewTrack(src.ID, src.Name)
				byID[src.ID] = &t
				order = append(order, src.ID)
				dst = &t
			}
			dst.Samples = append(dst.Samples, src.Samples...)
		}
	}

	tracks := make([]Track, 0, len(order))
	for _, id := range order {
		t := byID[id]
		t.SortSamples()
		tracks = append(tracks, *t)
	}
	return NewDataset(tracks)
}

// ComputeBounds returns the box enclosing every sample position across the
// given tracks, or nil when there are no samples at all.
func ComputeBounds(tracks []Track) *geo.Bounds {
	var b *geo.Bounds
	for _, t := range tracks {
		for _, s := range t.Samples {
			if b == nil {
				nb := geo.NewBounds(s.Lat, s.Lon)
				b = &nb
				continue
			}
			b.Extend(s.Lat, s.Lon)
		}
	}
	return b
}
