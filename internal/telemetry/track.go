package telemetry

import (
	"hash/fnv"
	"sort"
)

// palette is the fixed set of track colours. A boat keeps the same colour
// across sessions because assignment hashes the boat ID; two different IDs
// may share a colour.
var palette = [16]string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8",
	"#f58231", "#911eb4", "#46f0f0", "#f032e6",
	"#bcf60c", "#fabebe", "#008080", "#e6beff",
	"#9a6324", "#fffac8", "#800000", "#aaffc3",
}

// ColorForID deterministically maps a boat ID to one of the palette colours.
func ColorForID(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Track is one boat's sample sequence, ordered ascending by timestamp.
type Track struct {
	ID      string // merge key, unique within a dataset
	Name    string // display name; falls back to ID at ingestion
	Color   string // palette colour token derived from ID
	Samples []Sample
}

// NewTrack returns an empty track with its colour assigned from the ID.
func NewTrack(id, name string) Track {
	if name == "" {
		name = id
	}
	return Track{ID: id, Name: name, Color: ColorForID(id)}
}

// SortSamples orders the track's samples ascending by timestamp. The sort is
// stable so samples with equal timestamps keep their input order.
func (t *Track) SortSamples() {
	sort.SliceStable(t.Samples, func(i, j int) bool {
		return t.Samples[i].UnixMs < t.Samples[j].UnixMs
	})
}

// StartMs returns the first sample's timestamp, or 0 for an empty track.
func (t Track) StartMs() int64 {
	if len(t.Samples) == 0 {
		return 0
	}
	return t.Samples[0].UnixMs
}

// EndMs returns the last sample's timestamp, or 0 for an empty track.
func (t Track) EndMs() int64 {
	if len(t.Samples) == 0 {
		return 0
	}
	return t.Samples[len(t.Samples)-1].UnixMs
}
