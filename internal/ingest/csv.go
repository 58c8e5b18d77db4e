// Package ingest parses raw telemetry CSV into a telemetry.Dataset.
//
// The parser is deliberately tolerant: field recordings are noisy, so a row
// that is missing or mangles a required value is dropped rather than failing
// the whole file, and an optional field that fails to parse is simply left
// unset on the sample. Ingestion only fails outright when not a single boat
// produced a valid sample.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/regatta-data/race.replay/internal/telemetry"
	"github.com/regatta-data/race.replay/internal/units"
)

// ErrEmptyDataset reports that no boat produced any valid sample.
var ErrEmptyDataset = errors.New("ingest: no valid telemetry samples in input")

// Warning records a non-fatal tokenization anomaly encountered while
// reading the input. Warnings accompany a successful result.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Recognised column names, matched case-insensitively.
const (
	colTimestamp = "timestamp"
	colLat       = "lat"
	colLon       = "lon"
	colBoatID    = "boat_id"
	colBoatName  = "boat_name"
	colSOG       = "sog"
	colCOG       = "cog"
	colTWD       = "twd"
	colAWA       = "awa"
	colTWA       = "twa"
)

var schemaColumns = map[string]bool{
	colTimestamp: true, colLat: true, colLon: true, colBoatID: true,
	colBoatName: true, colSOG: true, colCOG: true, colTWD: true,
	colAWA: true, colTWA: true,
}

// header maps lowercased column names to field indices and remembers the
// original spelling of pass-through columns.
type header struct {
	index    map[string]int
	extras   []int    // indices of non-schema columns
	extraKey []string // original (trimmed) names, parallel to extras
}

func parseHeader(record []string) header {
	h := header{index: map[string]int{}}
	for i, raw := range record {
		name := strings.TrimSpace(raw)
		key := strings.ToLower(name)
		if _, dup := h.index[key]; dup {
			continue // first occurrence wins
		}
		h.index[key] = i
		if !schemaColumns[key] {
			h.extras = append(h.extras, i)
			h.extraKey = append(h.extraKey, name)
		}
	}
	return h
}

// field returns the trimmed value of the named column, or "" when the column
// is absent from the header or the record is too short.
func (h header) field(record []string, name string) string {
	i, ok := h.index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// Ingest parses delimited telemetry text (header row first) into a dataset.
// Rows that cannot be tokenized by the CSV reader are reported as warnings;
// rows with invalid required values are dropped silently. The returned error
// is ErrEmptyDataset (possibly wrapped) when nothing usable remains.
func Ingest(content string) (telemetry.Dataset, []Warning, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	headerRec, err := r.Read()
	if err != nil {
		return telemetry.Dataset{}, nil, fmt.Errorf("ingest: reading header: %w", ErrEmptyDataset)
	}
	h := parseHeader(headerRec)

	var warnings []Warning
	byID := map[string]*telemetry.Track{}
	var order []string

	line := 1
	for {
		line++
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			warnings = append(warnings, Warning{Line: line, Message: err.Error()})
			continue
		}

		sample, id, name, ok := parseRow(h, record)
		if !ok {
			continue
		}

		track, seen := byID[id]
		if !seen {
			t := telemetry.NewTrack(id, name)
			byID[id] = &t
			order = append(order, id)
			track = &t
		} else if track.Name == track.ID && name != "" {
			// Adopt the first non-blank display name this boat reports.
			track.Name = name
		}
		track.Samples = append(track.Samples, sample)
	}

	tracks := make([]telemetry.Track, 0, len(order))
	for _, id := range order {
		t := byID[id]
		t.SortSamples()
		tracks = append(tracks, *t)
	}
	if len(tracks) == 0 {
		return telemetry.Dataset{}, warnings, ErrEmptyDataset
	}
	return telemetry.NewDataset(tracks), warnings, nil
}

// parseRow validates one record. ok is false when a required value is
// missing or invalid; optional fields never fail the row.
func parseRow(h header, record []string) (sample telemetry.Sample, id, name string, ok bool) {
	id = h.field(record, colBoatID)
	if id == "" {
		return telemetry.Sample{}, "", "", false
	}

	ms, ok := parseTimestamp(h.field(record, colTimestamp))
	if !ok {
		return telemetry.Sample{}, "", "", false
	}
	lat, ok := parseFinite(h.field(record, colLat))
	if !ok || lat < -90 || lat > 90 {
		return telemetry.Sample{}, "", "", false
	}
	lon, ok := parseFinite(h.field(record, colLon))
	if !ok || lon < -180 || lon > 180 {
		return telemetry.Sample{}, "", "", false
	}

	sample = telemetry.Sample{UnixMs: ms, Lat: lat, Lon: lon}
	sample.SOG = optionalFloat(h.field(record, colSOG))
	sample.COG = optionalFloat(h.field(record, colCOG))
	sample.TWD = optionalAngle(h.field(record, colTWD))
	sample.AWA = optionalAngle(h.field(record, colAWA))
	sample.TWA = optionalAngle(h.field(record, colTWA))

	for n, i := range h.extras {
		if i >= len(record) {
			continue
		}
		v := strings.TrimSpace(record[i])
		if v == "" {
			continue
		}
		if sample.Extra == nil {
			sample.Extra = map[string]string{}
		}
		sample.Extra[h.extraKey[n]] = v
	}

	return sample, id, h.field(record, colBoatName), true
}

// timestampLayouts are tried in order before falling back to epoch millis.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTimestamp accepts ISO-8601 calendar timestamps or raw epoch
// milliseconds.
func parseTimestamp(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return int64(v), true
}

func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// optionalFloat parses a lenient numeric field; unusable values are omitted.
func optionalFloat(s string) *float64 {
	v, ok := parseFinite(s)
	if !ok {
		return nil
	}
	return &v
}

// optionalAngle parses a lenient angle field and normalizes it into
// [0, 360).
func optionalAngle(s string) *float64 {
	v, ok := parseFinite(s)
	if !ok {
		return nil
	}
	n := units.NormalizeAngle(v)
	return &n
}
