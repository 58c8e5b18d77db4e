// Package telemetry defines the replay data model: timestamped samples
// grouped into per-boat tracks, grouped into datasets. Datasets are treated
// as immutable for the duration of a replay session; every operation that
// changes shape returns a new value.
package telemetry

// Sample is one observation for one boat. Lat/Lon and the timestamp are
// always present; the remaining instrument fields are nil when the source
// row did not carry a usable value.
type Sample struct {
	// UnixMs is the observation time in milliseconds since the Unix epoch.
	UnixMs int64

	Lat float64 // degrees, [-90, 90]
	Lon float64 // degrees, [-180, 180]

	SOG *float64 // speed over ground, knots
	COG *float64 // course over ground, degrees

	// Wind angles, normalized into [0, 360) at ingestion.
	TWD *float64 // true wind direction
	AWA *float64 // apparent wind angle
	TWA *float64 // true wind angle

	// Extra holds unrecognised source columns verbatim. The values carry no
	// typed semantics; they are passed through for display only.
	Extra map[string]string
}

// Float returns a pointer to v. Convenience for building samples.
func Float(v float64) *float64 { return &v }
