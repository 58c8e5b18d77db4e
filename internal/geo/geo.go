// Package geo provides the small amount of spherical geometry the replay
// core needs: forward geodesy for placing wind glyphs, and lat/lon bounding
// boxes for framing the map view.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used for all spherical math.
const EarthRadiusMeters = 6371000.0

// DestinationPoint returns the point reached by travelling distanceMeters
// from (lat, lon) along the initial bearing bearingDeg, on a sphere of
// radius EarthRadiusMeters.
func DestinationPoint(lat, lon, bearingDeg, distanceMeters float64) (float64, float64) {
	phi1 := lat * math.Pi / 180
	lambda1 := lon * math.Pi / 180
	theta := bearingDeg * math.Pi / 180
	delta := distanceMeters / EarthRadiusMeters

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) +
		math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2))

	lat2 := phi2 * 180 / math.Pi
	lon2 := lambda2 * 180 / math.Pi

	// Keep longitude in [-180, 180) after crossing the antimeridian.
	lon2 = math.Mod(lon2+540, 360) - 180
	return lat2, lon2
}

// Bounds is a lat/lon axis-aligned bounding box.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// NewBounds returns a degenerate box containing only the given point.
func NewBounds(lat, lon float64) Bounds {
	return Bounds{MinLat: lat, MaxLat: lat, MinLon: lon, MaxLon: lon}
}

// Extend grows the box to include the given point.
func (b *Bounds) Extend(lat, lon float64) {
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
	if lon < b.MinLon {
		b.MinLon = lon
	}
	if lon > b.MaxLon {
		b.MaxLon = lon
	}
}

// Contains reports whether the point lies inside the box (inclusive).
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Center returns the midpoint of the box.
func (b Bounds) Center() (float64, float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}
