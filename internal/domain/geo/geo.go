// Package geo provides great-circle distance and bounding-box math for
// proximity search.
package geo

import "math"

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

const metersPerMile = 1609.344

// milesPerDegree is a conservative lower bound on the length of one degree
// of latitude (and of one degree of longitude at the equator). Dividing a
// radius by a lower bound yields an oversized box, which keeps the box a
// superset of the radius disk at every latitude.
const milesPerDegree = 68.703

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Valid reports whether latitude is in [-90,90] and longitude in [-180,180].
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Location is a geocoded place: a point plus the neighborhood it falls in.
// Neighborhood may be empty when the geocoder does not know one.
type Location struct {
	Point        Point
	Neighborhood string
}

// MetersToMiles converts meters to statute miles.
func MetersToMiles(m float64) float64 { return m / metersPerMile }

// MilesToMeters converts statute miles to meters.
func MilesToMeters(mi float64) float64 { return mi * metersPerMile }

// Haversine returns the great-circle distance in meters between two points.
func Haversine(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// BoundingBox is an axis-aligned latitude/longitude rectangle.
type BoundingBox struct {
	LatFloor float64
	LatCeil  float64
	LonFloor float64
	LonCeil  float64
}

// NewBoundingBox computes a box around center guaranteed to contain every
// point within radiusMiles. The box is a geometric overestimate used only
// as a prefilter; the exact distance check decides admission.
func NewBoundingBox(center Point, radiusMiles float64) BoundingBox {
	latDelta := radiusMiles / milesPerDegree

	latFloor := math.Max(center.Lat-latDelta, -90)
	latCeil := math.Min(center.Lat+latDelta, 90)

	// Longitude degrees shrink with latitude. Size the delta for the edge of
	// the latitude band (smallest cosine), so the box stays a superset.
	edge := math.Max(math.Abs(latFloor), math.Abs(latCeil))
	cosEdge := math.Cos(edge * math.Pi / 180)

	lonFloor, lonCeil := -180.0, 180.0
	if cosEdge > 1e-6 {
		lonDelta := radiusMiles / (milesPerDegree * cosEdge)
		// A box crossing the antimeridian falls back to the full range
		// rather than wrapping; the exact distance check filters the rest.
		if lonDelta < 180 && center.Lon-lonDelta >= -180 && center.Lon+lonDelta <= 180 {
			lonFloor = center.Lon - lonDelta
			lonCeil = center.Lon + lonDelta
		}
	}

	return BoundingBox{
		LatFloor: latFloor,
		LatCeil:  latCeil,
		LonFloor: lonFloor,
		LonCeil:  lonCeil,
	}
}

// Contains reports whether p falls inside the box, boundaries included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.LatFloor && p.Lat <= b.LatCeil &&
		p.Lon >= b.LonFloor && p.Lon <= b.LonCeil
}
