package domain

// PlaceID identifies a place within a result set
type PlaceID string

// Coordinate is a WGS 84 position in degrees
type Coordinate struct {
	Latitude  float64 `toml:"lat"`
	Longitude float64 `toml:"lon"`
}

// Valid reports whether the coordinate is inside the latitude/longitude ranges
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Span is the extent of a region in degrees
type Span struct {
	LatitudeDelta  float64
	LongitudeDelta float64
}

// Region is a map camera position: a center plus a zoom span
type Region struct {
	Center Coordinate
	Span   Span
}

// HasSpan reports whether the region is usable as a camera position.
// A zero span means the camera was never set.
func (r Region) HasSpan() bool {
	return r.Span.LatitudeDelta > 0 && r.Span.LongitudeDelta > 0
}

// Bounds returns the south-west and north-east corners of the region
func (r Region) Bounds() (sw, ne Coordinate) {
	halfLat := r.Span.LatitudeDelta / 2
	halfLon := r.Span.LongitudeDelta / 2
	sw = Coordinate{Latitude: r.Center.Latitude - halfLat, Longitude: r.Center.Longitude - halfLon}
	ne = Coordinate{Latitude: r.Center.Latitude + halfLat, Longitude: r.Center.Longitude + halfLon}
	return sw, ne
}

// Contains reports whether c lies inside the region (edges included)
func (r Region) Contains(c Coordinate) bool {
	sw, ne := r.Bounds()
	return c.Latitude >= sw.Latitude && c.Latitude <= ne.Latitude &&
		c.Longitude >= sw.Longitude && c.Longitude <= ne.Longitude
}

// MaxRating is the top of the rating scale
const MaxRating = 5.0

// ValidRating reports whether r lies on the 0 to MaxRating scale. NaN does not.
func ValidRating(r float64) bool {
	return r >= 0 && r <= MaxRating
}

// Place is one searchable point of interest.
// Places are built by a result source and never modified afterwards.
type Place struct {
	ID               PlaceID
	Name             string
	Rating           float64 // 0.0 - 5.0
	Category         string
	Area             string
	IsOpenNow        bool
	ClosesAt         string
	DistanceMeters   int
	Coordinate       Coordinate
	ImageURLs        []string
	Review           string
	ReviewerImageURL string
}
