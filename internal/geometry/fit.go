// Package geometry frames the map camera around a set of places and
// answers spatial hit-tests on the rendered pins.
package geometry

import "placegrip/internal/domain"

// Default fitting parameters, in degrees
const (
	DefaultPadding    = 1.4  // 20% on each side
	DefaultSingleSpan = 0.01 // close-up for a lone result
	DefaultMinSpan    = 0.005
)

// FitOptions tunes the fitter
type FitOptions struct {
	Padding    float64 // span multiplier applied per axis
	SingleSpan float64 // span used when there is exactly one coordinate
	MinSpan    float64 // floor applied to each axis after padding
}

// DefaultFitOptions returns the standard fitting parameters
func DefaultFitOptions() FitOptions {
	return FitOptions{
		Padding:    DefaultPadding,
		SingleSpan: DefaultSingleSpan,
		MinSpan:    DefaultMinSpan,
	}
}

// Fit frames coords using the default options.
// It returns false when there is nothing to frame.
func Fit(coords []domain.Coordinate) (domain.Region, bool) {
	return DefaultFitOptions().Fit(coords)
}

// Fit computes a camera region covering coords.
//
// A single coordinate gets a fixed close-up span. Several coordinates get
// their axis-aligned bounding box, padded and clamped per axis. Longitude
// wraparound at ±180° is not handled: a set straddling the antimeridian
// produces a box spanning most of the globe.
func (o FitOptions) Fit(coords []domain.Coordinate) (domain.Region, bool) {
	switch len(coords) {
	case 0:
		return domain.Region{}, false
	case 1:
		return domain.Region{
			Center: coords[0],
			Span:   domain.Span{LatitudeDelta: o.SingleSpan, LongitudeDelta: o.SingleSpan},
		}, true
	}

	minLat, maxLat := coords[0].Latitude, coords[0].Latitude
	minLon, maxLon := coords[0].Longitude, coords[0].Longitude
	for _, c := range coords[1:] {
		minLat = min(minLat, c.Latitude)
		maxLat = max(maxLat, c.Latitude)
		minLon = min(minLon, c.Longitude)
		maxLon = max(maxLon, c.Longitude)
	}

	return domain.Region{
		Center: domain.Coordinate{
			Latitude:  (minLat + maxLat) / 2,
			Longitude: (minLon + maxLon) / 2,
		},
		Span: domain.Span{
			LatitudeDelta:  max((maxLat-minLat)*o.Padding, o.MinSpan),
			LongitudeDelta: max((maxLon-minLon)*o.Padding, o.MinSpan),
		},
	}, true
}

// Coordinates extracts the coordinate of every place, in order
func Coordinates(places []domain.Place) []domain.Coordinate {
	coords := make([]domain.Coordinate, len(places))
	for i, p := range places {
		coords[i] = p.Coordinate
	}
	return coords
}

// Zoom scales the span of r by factor, keeping its center.
// Factors below 1 zoom in.
func Zoom(r domain.Region, factor float64) domain.Region {
	r.Span.LatitudeDelta *= factor
	r.Span.LongitudeDelta *= factor
	return r
}

// Pan moves the center of r by a fraction of its span on each axis
func Pan(r domain.Region, latFraction, lonFraction float64) domain.Region {
	r.Center.Latitude += r.Span.LatitudeDelta * latFraction
	r.Center.Longitude += r.Span.LongitudeDelta * lonFraction
	return r
}
