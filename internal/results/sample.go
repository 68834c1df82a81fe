package results

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"placegrip/internal/domain"
)

// SampleSource serves a fixed set of Dubai restaurants
type SampleSource struct{}

// Name identifies the built-in data set
func (SampleSource) Name() string {
	return "sample"
}

// Load returns the sample places with fresh ids
func (SampleSource) Load(ctx context.Context) ([]domain.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	places := make([]domain.Place, len(samplePlaces))
	for i, s := range samplePlaces {
		p := s.place
		p.ID = domain.PlaceID(uuid.New().String())
		p.ImageURLs = make([]string, heroImages)
		for j := range p.ImageURLs {
			p.ImageURLs[j] = fmt.Sprintf("https://picsum.photos/seed/%s%d/400/400", s.seed, j+1)
		}
		p.ReviewerImageURL = fmt.Sprintf("https://picsum.photos/seed/%s%d/24/24", s.seed, heroImages+1)
		places[i] = p
	}
	return places, nil
}

const heroImages = 5

type sample struct {
	seed  string
	place domain.Place
}

var samplePlaces = []sample{
	{"entrecote", domain.Place{
		Name: "Entrecôte Café de Paris - The Dubai Mall", Rating: 4.8,
		Category: "African restaurant", Area: "Jumeirah",
		IsOpenNow: true, ClosesAt: "3AM", DistanceMeters: 300,
		Coordinate: domain.Coordinate{Latitude: 25.1972, Longitude: 55.2744},
		Review:     `"The food and the ambience was amazing"`,
	}},
	{"akira", domain.Place{
		Name: "Akira Back Dubai", Rating: 4.7,
		Category: "Japanese restaurant", Area: "Jumeirah",
		IsOpenNow: true, ClosesAt: "3AM", DistanceMeters: 300,
		Coordinate: domain.Coordinate{Latitude: 25.2010, Longitude: 55.2712},
		Review:     `"Great sushi, even better view"`,
	}},
	{"ravi", domain.Place{
		Name: "Ravi Restaurant", Rating: 4.3,
		Category: "Pakistani restaurant", Area: "Satwa",
		IsOpenNow: true, ClosesAt: "2:30AM", DistanceMeters: 5400,
		Coordinate: domain.Coordinate{Latitude: 25.2355, Longitude: 55.2766},
		Review:     `"Cheap, fast and the daal is perfect"`,
	}},
	{"ustad", domain.Place{
		Name: "Al Ustad Special Kabab", Rating: 4.5,
		Category: "Persian restaurant", Area: "Al Fahidi",
		IsOpenNow: false, ClosesAt: "11PM", DistanceMeters: 9800,
		Coordinate: domain.Coordinate{Latitude: 25.2604, Longitude: 55.2939},
		Review:     `"Queue is worth it"`,
	}},
	{"pierchic", domain.Place{
		Name: "Pierchic", Rating: 4.6,
		Category: "Seafood restaurant", Area: "Umm Suqeim",
		IsOpenNow: true, ClosesAt: "11:30PM", DistanceMeters: 14200,
		Coordinate: domain.Coordinate{Latitude: 25.1379, Longitude: 55.1876},
		Review:     `"Sunset dinner on the water"`,
	}},
}
