// Package results produces the place sets shown by the application.
package results

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"placegrip/internal/domain"
)

// Validation errors returned by FileSource
var (
	ErrMissingName       = errors.New("place has no name")
	ErrInvalidCoordinate = errors.New("coordinate out of range")
	ErrInvalidRating     = errors.New("rating out of range 0-5")
	ErrDuplicateID       = errors.New("duplicate place id")
)

// Source produces a complete result set
type Source interface {
	Name() string
	Load(ctx context.Context) ([]domain.Place, error)
}

// placeRecord is one [[places]] table in a places file
type placeRecord struct {
	ID             string   `toml:"id"`
	Name           string   `toml:"name"`
	Rating         float64  `toml:"rating"`
	Category       string   `toml:"category"`
	Area           string   `toml:"area"`
	OpenNow        bool     `toml:"open_now"`
	ClosesAt       string   `toml:"closes_at"`
	DistanceMeters int      `toml:"distance_m"`
	Lat            float64  `toml:"lat"`
	Lon            float64  `toml:"lon"`
	Images         []string `toml:"images"`
	Review         string   `toml:"review"`
	ReviewerImage  string   `toml:"reviewer_image"`
}

type placesFile struct {
	Places []placeRecord `toml:"places"`
}

// FileSource reads places from a TOML file
type FileSource struct {
	Path string
}

// NewFileSource creates a source for path
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name returns the file path
func (s *FileSource) Name() string {
	return s.Path
}

// Load reads and validates the file. Rows without an id get a fresh UUID.
func (s *FileSource) Load(ctx context.Context) ([]domain.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read places file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a places document
func Parse(data []byte) ([]domain.Place, error) {
	var doc placesFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse places file: %w", err)
	}

	places := make([]domain.Place, 0, len(doc.Places))
	seen := make(map[domain.PlaceID]int, len(doc.Places))
	for i, rec := range doc.Places {
		p, err := rec.toPlace()
		if err != nil {
			return nil, fmt.Errorf("place %d: %w", i+1, err)
		}
		if first, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("place %d: %w %q (first used by place %d)", i+1, ErrDuplicateID, p.ID, first+1)
		}
		seen[p.ID] = i
		places = append(places, p)
	}
	return places, nil
}

func (r placeRecord) toPlace() (domain.Place, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return domain.Place{}, ErrMissingName
	}
	coord := domain.Coordinate{Latitude: r.Lat, Longitude: r.Lon}
	if !coord.Valid() {
		return domain.Place{}, fmt.Errorf("%s: %w (%.4f, %.4f)", name, ErrInvalidCoordinate, r.Lat, r.Lon)
	}
	if !domain.ValidRating(r.Rating) {
		return domain.Place{}, fmt.Errorf("%s: %w (%.1f)", name, ErrInvalidRating, r.Rating)
	}

	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = uuid.New().String()
	}

	return domain.Place{
		ID:               domain.PlaceID(id),
		Name:             name,
		Rating:           r.Rating,
		Category:         r.Category,
		Area:             r.Area,
		IsOpenNow:        r.OpenNow,
		ClosesAt:         r.ClosesAt,
		DistanceMeters:   r.DistanceMeters,
		Coordinate:       coord,
		ImageURLs:        append([]string(nil), r.Images...),
		Review:           r.Review,
		ReviewerImageURL: r.ReviewerImage,
	}, nil
}
