package views

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"placegrip/internal/domain"
)

// FormatDistance renders a distance in meters as "300 m" or "5.4 km"
func FormatDistance(meters int) string {
	if meters <= 0 {
		return ""
	}
	return humanize.SIWithDigits(float64(meters), 1, "m")
}

// FormatRating renders a rating with one decimal and a star
func FormatRating(rating float64) string {
	return fmt.Sprintf("★ %.1f", rating)
}

// FormatOpening describes whether the place is open and until when
func FormatOpening(p domain.Place) string {
	if !p.IsOpenNow {
		return "Closed"
	}
	if p.ClosesAt == "" {
		return "Open"
	}
	return "Open · Closes " + p.ClosesAt
}

// FormatKind joins category and area, skipping empty parts
func FormatKind(p domain.Place) string {
	parts := make([]string, 0, 2)
	if p.Category != "" {
		parts = append(parts, p.Category)
	}
	if p.Area != "" {
		parts = append(parts, p.Area)
	}
	return strings.Join(parts, " · ")
}

// FormatPhotos describes the image count
func FormatPhotos(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "1 photo"
	default:
		return humanize.Comma(int64(n)) + " photos"
	}
}

// Truncate cuts s to width cells, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
