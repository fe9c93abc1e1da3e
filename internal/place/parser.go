// Package place recognises place pages among the locations a map
// application navigates through.
package place

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-scripts/placecapture/internal/types"
)

var (
	// ErrNotPlace means the location is not a place page.
	ErrNotPlace = errors.New("location is not a place")
	// ErrPartialName means the place name still contains a separator, which
	// happens when the page is read before it finished loading.
	ErrPartialName = errors.New("place name captured prematurely")
)

var (
	viewFragment = regexp.MustCompile(`(@-?\d+(?:\.\d+)?,-?\d+(?:\.\d+)?),\d+(?:\.\d+)?[zma]\b.*$`)
	placePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://[^?#]*/place/([^/]+)/@(-?\d+\.\d+),(-?\d+\.\d+)`)
)

// Normalize strips the zoom or view fragment that follows the coordinates,
// so panning and zooming the same place does not look like a navigation.
func Normalize(location string) string {
	return viewFragment.ReplaceAllString(location, "$1")
}

// Parse extracts the name and coordinates from a place location. The
// coordinates are returned as they appear in the location.
func Parse(location string) (types.Candidate, error) {
	m := placePattern.FindStringSubmatch(Normalize(location))
	if m == nil {
		return types.Candidate{}, ErrNotPlace
	}

	name, err := url.PathUnescape(strings.ReplaceAll(m[1], "+", " "))
	if err != nil {
		return types.Candidate{}, ErrNotPlace
	}
	if strings.Contains(name, ",") {
		return types.Candidate{}, ErrPartialName
	}

	return types.Candidate{
		Name:      name,
		Latitude:  m[2],
		Longitude: m[3],
	}, nil
}
