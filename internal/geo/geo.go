// Package geo resolves the administrative geography of a place: city, state
// and country. Coordinates go through a reverse geocoder and a country
// reference dataset; free text goes through ParseLocality.
package geo

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownCountry is returned by a Reference that has no matching country.
var ErrUnknownCountry = errors.New("country not found")

// ReverseResult is the nearest locality to a coordinate.
type ReverseResult struct {
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryCode string `json:"country_code"`
}

// ReverseGeocoder converts coordinates to the nearest locality.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (ReverseResult, error)
}

// Reference is a country and subdivision dataset.
type Reference interface {
	// CountryName returns the display name for an ISO 3166-1 alpha-2 code.
	CountryName(alpha2 string) (string, error)
	// Subdivisions returns the subdivision names of a country.
	Subdivisions(alpha2 string) ([]string, error)
	// FuzzyCountry returns the name of the country that best matches text.
	FuzzyCountry(text string) (string, error)
}

// AmbiguousSubdivisionError means a country has more than one subdivision
// with the same name. It points at corrupt reference data and is never
// resolved by picking one.
type AmbiguousSubdivisionError struct {
	Country string
	Name    string
	Matches int
}

func (e *AmbiguousSubdivisionError) Error() string {
	return fmt.Sprintf("%d subdivisions named %q in %s", e.Matches, e.Name, e.Country)
}
