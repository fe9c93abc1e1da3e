package geo

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/placecapture/internal/types"
)

// DefaultCountry is the country whose subdivisions ParseLocality checks first.
const DefaultCountry = "US"

var plusCodePrefix = regexp.MustCompile(`^\w+\+\w+\s*`)

// Resolver fills in the geography of a candidate.
type Resolver struct {
	reverse        ReverseGeocoder
	ref            Reference
	defaultCountry string
}

// NewResolver returns a Resolver. With a nil reverse geocoder only the legacy
// text parser is available.
func NewResolver(reverse ReverseGeocoder, ref Reference, defaultCountry string) *Resolver {
	if defaultCountry == "" {
		defaultCountry = DefaultCountry
	}
	return &Resolver{
		reverse:        reverse,
		ref:            ref,
		defaultCountry: strings.ToUpper(defaultCountry),
	}
}

// Resolve returns the city, state and country for c. Lookup misses leave
// fields empty; the only error is *AmbiguousSubdivisionError.
func (r *Resolver) Resolve(ctx context.Context, c types.Candidate) (types.Locality, error) {
	if r.reverse == nil {
		if c.PlusCode == "" {
			log.Debug("No coordinate geocoder and no plus code", "name", c.Name)
			return types.Locality{}, nil
		}
		return r.ParseLocality(c.PlusCode)
	}

	lat, latErr := strconv.ParseFloat(c.Latitude, 64)
	lon, lonErr := strconv.ParseFloat(c.Longitude, 64)
	if latErr != nil || lonErr != nil {
		log.Debug("Unparseable coordinates", "latitude", c.Latitude, "longitude", c.Longitude)
		return types.Locality{}, nil
	}

	res, err := r.reverse.Reverse(ctx, lat, lon)
	if err != nil {
		log.Debug("Reverse geocode failed", "latitude", c.Latitude, "longitude", c.Longitude, "error", err)
		return types.Locality{}, nil
	}

	loc := types.Locality{State: res.Region}
	if res.CountryCode != "" {
		name, err := r.ref.CountryName(res.CountryCode)
		if err != nil {
			log.Debug("Unknown country code", "code", res.CountryCode, "error", err)
		} else {
			loc.Country = name
		}
	}

	// Coordinates near a boundary often resolve to the neighbouring city;
	// the scraped address names the real one.
	if res.City != "" && strings.Contains(c.Address, res.City) {
		loc.City = res.City
	} else if res.City != "" {
		log.Debug("Discarded city missing from address", "city", res.City, "address", c.Address)
	}
	return loc, nil
}

// ParseLocality splits text such as "R5F7+WV Hackettstown, New Jersey" into
// city, state and country.
func (r *Resolver) ParseLocality(text string) (types.Locality, error) {
	rest := plusCodePrefix.ReplaceAllString(strings.TrimSpace(text), "")
	var parts []string
	for _, p := range strings.Split(rest, ",") {
		parts = append(parts, strings.TrimSpace(p))
	}

	loc := types.Locality{City: parts[0]}
	last := parts[len(parts)-1]

	found, err := r.isSubdivision(r.defaultCountry, last)
	if err != nil {
		return types.Locality{}, err
	}
	if found {
		loc.State = last
		if name, err := r.ref.CountryName(r.defaultCountry); err == nil {
			loc.Country = name
		}
		return loc, nil
	}

	if name, err := r.ref.FuzzyCountry(last); err == nil {
		loc.Country = name
		if len(parts) >= 3 {
			loc.State = parts[len(parts)-2]
		}
		return loc, nil
	}

	if len(parts) == 2 {
		loc.State = last
	}
	return loc, nil
}

func (r *Resolver) isSubdivision(country, name string) (bool, error) {
	subdivisions, err := r.ref.Subdivisions(country)
	if err != nil {
		log.Debug("No subdivisions", "country", country, "error", err)
		return false, nil
	}

	matches := 0
	for _, s := range subdivisions {
		if s == name {
			matches++
		}
	}
	if matches > 1 {
		return false, &AmbiguousSubdivisionError{Country: country, Name: name, Matches: matches}
	}
	return matches == 1, nil
}
