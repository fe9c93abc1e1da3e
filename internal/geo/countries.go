package geo

import (
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/pariz/gountries"
	"github.com/rotisserie/eris"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minFuzzyLength keeps abbreviations like "UT" from subsequence matching a
// country name.
const minFuzzyLength = 4

// Countries is a Reference backed by the gountries dataset.
type Countries struct {
	query  *gountries.Query
	byName map[string]string
	names  []string
	folded []string
	// parents maps a folded subdivision name to the countries that have it.
	parents map[string][]string
}

// NewCountries loads the dataset.
func NewCountries() *Countries {
	q := gountries.New()
	c := &Countries{
		query:   q,
		byName:  make(map[string]string),
		parents: make(map[string][]string),
	}

	for _, country := range q.FindAllCountries() {
		common := country.Name.Common
		c.byName[fold(common)] = common
		if country.Name.Official != "" {
			c.byName[fold(country.Name.Official)] = common
		}
		c.names = append(c.names, common)
		for _, sub := range country.SubDivisions() {
			key := fold(sub.Name)
			if !slices.Contains(c.parents[key], common) {
				c.parents[key] = append(c.parents[key], common)
			}
		}
	}
	sort.Strings(c.names)
	for _, name := range c.names {
		c.folded = append(c.folded, fold(name))
	}
	return c
}

// CountryName implements Reference.
func (c *Countries) CountryName(alpha2 string) (string, error) {
	country, err := c.query.FindCountryByAlpha(strings.ToUpper(alpha2))
	if err != nil {
		return "", eris.Wrapf(ErrUnknownCountry, "alpha-2 %q", alpha2)
	}
	return country.Name.Common, nil
}

// Subdivisions implements Reference.
func (c *Countries) Subdivisions(alpha2 string) ([]string, error) {
	country, err := c.query.FindCountryByAlpha(strings.ToUpper(alpha2))
	if err != nil {
		return nil, eris.Wrapf(ErrUnknownCountry, "alpha-2 %q", alpha2)
	}
	var names []string
	for _, s := range country.SubDivisions() {
		names = append(names, s.Name)
	}
	return names, nil
}

// FuzzyCountry implements Reference. It tries an exact match on the common
// or official name ignoring case and accents, then the parent of a
// subdivision with that name, then a unique substring match, then a fuzzy
// match whose words each start a word of the country name.
func (c *Countries) FuzzyCountry(text string) (string, error) {
	q := fold(text)
	if q == "" {
		return "", eris.Wrap(ErrUnknownCountry, "empty name")
	}
	if name, ok := c.byName[q]; ok {
		return name, nil
	}
	if parents := c.parents[q]; len(parents) == 1 {
		return parents[0], nil
	}
	if len(q) < minFuzzyLength {
		return "", eris.Wrapf(ErrUnknownCountry, "%q", text)
	}

	var containing []string
	for i, f := range c.folded {
		if strings.Contains(f, q) {
			containing = append(containing, c.names[i])
		}
	}
	if len(containing) == 1 {
		return containing[0], nil
	}

	for _, m := range fuzzy.Find(q, c.folded) {
		if startsWords(q, m.Str) {
			return c.names[m.Index], nil
		}
	}
	return "", eris.Wrapf(ErrUnknownCountry, "%q", text)
}

// startsWords reports whether every word of query is a prefix of some word
// of name. It rejects scattered subsequence matches.
func startsWords(query, name string) bool {
	words := strings.Fields(name)
	for _, q := range strings.Fields(query) {
		if !slices.ContainsFunc(words, func(w string) bool { return strings.HasPrefix(w, q) }) {
			return false
		}
	}
	return true
}

// fold lowercases s and strips diacritics.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
