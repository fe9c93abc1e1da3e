// Package confirm decides when a captured place needs the user's attention
// and runs the edit loop until every required field has a value.
package confirm

import (
	"strings"

	"github.com/go-scripts/placecapture/internal/store"
	"github.com/go-scripts/placecapture/internal/types"
)

// Labels of the fields every candidate carries.
const (
	LabelName      = "name"
	LabelLatitude  = "latitude"
	LabelLongitude = "longitude"
	LabelAddress   = "address"
	LabelCity      = "city"
	LabelState     = "state"
	LabelCountry   = "country"
	LabelRating    = "rating"
	LabelReviews   = "reviews"
	LabelCategory  = "category"
)

// Field is one editable value.
type Field struct {
	Label    string
	Value    string
	Required bool
}

// Blank reports whether the field has no value besides whitespace.
func (f Field) Blank() bool {
	return strings.TrimSpace(f.Value) == ""
}

// FieldSet is an ordered list of fields with unique labels.
type FieldSet []Field

// Build returns the fields for c followed by the caller's extra labels,
// which start empty. An extra required label that already exists marks the
// existing field as required.
func Build(c types.Candidate, required, optional []string) FieldSet {
	fs := FieldSet{
		{Label: LabelName, Value: c.Name, Required: true},
		{Label: LabelLatitude, Value: c.Latitude, Required: true},
		{Label: LabelLongitude, Value: c.Longitude, Required: true},
		{Label: LabelAddress, Value: c.Address},
		{Label: LabelCity, Value: c.City, Required: true},
		{Label: LabelState, Value: c.State},
		{Label: LabelCountry, Value: c.Country, Required: true},
		{Label: LabelRating, Value: c.Rating},
		{Label: LabelReviews, Value: c.Reviews},
		{Label: LabelCategory, Value: c.Category},
	}
	for _, label := range required {
		if i := fs.index(label); i >= 0 {
			fs[i].Required = true
			continue
		}
		fs = append(fs, Field{Label: label, Required: true})
	}
	for _, label := range optional {
		if fs.index(label) < 0 {
			fs = append(fs, Field{Label: label})
		}
	}
	return fs
}

func (fs FieldSet) index(label string) int {
	for i, f := range fs {
		if f.Label == label {
			return i
		}
	}
	return -1
}

// Value returns the value of label.
func (fs FieldSet) Value(label string) string {
	if i := fs.index(label); i >= 0 {
		return fs[i].Value
	}
	return ""
}

// With returns a copy of fs with values applied. Labels not in fs are
// ignored.
func (fs FieldSet) With(values map[string]string) FieldSet {
	out := make(FieldSet, len(fs))
	copy(out, fs)
	for i := range out {
		if v, ok := values[out[i].Label]; ok {
			out[i].Value = v
		}
	}
	return out
}

// MissingRequired returns the labels of blank required fields.
func (fs FieldSet) MissingRequired() []string {
	var missing []string
	for _, f := range fs {
		if f.Required && f.Blank() {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// AnyBlank reports whether any field is blank.
func (fs FieldSet) AnyBlank() bool {
	for _, f := range fs {
		if f.Blank() {
			return true
		}
	}
	return false
}

// Record drops the required markers.
func (fs FieldSet) Record() store.Record {
	r := make(store.Record, 0, len(fs))
	for _, f := range fs {
		r = append(r, store.Entry{Label: f.Label, Value: f.Value})
	}
	return r
}
