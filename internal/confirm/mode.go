package confirm

import "fmt"

// Mode decides when the confirmation prompt is shown.
type Mode string

const (
	// Always prompts for every candidate.
	Always Mode = "always"
	// OnMissing prompts when any field is blank.
	OnMissing Mode = "on_missing"
	// OnRequiredMissing prompts when a required field is blank.
	OnRequiredMissing Mode = "on_required_missing"
)

// Modes lists the valid modes.
var Modes = []Mode{Always, OnMissing, OnRequiredMissing}

// ParseMode validates s.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("invalid confirmation mode %q, expected one of %v", s, Modes)
	}
	return m, nil
}

// Valid reports whether m is one of Modes.
func (m Mode) Valid() bool {
	switch m {
	case Always, OnMissing, OnRequiredMissing:
		return true
	}
	return false
}

// ShouldPrompt reports whether fs needs to be shown to the user.
func (m Mode) ShouldPrompt(fs FieldSet) bool {
	switch m {
	case OnMissing:
		return fs.AnyBlank()
	case OnRequiredMissing:
		return len(fs.MissingRequired()) > 0
	default:
		return true
	}
}
