package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-scripts/placecapture/internal/confirm"
	"github.com/go-scripts/placecapture/internal/extract"
)

// DefaultSearchBox is the XPath of the Google Maps search input.
const DefaultSearchBox = `//input[@id='searchboxinput']`

// Config describes one capture session.
type Config struct {
	// AdditionalRequired and AdditionalOptional are extra labels the user
	// fills in for every place.
	AdditionalRequired []string
	AdditionalOptional []string
	// SearchTerms switches the session to batch mode.
	SearchTerms []string
	Mode        confirm.Mode
	// Debug switches the package logger to debug level for the session.
	Debug       bool

	StabilityPeriod time.Duration
	MaxWait         time.Duration
	PollInterval    time.Duration
	FieldTimeout    time.Duration
	Selectors       extract.Selectors
	SearchBox       string
}

// Validate checks the config.
func (c Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("invalid confirmation mode %q, expected one of %v", c.Mode, confirm.Modes)
	}
	if c.StabilityPeriod < 0 || c.MaxWait < 0 || c.PollInterval < 0 || c.FieldTimeout < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

// Batch reports whether the session runs search terms.
func (c Config) Batch() bool {
	return len(c.SearchTerms) > 0
}
