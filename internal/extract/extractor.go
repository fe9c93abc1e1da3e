// Package extract reads the descriptive fields of a place page. Every field
// is best effort: a lookup that times out leaves that field empty and the
// others are still attempted.
package extract

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/placecapture/internal/browser"
	"github.com/go-scripts/placecapture/internal/types"
)

// DefaultTimeout is how long each field lookup waits for its element.
const DefaultTimeout = 10 * time.Second

// Selectors are the XPath expressions used to find each field.
type Selectors struct {
	Address  string `json:"address"`
	Rating   string `json:"rating"`
	Reviews  string `json:"reviews"`
	Category string `json:"category"`
	PlusCode string `json:"plus_code"`
}

// DefaultSelectors match the Google Maps place panel.
func DefaultSelectors() Selectors {
	return Selectors{
		Address:  `//button[@data-tooltip='Copy address']`,
		Rating:   `//span[@role='img' and contains(@aria-label, 'star')]`,
		Reviews:  `//span[@role='img' and contains(@aria-label, 'review')]`,
		Category: `//button[contains(@jsaction, 'category')]`,
		PlusCode: `//button[@data-tooltip='Copy plus code']`,
	}
}

// merge fills empty selectors from defaults.
func (s Selectors) merge(defaults Selectors) Selectors {
	if s.Address == "" {
		s.Address = defaults.Address
	}
	if s.Rating == "" {
		s.Rating = defaults.Rating
	}
	if s.Reviews == "" {
		s.Reviews = defaults.Reviews
	}
	if s.Category == "" {
		s.Category = defaults.Category
	}
	if s.PlusCode == "" {
		s.PlusCode = defaults.PlusCode
	}
	return s
}

// Extractor pulls fields for a candidate from the current page.
type Extractor struct {
	driver    browser.Driver
	selectors Selectors
	timeout   time.Duration
}

// New returns an Extractor. Zero selectors fall back to DefaultSelectors and
// a non-positive timeout to DefaultTimeout.
func New(driver browser.Driver, selectors Selectors, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{
		driver:    driver,
		selectors: selectors.merge(DefaultSelectors()),
		timeout:   timeout,
	}
}

// Extract fills the descriptive fields of c. It never fails; missing fields
// stay empty.
func (e *Extractor) Extract(ctx context.Context, c *types.Candidate) {
	c.Address = strings.TrimSpace(strings.TrimPrefix(e.label(ctx, "address", e.selectors.Address), "Address:"))
	c.Rating = firstToken(e.label(ctx, "rating", e.selectors.Rating))
	c.Reviews = strings.ReplaceAll(firstToken(e.label(ctx, "reviews", e.selectors.Reviews)), ",", "")
	c.Category = e.text(ctx, "category", e.selectors.Category)
	c.PlusCode = strings.TrimSpace(strings.TrimPrefix(e.label(ctx, "plus code", e.selectors.PlusCode), "Plus code:"))

	log.Debug("Extracted fields",
		"name", c.Name,
		"address", c.Address,
		"rating", c.Rating,
		"reviews", c.Reviews,
		"category", c.Category,
		"plus_code", c.PlusCode)
}

func (e *Extractor) label(ctx context.Context, field, selector string) string {
	el, err := e.driver.FindElement(ctx, selector, e.timeout)
	if err != nil {
		log.Debug("Field lookup missed", "field", field, "error", err)
		return ""
	}
	return strings.TrimSpace(el.Attribute("aria-label"))
}

func (e *Extractor) text(ctx context.Context, field, selector string) string {
	el, err := e.driver.FindElement(ctx, selector, e.timeout)
	if err != nil {
		log.Debug("Field lookup missed", "field", field, "error", err)
		return ""
	}
	text, err := el.Text(ctx)
	if err != nil {
		log.Debug("Field text unavailable", "field", field, "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
