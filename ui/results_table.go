package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-scripts/placecapture/internal/confirm"
	"github.com/go-scripts/placecapture/internal/store"
)

// Summary renders the places captured in a session as a table.
type Summary struct {
	width       int
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
	style       lipgloss.Style
}

func NewSummary(width int) *Summary {
	return &Summary{
		width: width,
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		cellStyle: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1),
		style: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("35")),
	}
}

// Render returns the table for res, ordered by coordinate key.
func (t *Summary) Render(res store.Result) string {
	if len(res) == 0 {
		return t.style.Render(infoStyle.Render("No places captured"))
	}

	nameWidth := min(40, max(12, t.width/3))
	placeWidth := min(24, max(8, t.width/6))

	header := t.headerStyle.Render(fmt.Sprintf(
		"%-*s %11s %12s %-*s %-*s",
		nameWidth, "Name",
		"Latitude",
		"Longitude",
		placeWidth, "City",
		placeWidth, "Country",
	))

	keys := make([]store.Key, 0, len(res))
	for k := range res {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	var rows []string
	incomplete := 0
	for _, k := range keys {
		rec := res[k]
		name, _ := rec.Get(confirm.LabelName)
		city, _ := rec.Get(confirm.LabelCity)
		country, _ := rec.Get(confirm.LabelCountry)

		row := t.cellStyle.Render(fmt.Sprintf(
			"%-*s %11s %12s %-*s %-*s",
			nameWidth, truncate(name, nameWidth),
			k.Latitude,
			k.Longitude,
			placeWidth, truncate(city, placeWidth),
			placeWidth, truncate(country, placeWidth),
		))
		if hasBlank(rec) {
			row = warningStyle.Render(row)
			incomplete++
		}
		rows = append(rows, row)
	}

	stats := fmt.Sprintf("Places: %d | With blank fields: %d", len(res), incomplete)
	return t.style.Render(header + "\n" + strings.Join(rows, "\n") + "\n\n" + infoStyle.Render(stats))
}

func hasBlank(rec store.Record) bool {
	for _, e := range rec {
		if strings.TrimSpace(e.Value) == "" {
			return true
		}
	}
	return false
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-3] + "..."
}
