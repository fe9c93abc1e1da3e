package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-scripts/placecapture/internal/confirm"
	"github.com/go-scripts/placecapture/internal/store"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func sampleFields() confirm.FieldSet {
	return confirm.FieldSet{
		{Label: "name", Value: "Cafe", Required: true},
		{Label: "city", Required: true},
		{Label: "notes"},
	}
}

func TestFieldFormEditAndSubmit(t *testing.T) {
	f := NewFieldForm(sampleFields(), []string{"city"})

	_, cmd := f.Update(key("tab"))
	assert.False(t, isQuit(t, cmd))
	f.Update(key("Ogden"))
	_, cmd = f.Update(key("enter"))
	assert.False(t, isQuit(t, cmd), "enter before the last field moves on")
	f.Update(key("quiet"))
	_, cmd = f.Update(key("enter"))

	assert.True(t, isQuit(t, cmd))
	assert.True(t, f.Submitted())
	assert.Equal(t, map[string]string{"name": "Cafe", "city": "Ogden", "notes": "quiet"}, f.Values())
}

func TestFieldFormKeepsValuesAsTyped(t *testing.T) {
	f := NewFieldForm(sampleFields(), nil)
	f.Update(key("tab"))
	f.Update(key("  Ogden "))
	f.Update(key("ctrl+s"))

	assert.Equal(t, "  Ogden ", f.Values()["city"])
}

func TestFieldFormCancel(t *testing.T) {
	f := NewFieldForm(sampleFields(), nil)
	_, cmd := f.Update(key("esc"))

	assert.True(t, isQuit(t, cmd))
	assert.False(t, f.Submitted())
}

func TestFieldFormFocusWraps(t *testing.T) {
	f := NewFieldForm(sampleFields(), nil)
	f.Update(key("shift+tab"))
	f.Update(key("x"))
	_, cmd := f.Update(key("ctrl+s"))

	assert.True(t, isQuit(t, cmd))
	assert.Equal(t, "x", f.Values()["notes"])
}

func TestFieldFormView(t *testing.T) {
	view := NewFieldForm(sampleFields(), []string{"city"}).View()

	assert.Contains(t, view, "name*")
	assert.Contains(t, view, "city*")
	assert.Contains(t, view, "notes")
	assert.NotContains(t, view, "notes*")
	assert.Contains(t, view, "Required: city")
}

func TestYesNo(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want bool
	}{
		{name: "y", keys: []string{"y"}, want: true},
		{name: "n", keys: []string{"n"}, want: false},
		{name: "enter keeps default yes", keys: []string{"enter"}, want: true},
		{name: "toggle then enter", keys: []string{"tab", "enter"}, want: false},
		{name: "escape", keys: []string{"esc"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewYesNo("Capture another place?", "")
			var cmd tea.Cmd
			for _, k := range tt.keys {
				_, cmd = m.Update(key(k))
			}
			assert.True(t, isQuit(t, cmd))
			assert.Equal(t, tt.want, m.Answer())
		})
	}
}

func TestTerminalConfirmYesNo(t *testing.T) {
	term := NewTerminal(tea.WithInput(strings.NewReader("y")), tea.WithOutput(io.Discard))

	yes, err := term.ConfirmYesNo(context.Background(), "Capture another place?", "")
	require.NoError(t, err)
	assert.True(t, yes)
}

func TestSummary(t *testing.T) {
	res := store.Result{
		{Latitude: "40.8517", Longitude: "-74.8283"}: {
			{Label: "name", Value: "Hackettstown Park"},
			{Label: "city", Value: "Hackettstown"},
			{Label: "country", Value: "United States"},
		},
		{Latitude: "1.1", Longitude: "2.2"}: {
			{Label: "name", Value: "Cafe"},
			{Label: "city", Value: ""},
			{Label: "country", Value: "Mexico"},
		},
	}

	out := NewSummary(120).Render(res)
	assert.Contains(t, out, "Hackettstown Park")
	assert.Contains(t, out, "-74.8283")
	assert.Contains(t, out, "Places: 2 | With blank fields: 1")
	assert.Less(t, strings.Index(out, "Cafe"), strings.Index(out, "Hackettstown Park"))

	assert.Contains(t, NewSummary(80).Render(nil), "No places captured")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "ab", truncate("abcdefgh", 2))
}

func TestSpinnerStartStop(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinner(&buf)
	sp.Start("Waiting for a place")
	sp.Stop()
}
