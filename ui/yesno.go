package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// YesNo asks a single question. Escape counts as no.
type YesNo struct {
	title    string
	message  string
	yes      bool
	answered bool
}

func NewYesNo(title, message string) *YesNo {
	return &YesNo{title: title, message: message, yes: true}
}

func (m *YesNo) Init() tea.Cmd {
	return nil
}

func (m *YesNo) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "y":
		m.yes, m.answered = true, true
		return m, tea.Quit
	case "n", "esc", "ctrl+c":
		m.yes, m.answered = false, true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.yes = !m.yes
	case "enter":
		m.answered = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *YesNo) View() string {
	yes, no := "Yes", "No"
	if m.yes {
		yes = selectedStyle.Render(yes)
	} else {
		no = selectedStyle.Render(no)
	}
	body := titleStyle.Render(m.title) + "\n"
	if m.message != "" {
		body += infoStyle.Render(m.message) + "\n"
	}
	body += "\n" + yes + "   " + no + "\n\n" + helpStyle.Render("y/n • ←/→ choose • enter confirms")
	return borderStyle.Render(body) + "\n"
}

// Answer reports the choice. It is false unless the user answered yes.
func (m *YesNo) Answer() bool {
	return m.answered && m.yes
}
