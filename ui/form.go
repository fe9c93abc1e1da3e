package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-scripts/placecapture/internal/confirm"
)

// FieldForm is an editable form over a FieldSet. Required labels carry a
// trailing asterisk.
type FieldForm struct {
	fields    confirm.FieldSet
	missing   []string
	inputs    []textinput.Model
	focus     int
	submitted bool
	cancelled bool
	labelW    int
}

// NewFieldForm returns a form showing fields, with missing listed as
// required fields that are still blank.
func NewFieldForm(fields confirm.FieldSet, missing []string) *FieldForm {
	f := &FieldForm{
		fields:  fields,
		missing: missing,
		inputs:  make([]textinput.Model, len(fields)),
	}
	for i, field := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = field.Label
		in.SetValue(field.Value)
		f.inputs[i] = in
		f.labelW = max(f.labelW, len(label(field)))
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func label(f confirm.Field) string {
	if f.Required {
		return f.Label + "*"
	}
	return f.Label
}

func (f *FieldForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *FieldForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			f.cancelled = true
			return f, tea.Quit
		case "ctrl+s":
			f.submitted = true
			return f, tea.Quit
		case "enter":
			if f.focus == len(f.inputs)-1 {
				f.submitted = true
				return f, tea.Quit
			}
			return f, f.move(1)
		case "tab", "down":
			return f, f.move(1)
		case "shift+tab", "up":
			return f, f.move(-1)
		}
	}

	if len(f.inputs) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *FieldForm) move(delta int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *FieldForm) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Confirm place"))
	b.WriteString("\n\n")
	for i, field := range f.fields {
		name := fmt.Sprintf("%-*s", f.labelW, label(field))
		if i == f.focus {
			name = selectedStyle.Render(name)
		}
		b.WriteString(name + "  " + f.inputs[i].View() + "\n")
	}
	if len(f.missing) > 0 {
		b.WriteString("\n" + errorStyle.Render("Required: "+strings.Join(f.missing, ", ")) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab/↑/↓ move • enter on the last field or ctrl+s submits • esc cancels"))
	return borderStyle.Render(b.String()) + "\n"
}

// Values returns the input values keyed by label, exactly as typed.
func (f *FieldForm) Values() map[string]string {
	values := make(map[string]string, len(f.fields))
	for i, field := range f.fields {
		values[field.Label] = f.inputs[i].Value()
	}
	return values
}

// Submitted reports whether the user submitted the form.
func (f *FieldForm) Submitted() bool {
	return f.submitted && !f.cancelled
}
