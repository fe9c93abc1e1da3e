package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-scripts/placecapture/internal/confirm"
)

// Terminal prompts through short-lived Bubble Tea programs.
type Terminal struct {
	opts []tea.ProgramOption
}

var _ confirm.Prompt = (*Terminal)(nil)

// NewTerminal returns a Terminal. opts are passed to every program.
func NewTerminal(opts ...tea.ProgramOption) *Terminal {
	return &Terminal{opts: opts}
}

func (t *Terminal) CollectFields(ctx context.Context, fields confirm.FieldSet, missing []string) (map[string]string, bool, error) {
	final, err := t.run(ctx, NewFieldForm(fields, missing))
	if err != nil {
		return nil, false, fmt.Errorf("field form: %w", err)
	}
	form := final.(*FieldForm)
	if !form.Submitted() {
		return nil, false, nil
	}
	return form.Values(), true, nil
}

func (t *Terminal) ConfirmYesNo(ctx context.Context, title, message string) (bool, error) {
	final, err := t.run(ctx, NewYesNo(title, message))
	if err != nil {
		return false, fmt.Errorf("yes/no prompt: %w", err)
	}
	return final.(*YesNo).Answer(), nil
}

func (t *Terminal) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.opts...)
	return tea.NewProgram(m, opts...).Run()
}
