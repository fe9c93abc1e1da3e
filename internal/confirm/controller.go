package confirm

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/placecapture/internal/store"
)

// Prompt is the user-facing surface of a session.
type Prompt interface {
	// CollectFields shows every field as editable, with the labels in
	// missing flagged as required but blank. It returns the submitted
	// values keyed by label, or ok=false when the user cancelled.
	CollectFields(ctx context.Context, fields FieldSet, missing []string) (values map[string]string, ok bool, err error)
	// ConfirmYesNo asks a yes/no question.
	ConfirmYesNo(ctx context.Context, title, message string) (bool, error)
}

// Controller runs the confirmation loop for one candidate at a time.
type Controller struct {
	mode   Mode
	prompt Prompt
}

// NewController returns a Controller. mode must be valid.
func NewController(mode Mode, prompt Prompt) *Controller {
	return &Controller{mode: mode, prompt: prompt}
}

// Confirm returns the final record for fields, prompting as the mode
// requires. ok is false when the user cancelled; nothing should be stored
// then. A failing prompt counts as a cancellation.
func (c *Controller) Confirm(ctx context.Context, fields FieldSet) (store.Record, bool) {
	if !c.mode.ShouldPrompt(fields) {
		log.Debug("Stored without confirmation", "mode", c.mode, "name", fields.Value(LabelName))
		return fields.Record(), true
	}

	var missing []string
	current := fields
	for {
		values, ok, err := c.prompt.CollectFields(ctx, current, missing)
		if err != nil {
			log.Error("Confirmation prompt failed", "error", err)
			return nil, false
		}
		if !ok {
			log.Info("Capture cancelled", "name", fields.Value(LabelName))
			return nil, false
		}

		current = current.With(values)
		missing = current.MissingRequired()
		if len(missing) == 0 {
			return current.Record(), true
		}
		log.Debug("Required fields still blank", "missing", missing)
	}
}
