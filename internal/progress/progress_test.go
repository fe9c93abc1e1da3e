package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, 4)

	p.Start("Eiffel Tower")
	assert.Contains(t, out.String(), `1/4 searching "Eiffel Tower"`)

	p.Finish()
	assert.Equal(t, 0.25, p.Progress())
	assert.Equal(t, 1, p.Processed())
	assert.Contains(t, out.String(), "1/4\n")
}

func TestTrackerWithoutOutput(t *testing.T) {
	p := New(nil, 0)
	p.Start("x")
	p.Finish()

	assert.Zero(t, p.Progress())
	assert.Equal(t, 1, p.Processed())
}
