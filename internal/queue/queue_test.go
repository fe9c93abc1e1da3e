package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueOrder(t *testing.T) {
	q := New("Eiffel Tower", "  ", "Statue of Liberty", "Eiffel Tower")

	assert.Equal(t, 3, q.Len())

	var got []string
	for {
		term, ok := q.Next()
		if !ok {
			break
		}
		got = append(got, term)
	}

	assert.Equal(t, []string{"Eiffel Tower", "Statue of Liberty", "Eiffel Tower"}, got)
	assert.Equal(t, 3, q.Taken())
	assert.Zero(t, q.Len())
}

func TestQueueRemaining(t *testing.T) {
	q := New("a", "b", "c")
	q.Next()

	assert.Equal(t, []string{"b", "c"}, q.Remaining())
	assert.False(t, q.Add(""))
	assert.True(t, q.Add(" d "))
	assert.Equal(t, []string{"b", "c", "d"}, q.Remaining())
}
