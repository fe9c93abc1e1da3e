package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/go-scripts/placecapture/internal/store"
)

// JSON writes session results as an indented JSON object keyed by "lat,lon".
type JSON struct {
	out io.Writer
}

// New creates a JSON writer.
func New(out io.Writer) *JSON {
	return &JSON{out: out}
}

// WriteResult encodes res with keys in sorted order.
func (w *JSON) WriteResult(res store.Result) error {
	keys := make([]store.Key, 0, len(res))
	for k := range res {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	// encoding/json sorts map keys, so build the object by hand to keep
	// insertion order of each record's labels.
	ordered := make([]json.RawMessage, 0, len(keys))
	for _, k := range keys {
		name, err := json.Marshal(k.String())
		if err != nil {
			return fmt.Errorf("failed to encode key: %w", err)
		}
		record, err := json.Marshal(res[k])
		if err != nil {
			return fmt.Errorf("failed to encode record %s: %w", k, err)
		}
		ordered = append(ordered, append(append(name, ':'), record...))
	}

	raw := []byte{'{'}
	for i, entry := range ordered {
		if i > 0 {
			raw = append(raw, ',')
		}
		raw = append(raw, entry...)
	}
	raw = append(raw, '}')

	var indented json.RawMessage = raw
	data, err := json.MarshalIndent(indented, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if _, err := w.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
