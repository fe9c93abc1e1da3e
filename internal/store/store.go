// Package store holds the places confirmed during a session.
package store

import (
	"bytes"
	"encoding/json"
)

// Key identifies a place by its coordinate text.
type Key struct {
	Latitude  string
	Longitude string
}

// String formats the key as "lat,lon".
func (k Key) String() string {
	return k.Latitude + "," + k.Longitude
}

// Entry is one labelled value of a Record.
type Entry struct {
	Label string
	Value string
}

// Record is an ordered label to value mapping.
type Record []Entry

// Get returns the value for label.
func (r Record) Get(label string) (string, bool) {
	for _, e := range r {
		if e.Label == label {
			return e.Value, true
		}
	}
	return "", false
}

// Map returns the record as an unordered map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, e := range r {
		m[e.Label] = e.Value
	}
	return m
}

// MarshalJSON encodes the record as an object, keeping label order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(e.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the outcome of a session.
type Result map[Key]Record

// Store is a last-write-wins map of confirmed places. It has a single
// writer and is not safe for concurrent use.
type Store struct {
	records Result
	order   []Key
}

// New returns an empty Store.
func New() *Store {
	return &Store{records: make(Result)}
}

// Put stores r under k, replacing any earlier record.
func (s *Store) Put(k Key, r Record) {
	if _, ok := s.records[k]; !ok {
		s.order = append(s.order, k)
	}
	s.records[k] = r
}

// Get returns the record stored under k.
func (s *Store) Get(k Key) (Record, bool) {
	r, ok := s.records[k]
	return r, ok
}

// Len returns the number of stored places.
func (s *Store) Len() int {
	return len(s.records)
}

// Keys returns the keys in first-insertion order.
func (s *Store) Keys() []Key {
	return append([]Key(nil), s.order...)
}

// Result returns a copy of the stored places.
func (s *Store) Result() Result {
	out := make(Result, len(s.records))
	for k, r := range s.records {
		out[k] = r
	}
	return out
}
