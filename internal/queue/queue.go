package queue

import (
	"strings"
	"sync"
)

// Queue is a FIFO of batch search terms.
type Queue struct {
	terms []string
	done  int
	mu    sync.Mutex
}

// New creates a Queue holding terms in order. Blank terms are dropped.
func New(terms ...string) *Queue {
	q := &Queue{terms: make([]string, 0, len(terms))}
	for _, t := range terms {
		q.Add(t)
	}
	return q
}

// Add appends a term and reports whether it was accepted.
func (q *Queue) Add(term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.terms = append(q.terms, term)
	return true
}

// Next returns the next term to search for.
func (q *Queue) Next() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.terms) == 0 {
		return "", false
	}

	term := q.terms[0]
	q.terms = q.terms[1:]
	q.done++

	return term, true
}

// Len returns the number of terms not yet taken.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.terms)
}

// Taken returns the number of terms handed out by Next.
func (q *Queue) Taken() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.done
}

// Remaining returns the terms not yet taken.
func (q *Queue) Remaining() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.terms...)
}
