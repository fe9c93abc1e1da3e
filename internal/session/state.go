package session

import "github.com/go-scripts/placecapture/internal/store"

// State is the mutable state a session threads through its capture cycles.
type State struct {
	// LastLocation is the last normalized location that was handled. A
	// stable location equal to it is not a new navigation event.
	LastLocation string
	Store        *store.Store
}

// NewState returns an empty State.
func NewState() *State {
	return &State{Store: store.New()}
}
