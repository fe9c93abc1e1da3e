package ui

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows a wait indicator while the session polls the browser.
type Spinner struct {
	s *spinner.Spinner
}

func NewSpinner(out io.Writer) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	return &Spinner{s: s}
}

func (sp *Spinner) Start(message string) {
	sp.s.Lock()
	sp.s.Suffix = " " + message
	sp.s.Unlock()
	sp.s.Start()
}

func (sp *Spinner) Stop() {
	sp.s.Stop()
}
