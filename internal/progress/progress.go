package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

// Tracker renders batch progress as "term i/n".
type Tracker struct {
	bar       progress.Model
	out       io.Writer
	total     int
	processed int
	mu        sync.Mutex
}

// New creates a Tracker that writes to out. A nil out disables rendering.
func New(out io.Writer, total int) *Tracker {
	return &Tracker{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		out:   out,
		total: total,
	}
}

// Start announces the term about to be searched.
func (p *Tracker) Start(term string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out == nil {
		return
	}
	fmt.Fprintf(p.out, "\r%s %d/%d searching %q\n", p.bar.ViewAs(p.ratio()), p.processed+1, p.total, term)
}

// Finish marks the current term as done.
func (p *Tracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed++
	if p.out == nil {
		return
	}
	fmt.Fprintf(p.out, "\r%s %d/%d\n", p.bar.ViewAs(p.ratio()), p.processed, p.total)
}

// Progress returns the completed fraction.
func (p *Tracker) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ratio()
}

// Processed returns the number of finished terms.
func (p *Tracker) Processed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed
}

func (p *Tracker) ratio() float64 {
	if p.total == 0 {
		return 0
	}
	return float64(p.processed) / float64(p.total)
}
