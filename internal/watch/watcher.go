// Package watch turns the browser's constantly changing location into
// settled navigation events.
package watch

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/placecapture/internal/browser"
)

// Kind tags an Outcome.
type Kind int

const (
	// Stable carries a settled location.
	Stable Kind = iota
	// WindowClosed means the browser window or session is gone.
	WindowClosed
	// ConnectionLost means polling failed and the session cannot continue.
	ConnectionLost
)

func (k Kind) String() string {
	switch k {
	case Stable:
		return "stable"
	case WindowClosed:
		return "window closed"
	case ConnectionLost:
		return "connection lost"
	default:
		return "unknown"
	}
}

// Outcome is the result of one Watcher.Next call. Location is only set
// for Stable.
type Outcome struct {
	Kind     Kind
	Location string
}

// Defaults used when a Config field is zero.
const (
	DefaultStabilityPeriod = time.Second
	DefaultMaxWait         = 5 * time.Second
	DefaultPollInterval    = 250 * time.Millisecond
)

// Config tunes a Watcher.
type Config struct {
	StabilityPeriod time.Duration
	MaxWait         time.Duration
	PollInterval    time.Duration
}

// Watcher polls a Driver until its location settles.
type Watcher struct {
	driver   browser.Driver
	clock    Clock
	interval time.Duration
	debounce *Debouncer
}

// New returns a Watcher over driver. A nil clock uses the wall clock.
func New(driver browser.Driver, cfg Config, clock Clock) *Watcher {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.StabilityPeriod <= 0 {
		cfg.StabilityPeriod = DefaultStabilityPeriod
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = DefaultMaxWait
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return &Watcher{
		driver:   driver,
		clock:    clock,
		interval: cfg.PollInterval,
		debounce: NewDebouncer(cfg.StabilityPeriod, cfg.MaxWait, clock),
	}
}

// Next polls until the location is stable or the session ends. Poll
// failures are never retried.
func (w *Watcher) Next(ctx context.Context) Outcome {
	w.debounce.Reset()
	for {
		location, err := w.driver.CurrentLocation(ctx)
		switch {
		case err == nil && location == "":
			log.Debug("Browser reported an empty location")
			return Outcome{Kind: WindowClosed}
		case errors.Is(err, browser.ErrWindowClosed) || ctx.Err() != nil:
			log.Debug("Stopped watching", "error", err)
			return Outcome{Kind: WindowClosed}
		case err != nil:
			log.Debug("Location poll failed", "error", err)
			return Outcome{Kind: ConnectionLost}
		}

		if obs := w.debounce.Observe(location); obs.Stable {
			return Outcome{Kind: Stable, Location: obs.Value}
		}

		if err := w.clock.Sleep(ctx, w.interval); err != nil {
			return Outcome{Kind: WindowClosed}
		}
	}
}
