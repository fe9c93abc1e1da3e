// Package session sequences capture cycles: watch the browser until it
// settles on a place, extract and resolve its fields, confirm them with the
// user and store the result.
package session

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/placecapture/internal/browser"
	"github.com/go-scripts/placecapture/internal/confirm"
	"github.com/go-scripts/placecapture/internal/extract"
	"github.com/go-scripts/placecapture/internal/geo"
	"github.com/go-scripts/placecapture/internal/place"
	"github.com/go-scripts/placecapture/internal/progress"
	"github.com/go-scripts/placecapture/internal/queue"
	"github.com/go-scripts/placecapture/internal/store"
	"github.com/go-scripts/placecapture/internal/watch"
)

// Indicator shows that the session is waiting on the browser.
type Indicator interface {
	Start(message string)
	Stop()
}

type noIndicator struct{}

func (noIndicator) Start(string) {}
func (noIndicator) Stop()        {}

// Deps are the collaborators of a session.
type Deps struct {
	Driver   browser.Driver
	Prompt   confirm.Prompt
	Resolver *geo.Resolver
	// Clock defaults to the wall clock.
	Clock watch.Clock
	// Indicator and Progress are optional.
	Indicator Indicator
	Progress  io.Writer
}

// Run validates cfg and runs a session until it ends. cfg.Debug turns on
// debug logging. A closed window or a
// lost connection ends the session normally; the only error returned besides
// an invalid config is *geo.AmbiguousSubdivisionError. The places stored so
// far are returned in every case.
func Run(ctx context.Context, cfg Config, deps Deps) (store.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	return New(cfg, deps).Run(ctx)
}

// Orchestrator owns the watcher and the store for one session.
type Orchestrator struct {
	cfg        Config
	driver     browser.Driver
	prompt     confirm.Prompt
	watcher    *watch.Watcher
	extractor  *extract.Extractor
	resolver   *geo.Resolver
	controller *confirm.Controller
	indicator  Indicator
	progress   io.Writer
	state      *State
}

// New builds an Orchestrator. cfg must be valid.
func New(cfg Config, deps Deps) *Orchestrator {
	if cfg.SearchBox == "" {
		cfg.SearchBox = DefaultSearchBox
	}
	indicator := deps.Indicator
	if indicator == nil {
		indicator = noIndicator{}
	}
	watcher := watch.New(deps.Driver, watch.Config{
		StabilityPeriod: cfg.StabilityPeriod,
		MaxWait:         cfg.MaxWait,
		PollInterval:    cfg.PollInterval,
	}, deps.Clock)

	return &Orchestrator{
		cfg:        cfg,
		driver:     deps.Driver,
		prompt:     deps.Prompt,
		watcher:    watcher,
		extractor:  extract.New(deps.Driver, cfg.Selectors, cfg.FieldTimeout),
		resolver:   deps.Resolver,
		controller: confirm.NewController(cfg.Mode, deps.Prompt),
		indicator:  indicator,
		progress:   deps.Progress,
		state:      NewState(),
	}
}

// State exposes the session state.
func (o *Orchestrator) State() *State {
	return o.state
}

// Run runs the session in batch or interactive mode.
func (o *Orchestrator) Run(ctx context.Context) (store.Result, error) {
	var err error
	if o.cfg.Batch() {
		err = o.runBatch(ctx)
	} else {
		err = o.runInteractive(ctx)
	}
	log.Info("Session finished", "places", o.state.Store.Len())
	return o.state.Store.Result(), err
}

func (o *Orchestrator) runBatch(ctx context.Context) error {
	q := queue.New(o.cfg.SearchTerms...)
	tracker := progress.New(o.progress, q.Len())

	for {
		term, ok := q.Next()
		if !ok {
			return nil
		}
		tracker.Start(term)

		if err := o.driver.SendKeys(ctx, o.cfg.SearchBox, term, true); err != nil {
			if browser.IsSessionGone(err) {
				log.Info("Session ended", "reason", err)
				return nil
			}
			log.Warn("Search failed, skipping term", "term", term, "error", err)
			tracker.Finish()
			continue
		}

		outcome, err := o.capture(ctx)
		if err != nil {
			return err
		}
		tracker.Finish()

		switch outcome {
		case cancelled:
			log.Info("Batch cancelled", "term", term, "skipped", q.Remaining())
			return nil
		case terminated:
			return nil
		}
	}
}

func (o *Orchestrator) runInteractive(ctx context.Context) error {
	for {
		outcome, err := o.capture(ctx)
		if err != nil {
			return err
		}
		if outcome != captured {
			return nil
		}

		again, err := o.prompt.ConfirmYesNo(ctx, "Capture another place?",
			"Answer yes, then navigate to the next place in the browser.")
		if err != nil {
			log.Error("Prompt failed", "error", err)
			return nil
		}
		if !again {
			return nil
		}
	}
}

type cycleOutcome int

const (
	captured cycleOutcome = iota
	cancelled
	terminated
)

// capture runs one capture cycle: it polls until a new place settles, then
// extracts, resolves, confirms and stores it.
func (o *Orchestrator) capture(ctx context.Context) (cycleOutcome, error) {
	o.indicator.Start("Waiting for a place")
	for {
		out := o.watcher.Next(ctx)
		switch out.Kind {
		case watch.WindowClosed, watch.ConnectionLost:
			o.indicator.Stop()
			log.Info("Session ended", "reason", out.Kind)
			return terminated, nil
		case watch.Stable:
		}

		location := place.Normalize(out.Location)
		if location == o.state.LastLocation {
			continue
		}

		candidate, err := place.Parse(location)
		if errors.Is(err, place.ErrPartialName) {
			log.Debug("Place still loading", "location", location)
			continue
		}
		o.state.LastLocation = location
		if err != nil {
			continue
		}

		o.indicator.Stop()
		log.Info("Found place", "name", candidate.Name, "latitude", candidate.Latitude, "longitude", candidate.Longitude)

		o.indicator.Start("Reading " + candidate.Name)
		o.extractor.Extract(ctx, &candidate)
		locality, err := o.resolver.Resolve(ctx, candidate)
		o.indicator.Stop()
		if err != nil {
			return terminated, err
		}
		candidate.Apply(locality)

		fields := confirm.Build(candidate, o.cfg.AdditionalRequired, o.cfg.AdditionalOptional)
		record, ok := o.controller.Confirm(ctx, fields)
		if !ok {
			return cancelled, nil
		}

		lat, _ := record.Get(confirm.LabelLatitude)
		lon, _ := record.Get(confirm.LabelLongitude)
		key := store.Key{Latitude: lat, Longitude: lon}
		o.state.Store.Put(key, record)
		log.Info("Stored place", "key", key.String(), "places", o.state.Store.Len())
		return captured, nil
	}
}
