package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/go-scripts/placecapture/internal/browser"
	"github.com/go-scripts/placecapture/internal/confirm"
	"github.com/go-scripts/placecapture/internal/extract"
	"github.com/go-scripts/placecapture/internal/geo"
	"github.com/go-scripts/placecapture/internal/session"
	"github.com/go-scripts/placecapture/internal/store"
	"github.com/go-scripts/placecapture/internal/writer"
	"github.com/go-scripts/placecapture/ui"
)

// CLIFlags are the command line flags. Any of them can also be set in the
// JSON file named by --config.
type CLIFlags struct {
	Config kong.ConfigFlag `help:"JSON file with flag defaults."`

	Terms    []string `arg:"" optional:"" help:"Search terms to capture one after another. Without terms the session is interactive."`
	Required []string `help:"Extra field labels that must be filled in." sep:","`
	Optional []string `help:"Extra field labels that may be left blank." sep:","`
	Mode     string   `help:"When to show the confirmation form (${enum})." enum:"always,on_missing,on_required_missing" default:"on_required_missing"`
	Debug    bool     `help:"Enable debug logging." default:"false"`

	StartURL  string `help:"Page opened when the browser starts." default:"https://www.google.com/maps" short:"u"`
	Headless  bool   `help:"Run Chrome without a window." default:"false"`
	UserAgent string `help:"User agent sent to the reverse geocoder." default:"placecapture/1.0"`

	Stability    time.Duration `help:"How long the location must stay unchanged." default:"1s"`
	MaxWait      time.Duration `help:"Upper bound on waiting for the location to settle." default:"5s"`
	PollInterval time.Duration `help:"Delay between location polls." default:"250ms"`
	FieldTimeout time.Duration `help:"How long to wait for each page field." default:"10s"`

	GeocoderURL    string `help:"Nominatim endpoint used for reverse geocoding." default:"${geocoder_url}"`
	Offline        bool   `help:"Skip reverse geocoding and parse the plus code instead."`
	DefaultCountry string `help:"ISO country code whose subdivisions are tried first by the plus code parser." default:"US"`

	Selectors SelectorFlags `embed:"" prefix:"selector-" group:"Selectors"`
}

// SelectorFlags override the XPaths used to read place details.
type SelectorFlags struct {
	Address  string `help:"XPath of the address element."`
	Rating   string `help:"XPath of the rating element."`
	Reviews  string `help:"XPath of the review count element."`
	Category string `help:"XPath of the category element."`
	PlusCode string `help:"XPath of the plus code element."`
	Search   string `help:"XPath of the search box." default:"${search_box}"`
}

func vars() kong.Vars {
	return kong.Vars{
		"geocoder_url": geo.DefaultNominatimURL,
		"search_box":   session.DefaultSearchBox,
	}
}

// sessionConfig maps the flags onto a session config.
func (f CLIFlags) sessionConfig() (session.Config, error) {
	mode, err := confirm.ParseMode(f.Mode)
	if err != nil {
		return session.Config{}, err
	}
	cfg := session.Config{
		AdditionalRequired: f.Required,
		AdditionalOptional: f.Optional,
		SearchTerms:        f.Terms,
		Mode:               mode,
		Debug:              f.Debug,
		StabilityPeriod:    f.Stability,
		MaxWait:            f.MaxWait,
		PollInterval:       f.PollInterval,
		FieldTimeout:       f.FieldTimeout,
		Selectors: extract.Selectors{
			Address:  f.Selectors.Address,
			Rating:   f.Selectors.Rating,
			Reviews:  f.Selectors.Reviews,
			Category: f.Selectors.Category,
			PlusCode: f.Selectors.PlusCode,
		},
		SearchBox: f.Selectors.Search,
	}
	return cfg, cfg.Validate()
}

// resolver returns the geography resolver the flags ask for.
func (f CLIFlags) resolver() *geo.Resolver {
	var reverse geo.ReverseGeocoder
	if !f.Offline {
		reverse = geo.NewNominatim(f.GeocoderURL, f.UserAgent)
	}
	return geo.NewResolver(reverse, geo.NewCountries(), f.DefaultCountry)
}

// newPrompt returns the terminal prompt. Dialogs are drawn on out so that
// stdout carries only the JSON results. A nil in reads the terminal.
func newPrompt(in io.Reader, out io.Writer) *ui.Terminal {
	opts := []tea.ProgramOption{tea.WithOutput(out)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	return ui.NewTerminal(opts...)
}

// writeResults prints the summary on stderr and the JSON results on stdout.
func writeResults(res store.Result, stdout, stderr io.Writer) error {
	fmt.Fprintln(stderr, ui.NewSummary(100).Render(res))
	if err := writer.New(stdout).WriteResult(res); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

func run(ctx context.Context, flags CLIFlags, stdout, stderr io.Writer) error {
	cfg, err := flags.sessionConfig()
	if err != nil {
		return err
	}

	chrome, err := browser.Launch(ctx, browser.Options{
		StartURL: flags.StartURL,
		Headless: flags.Headless,
		Width:    1280,
		Height:   900,
		Timeout:  flags.FieldTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer chrome.Close()

	log.Info("Browser ready", "url", flags.StartURL, "terms", len(cfg.SearchTerms), "mode", cfg.Mode)

	res, runErr := session.Run(ctx, cfg, session.Deps{
		Driver:    chrome,
		Prompt:    newPrompt(nil, stderr),
		Resolver:  flags.resolver(),
		Indicator: ui.NewSpinner(stderr),
		Progress:  stderr,
	})

	if err := writeResults(res, stdout, stderr); err != nil {
		return err
	}

	var ambiguous *geo.AmbiguousSubdivisionError
	if errors.As(runErr, &ambiguous) {
		return fmt.Errorf("reference data is inconsistent: %w", runErr)
	}
	return runErr
}

func main() {
	var flags CLIFlags

	kong.Parse(&flags,
		kong.Name("placecapture"),
		kong.Description("Capture place details from Google Maps into a JSON map keyed by coordinates."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON),
		vars(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flags, os.Stdout, os.Stderr); err != nil {
		log.Error("Session failed", "error", err)
		stop()
		os.Exit(1)
	}
}
