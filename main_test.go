package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-scripts/placecapture/internal/confirm"
	"github.com/go-scripts/placecapture/internal/geo"
	"github.com/go-scripts/placecapture/internal/session"
	"github.com/go-scripts/placecapture/internal/store"
)

func parse(t *testing.T, args ...string) CLIFlags {
	t.Helper()
	var flags CLIFlags
	parser, err := kong.New(&flags,
		kong.Name("placecapture"),
		kong.Configuration(kong.JSON),
		vars(),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return flags
}

func TestDefaults(t *testing.T) {
	flags := parse(t)

	cfg, err := flags.sessionConfig()
	require.NoError(t, err)

	assert.False(t, cfg.Batch())
	assert.Equal(t, confirm.OnRequiredMissing, cfg.Mode)
	assert.Equal(t, time.Second, cfg.StabilityPeriod)
	assert.Equal(t, 5*time.Second, cfg.MaxWait)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.FieldTimeout)
	assert.Equal(t, session.DefaultSearchBox, cfg.SearchBox)
	assert.Equal(t, geo.DefaultNominatimURL, flags.GeocoderURL)
	assert.Equal(t, "US", flags.DefaultCountry)
}

func TestFlagsMapOntoSessionConfig(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg session.Config)
	}{
		{
			name: "batch terms",
			args: []string{"blue bottle oakland", "philz coffee"},
			check: func(t *testing.T, cfg session.Config) {
				assert.True(t, cfg.Batch())
				assert.Equal(t, []string{"blue bottle oakland", "philz coffee"}, cfg.SearchTerms)
			},
		},
		{
			name: "extra labels",
			args: []string{"--required", "owner,phone", "--optional", "notes"},
			check: func(t *testing.T, cfg session.Config) {
				assert.Equal(t, []string{"owner", "phone"}, cfg.AdditionalRequired)
				assert.Equal(t, []string{"notes"}, cfg.AdditionalOptional)
			},
		},
		{
			name: "mode and timings",
			args: []string{"--mode", "always", "--stability", "2s", "--max-wait", "8s", "--field-timeout", "3s"},
			check: func(t *testing.T, cfg session.Config) {
				assert.Equal(t, confirm.Always, cfg.Mode)
				assert.Equal(t, 2*time.Second, cfg.StabilityPeriod)
				assert.Equal(t, 8*time.Second, cfg.MaxWait)
				assert.Equal(t, 3*time.Second, cfg.FieldTimeout)
			},
		},
		{
			name: "selector overrides",
			args: []string{"--selector-address", "//div[@id='addr']", "--selector-search", "//input[@name='q']"},
			check: func(t *testing.T, cfg session.Config) {
				assert.Equal(t, "//div[@id='addr']", cfg.Selectors.Address)
				assert.Empty(t, cfg.Selectors.Rating)
				assert.Equal(t, "//input[@name='q']", cfg.SearchBox)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse(t, tt.args...).sessionConfig()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestInvalidModeRejected(t *testing.T) {
	var flags CLIFlags
	parser, err := kong.New(&flags, vars(), kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--mode", "sometimes"})
	assert.Error(t, err)

	flags.Mode = "sometimes"
	_, err = flags.sessionConfig()
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placecapture.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mode": "on_missing", "offline": true}`), 0o644))

	flags := parse(t, "--config", path)
	assert.Equal(t, "on_missing", flags.Mode)
	assert.True(t, flags.Offline)

	flags = parse(t, "--config", path, "--mode", "always")
	assert.Equal(t, "always", flags.Mode)
}

func TestStdoutCarriesOnlyResults(t *testing.T) {
	var stdout, stderr bytes.Buffer

	prompt := newPrompt(strings.NewReader("y"), &stderr)
	yes, err := prompt.ConfirmYesNo(context.Background(), "Capture another place?", "")
	require.NoError(t, err)
	assert.True(t, yes)

	res := store.Result{
		{Latitude: "40.8517", Longitude: "-74.8283"}: {
			{Label: "name", Value: "R5F7+WV Hackettstown"},
			{Label: "latitude", Value: "40.8517"},
			{Label: "longitude", Value: "-74.8283"},
		},
	}
	require.NoError(t, writeResults(res, &stdout, &stderr))

	assert.True(t, json.Valid(stdout.Bytes()), stdout.String())
	assert.NotContains(t, stdout.String(), "Capture another place?")
	assert.Contains(t, stderr.String(), "Capture another place?")
	assert.Contains(t, stderr.String(), "R5F7+WV Hackettstown")
}
