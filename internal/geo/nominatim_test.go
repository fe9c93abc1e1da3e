package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func setupNominatim(t *testing.T, status int, body string, hits *int) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "40.8517", r.URL.Query().Get("lat"))
		assert.Equal(t, "-74.8283", r.URL.Query().Get("lon"))
		assert.Equal(t, "placecapture-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNominatimReverse(t *testing.T) {
	hits := 0
	server := setupNominatim(t, http.StatusOK, `{
		"place_id": 1,
		"address": {"town": "Hackettstown", "county": "Warren County", "state": "New Jersey", "country_code": "us"}
	}`, &hits)

	n := NewNominatim(server.URL+"/", "placecapture-test", WithRateLimit(rate.Inf, 1))

	got, err := n.Reverse(context.Background(), 40.8517, -74.8283)
	require.NoError(t, err)
	assert.Equal(t, ReverseResult{City: "Hackettstown", Region: "New Jersey", CountryCode: "US"}, got)

	again, err := n.Reverse(context.Background(), 40.8517, -74.8283)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, 1, hits, "second lookup is served from cache")
}

func TestNominatimErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "api error", status: http.StatusOK, body: `{"error": "Unable to geocode"}`},
		{name: "bad json", status: http.StatusOK, body: `{"address":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := 0
			server := setupNominatim(t, tt.status, tt.body, &hits)
			n := NewNominatim(server.URL, "placecapture-test", WithRateLimit(rate.Inf, 1))

			_, err := n.Reverse(context.Background(), 40.8517, -74.8283)
			assert.Error(t, err)

			_, err = n.Reverse(context.Background(), 40.8517, -74.8283)
			assert.Error(t, err)
			assert.Equal(t, 2, hits, "failures are not cached")
		})
	}
}

func TestNominatimRateLimitHonoursContext(t *testing.T) {
	n := NewNominatim("http://127.0.0.1:0", "placecapture-test", WithRateLimit(0, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := n.Reverse(ctx, 1, 2)
	assert.Error(t, err)
}
