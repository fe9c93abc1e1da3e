package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// DefaultNominatimURL is the public OpenStreetMap Nominatim endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// Nominatim reverse geocodes through the Nominatim HTTP API. Results are
// cached by coordinate and requests are rate limited to the public usage
// policy of one per second.
type Nominatim struct {
	baseURL   string
	userAgent string
	language  string
	client    *http.Client
	limiter   *rate.Limiter
	cache     *cache.Cache
}

// NominatimOption configures a Nominatim client.
type NominatimOption func(*Nominatim)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) NominatimOption {
	return func(n *Nominatim) {
		if c != nil {
			n.client = c
		}
	}
}

// WithRateLimit sets the request rate.
func WithRateLimit(limit rate.Limit, burst int) NominatimOption {
	return func(n *Nominatim) {
		n.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithLanguage sets the Accept-Language used for place names.
func WithLanguage(lang string) NominatimOption {
	return func(n *Nominatim) {
		n.language = lang
	}
}

// WithCacheTTL sets how long results are cached.
func WithCacheTTL(ttl time.Duration) NominatimOption {
	return func(n *Nominatim) {
		n.cache = cache.New(ttl, 2*ttl)
	}
}

// NewNominatim returns a client for the API at baseURL.
func NewNominatim(baseURL, userAgent string, opts ...NominatimOption) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	n := &Nominatim{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		language:  "en",
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		cache:     cache.New(time.Hour, 2*time.Hour),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type nominatimResponse struct {
	Error   string `json:"error"`
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Hamlet       string `json:"hamlet"`
		Municipality string `json:"municipality"`
		State        string `json:"state"`
		Province     string `json:"province"`
		Region       string `json:"region"`
		CountryCode  string `json:"country_code"`
	} `json:"address"`
}

// Reverse implements ReverseGeocoder.
func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) (ReverseResult, error) {
	latText := strconv.FormatFloat(lat, 'f', -1, 64)
	lonText := strconv.FormatFloat(lon, 'f', -1, 64)
	key := latText + "," + lonText

	if v, ok := n.cache.Get(key); ok {
		log.Debug("Reverse geocode cache hit", "key", key)
		return v.(ReverseResult), nil
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return ReverseResult{}, eris.Wrap(err, "nominatim: rate limit")
	}

	query := url.Values{
		"format":         {"jsonv2"},
		"lat":            {latText},
		"lon":            {lonText},
		"zoom":           {"10"},
		"addressdetails": {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return ReverseResult{}, eris.Wrap(err, "nominatim: build request")
	}
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}
	if n.language != "" {
		req.Header.Set("Accept-Language", n.language)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return ReverseResult{}, eris.Wrap(err, "nominatim: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ReverseResult{}, eris.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ReverseResult{}, eris.Wrap(err, "nominatim: decode response")
	}
	if body.Error != "" {
		return ReverseResult{}, eris.Errorf("nominatim: %s", body.Error)
	}

	a := body.Address
	result := ReverseResult{
		City:        firstNonEmpty(a.City, a.Town, a.Village, a.Hamlet, a.Municipality),
		Region:      firstNonEmpty(a.State, a.Province, a.Region),
		CountryCode: strings.ToUpper(a.CountryCode),
	}
	n.cache.Set(key, result, cache.DefaultExpiration)
	return result, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
