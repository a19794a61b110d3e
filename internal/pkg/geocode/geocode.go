package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/glimmerpics/glimmer/internal/pkg/env"
)

const defaultEndpoint = "https://nominatim.openstreetmap.org/reverse"

// minInterval is the provider's documented rate-limit expectation of roughly
// one request per second, enforced across all callers of a client.
const minInterval = time.Second

type response struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// Client resolves coordinates to human-readable place names via a
// Nominatim-compatible reverse geocoding endpoint.
type Client struct {
	endpoint string
	http     *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

func NewClient() *Client {
	return &Client{
		endpoint: env.GetEnv("GEOCODE_ENDPOINT", defaultEndpoint),
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// ReverseGeocode returns a best-effort "locality, country" string for the
// given coordinate, or an empty string when nothing resolves.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	c.throttle()

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build reverse geocode request: %w", err)
	}
	req.Header.Set("User-Agent", "glimmer-gallery")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	locality := body.Address.City
	if locality == "" {
		locality = body.Address.Town
	}
	if locality == "" {
		locality = body.Address.Village
	}
	if locality == "" {
		locality = body.Address.State
	}

	switch {
	case locality != "" && body.Address.Country != "":
		return locality + ", " + body.Address.Country, nil
	case body.Address.Country != "":
		return body.Address.Country, nil
	default:
		return body.DisplayName, nil
	}
}

// throttle blocks until at least minInterval has passed since the previous
// request, keeping batch uploads inside the provider's rate expectations.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wait := minInterval - time.Since(c.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	c.lastCall = time.Now()
}
