// Package geocode resolves map-click coordinates to a city name so the
// client can prefill the guess input. The provider is Nominatim-shaped;
// the rest of the system only sees the returned place-name string.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

var ErrNoCity = errors.New("no city at these coordinates")

// Reverser is the contract the HTTP layer consumes.
type Reverser interface {
	CityAt(ctx context.Context, lat, lng float64, locale string) (string, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type reverseResponse struct {
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
	} `json:"address"`
}

// CityAt reverse-geocodes a coordinate pair. Locale selects the
// language of the returned name.
func (c *Client) CityAt(ctx context.Context, lat, lng float64, locale string) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))
	if locale != "" {
		q.Set("accept-language", locale)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "cityguesser/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling geocoder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var rr reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return "", fmt.Errorf("parsing geocoder response: %w", err)
	}

	for _, name := range []string{rr.Address.City, rr.Address.Town, rr.Address.Village, rr.Address.Municipality} {
		if name != "" {
			return name, nil
		}
	}
	return "", ErrNoCity
}
