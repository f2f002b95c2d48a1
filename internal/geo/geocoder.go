package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultGeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrNoResults is returned when the geocoder resolves nothing for the input.
var ErrNoResults = errors.New("geo: no geocoding results")

// GoogleGeocoder resolves addresses through the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleGeocoder builds a geocoder. Returns an error when the API key
// is empty so callers can fall back to heuristics explicitly.
func NewGoogleGeocoder(apiKey string, timeout time.Duration) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("geo: google maps api key is required")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GoogleGeocoder{
		apiKey:     apiKey,
		baseURL:    defaultGeocodeBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress  string `json:"formatted_address"`
		AddressComponents []struct {
			ShortName string   `json:"short_name"`
			LongName  string   `json:"long_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// Geocode resolves a free-text address, biased to Canada.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (Location, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("region", "ca")
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Location{}, fmt.Errorf("geo: build request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geo: geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geo: geocode status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, fmt.Errorf("geo: decode response: %w", err)
	}
	if body.Status != "OK" || len(body.Results) == 0 {
		return Location{}, ErrNoResults
	}

	r := body.Results[0]
	loc := Location{Formatted: r.FormattedAddress}
	for _, comp := range r.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "administrative_area_level_1":
				loc.Province = comp.ShortName
			case "locality":
				loc.Locality = comp.LongName
			}
		}
	}
	return loc, nil
}
