package postcards

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zjoart/mapcard/pkg/logger"
)

// ExternalError marks which external API failed.
type ExternalError struct {
	API string
}

func (e ExternalError) Error() string {
	return fmt.Sprintf("Could not fetch data from %s", e.API)
}

// Geocoder resolves a city/country pair to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, city, country string) (Coordinates, error)
}

// NominatimGeocoder queries the OSM Nominatim search endpoint. Every call
// sleeps Delay before issuing the request so the service's usage policy is
// respected even under concurrent load. No retries, no caching.
type NominatimGeocoder struct {
	BaseURL   string
	UserAgent string
	Delay     time.Duration
	Client    *http.Client
}

func NewNominatimGeocoder(baseURL, userAgent string, delay, timeout time.Duration) *NominatimGeocoder {
	return &NominatimGeocoder{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Delay:     delay,
		Client:    &http.Client{Timeout: timeout},
	}
}

// external struct; Nominatim serializes coordinates as strings
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up "city, country" and returns the first match. A lookup
// with no matches is a NotFoundError, distinct from transport failures.
func (g *NominatimGeocoder) Resolve(ctx context.Context, city, country string) (Coordinates, error) {
	time.Sleep(g.Delay)

	q := url.Values{}
	q.Set("q", fmt.Sprintf("%s, %s", city, country))
	q.Set("format", "json")
	q.Set("limit", "1")

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+q.Encode(), nil)
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		logger.Warn("geocode: failed fetching from nominatim", logger.WithError(err))
		return Coordinates{}, ExternalError{API: "nominatim"}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logger.Warn("geocode: nominatim returned non-200", logger.Fields{"status": resp.StatusCode})
		return Coordinates{}, ExternalError{API: "nominatim"}
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		logger.Warn("geocode: failed decoding nominatim response", logger.WithError(err))
		return Coordinates{}, ExternalError{API: "nominatim"}
	}
	if len(results) == 0 {
		logger.Info("geocode: no match", logger.Fields{"city": city, "country": country})
		return Coordinates{}, NotFoundError{City: city, Country: country}
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("nominatim returned latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("nominatim returned longitude %q: %w", results[0].Lon, err)
	}

	logger.Info("geocode: resolved", logger.Fields{"city": city, "country": country, "lat": lat, "lon": lon})
	return Coordinates{Lat: lat, Lon: lon}, nil
}
