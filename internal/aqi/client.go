// Package aqi fetches live air-quality data: a city name is geocoded through
// Nominatim, the nearest AQICN feed is read by coordinates, and the US EPA AQI
// is recomputed locally from the raw PM2.5 reading since the feed's own index
// does not always use the EPA scale.
package aqi

import (
	"errors"
	"fmt"
	"time"

	"health_system/internal/health"

	"github.com/go-resty/resty/v2" // HTTP client for outbound API calls
)

const (
	nominatimURL = "https://nominatim.openstreetmap.org/search"
	aqicnFeedURL = "https://api.waqi.info/feed/geo:%s;%s/"
)

// ErrCityNotFound is returned when geocoding yields no match.
var ErrCityNotFound = errors.New("city not found")

// ErrUpstream is returned when a provider is unreachable or answers with an
// error status.
var ErrUpstream = errors.New("air quality provider error")

// Reading is the merged air-quality answer for a city.
type Reading struct {
	City     string   `json:"city"`
	AQI      int      `json:"aqi"`
	PM25     *float64 `json:"pm25"`
	PM10     *float64 `json:"pm10"`
	Dominant string   `json:"dominant"`
	Source   string   `json:"source"`
	Scale    string   `json:"scale"`
}

// Client talks to the geocoding and AQI providers.
type Client struct {
	http       *resty.Client
	token      string
	geocodeURL string
	feedURL    string
}

// NewClient builds a client with the AQICN API token from configuration.
func NewClient(token string) *Client {
	httpClient := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("User-Agent", "health_system/1.0").
		SetHeader("Accept", "application/json")
	return &Client{
		http:       httpClient,
		token:      token,
		geocodeURL: nominatimURL,
		feedURL:    aqicnFeedURL,
	}
}

// geoResult is one Nominatim search hit.
type geoResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// feedResponse is the AQICN feed envelope.
type feedResponse struct {
	Status string `json:"status"`
	Data   struct {
		AQI  int `json:"aqi"`
		IAQI struct {
			PM25 *struct {
				V float64 `json:"v"`
			} `json:"pm25"`
			PM10 *struct {
				V float64 `json:"v"`
			} `json:"pm10"`
		} `json:"iaqi"`
		DominentPol string `json:"dominentpol"`
	} `json:"data"`
}

// FetchByCity resolves a city to coordinates and returns its current reading.
// The returned AQI prefers the value recomputed from PM2.5; the feed's own
// index is only used when no PM2.5 reading is available.
func (c *Client) FetchByCity(city string) (*Reading, error) {
	var hits []geoResult
	resp, err := c.http.R().
		SetQueryParams(map[string]string{"q": city, "format": "json", "limit": "1"}).
		SetResult(&hits).
		Get(c.geocodeURL)
	if err != nil || resp.IsError() {
		return nil, fmt.Errorf("%w: geocoding failed", ErrUpstream)
	}
	if len(hits) == 0 {
		return nil, ErrCityNotFound
	}

	var feed feedResponse
	resp, err = c.http.R().
		SetQueryParam("token", c.token).
		SetResult(&feed).
		Get(fmt.Sprintf(c.feedURL, hits[0].Lat, hits[0].Lon))
	if err != nil || resp.IsError() {
		return nil, fmt.Errorf("%w: feed unreachable", ErrUpstream)
	}
	if feed.Status != "ok" {
		return nil, fmt.Errorf("%w: feed status %q", ErrUpstream, feed.Status)
	}

	var pm25, pm10 *float64
	if feed.Data.IAQI.PM25 != nil {
		pm25 = &feed.Data.IAQI.PM25.V
	}
	if feed.Data.IAQI.PM10 != nil {
		pm10 = &feed.Data.IAQI.PM10.V
	}

	finalAQI := feed.Data.AQI
	if computed := health.USAQIFromPM25(pm25); computed != nil {
		finalAQI = *computed
	}

	return &Reading{
		City:     city,
		AQI:      finalAQI,
		PM25:     pm25,
		PM10:     pm10,
		Dominant: feed.Data.DominentPol,
		Source:   "AQICN",
		Scale:    "US EPA AQI",
	}, nil
}
