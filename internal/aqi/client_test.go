package aqi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeProviders serves both the geocoder and the feed from one test server.
func fakeProviders(t *testing.T, geocodeBody, feedBody string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/search"):
			w.Write([]byte(geocodeBody))
		case strings.HasPrefix(r.URL.Path, "/feed/"):
			w.Write([]byte(feedBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-token")
	client.geocodeURL = server.URL + "/search"
	client.feedURL = server.URL + "/feed/geo:%s;%s/"
	return client
}

func TestFetchByCityPrefersComputedAQI(t *testing.T) {
	client := fakeProviders(t,
		`[{"lat":"31.5204","lon":"74.3587"}]`,
		`{"status":"ok","data":{"aqi":999,"iaqi":{"pm25":{"v":35.4},"pm10":{"v":80}},"dominentpol":"pm25"}}`)

	reading, err := client.FetchByCity("Lahore")
	require.NoError(t, err)
	require.Equal(t, "Lahore", reading.City)
	// The feed claimed 999; PM2.5 of 35.4 recomputes to 100 on the EPA scale
	require.Equal(t, 100, reading.AQI)
	require.Equal(t, 35.4, *reading.PM25)
	require.Equal(t, 80.0, *reading.PM10)
	require.Equal(t, "pm25", reading.Dominant)
	require.Equal(t, "US EPA AQI", reading.Scale)
}

func TestFetchByCityFallsBackToFeedAQI(t *testing.T) {
	// No PM2.5 reading means the feed's own index is the only answer
	client := fakeProviders(t,
		`[{"lat":"31.5204","lon":"74.3587"}]`,
		`{"status":"ok","data":{"aqi":87,"iaqi":{},"dominentpol":"pm10"}}`)

	reading, err := client.FetchByCity("Lahore")
	require.NoError(t, err)
	require.Equal(t, 87, reading.AQI)
	require.Nil(t, reading.PM25)
}

func TestFetchByCityUnknownCity(t *testing.T) {
	client := fakeProviders(t, `[]`, `{}`)

	_, err := client.FetchByCity("Atlantis")
	require.ErrorIs(t, err, ErrCityNotFound)
}

func TestFetchByCityFeedError(t *testing.T) {
	client := fakeProviders(t,
		`[{"lat":"31.5204","lon":"74.3587"}]`,
		`{"status":"error","data":{}}`)

	_, err := client.FetchByCity("Lahore")
	require.ErrorIs(t, err, ErrUpstream)
}
