package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	cfgpkg "github.com/salamene/horoscope-backend/pkg/config"
)

func newTestClient(endpoint string) *Client {
	cfg := &cfgpkg.Config{}
	cfg.GeoIP.Endpoint = endpoint
	cfg.GeoIP.TimeoutSeconds = 1
	cfg.GeoIP.FallbackCountry = "US"
	return NewClient(cfg)
}

func TestCountryForIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","countryCode":"GE"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	require.Equal(t, "GE", c.CountryForIP(context.Background(), "203.0.113.7"))
}

func TestCountryForIP_Fallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	require.Equal(t, "US", c.CountryForIP(context.Background(), "203.0.113.7"), "upstream error")
	require.Equal(t, "US", c.CountryForIP(context.Background(), ""), "empty ip")
	require.Equal(t, "US", c.CountryForIP(context.Background(), "127.0.0.1"), "loopback")
}

func TestCountryForIP_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"countryCode":"GEORGIA"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	require.Equal(t, "US", c.CountryForIP(context.Background(), "203.0.113.7"))
}
