package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	cfgpkg "github.com/salamene/horoscope-backend/pkg/config"
)

// Client resolves an IP address to a two-letter country code using a public
// geolocation service. Lookups are best-effort: any failure degrades to the
// configured fallback country instead of surfacing an error.
type Client struct {
	endpoint   string
	fallback   string
	httpClient *http.Client
}

func NewClient(cfg *cfgpkg.Config) *Client {
	timeout := time.Duration(cfg.GeoIP.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		endpoint:   cfg.GeoIP.Endpoint,
		fallback:   cfg.GeoIP.FallbackCountry,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type lookupResponse struct {
	CountryCode string `json:"countryCode"`
	Status      string `json:"status"`
}

// CountryForIP returns the country code for ip, or the fallback country for
// loopback/empty addresses and on any lookup failure.
func (c *Client) CountryForIP(ctx context.Context, ip string) string {
	if ip == "" {
		return c.fallback
	}
	if parsed := net.ParseIP(ip); parsed != nil && parsed.IsLoopback() {
		return c.fallback
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.endpoint, ip), nil)
	if err != nil {
		return c.fallback
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fallback
	}
	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.fallback
	}
	if len(body.CountryCode) != 2 {
		return c.fallback
	}
	return body.CountryCode
}
