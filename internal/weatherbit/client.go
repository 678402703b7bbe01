package weatherbit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the Weatherbit v2.0 REST API root.
const DefaultBaseURL = "https://api.weatherbit.io/v2.0"

// maxErrorDetails caps how much of an upstream error body is relayed.
const maxErrorDetails = 500

// UpstreamError reports a non-2xx response from Weatherbit. The proxy relays
// the status and truncated body to its own caller without retrying.
type UpstreamError struct {
	Status  int
	Details string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weatherbit responded %d: %s", e.Status, e.Details)
}

// Client calls the Weatherbit REST API. Requests carry the server-held API
// key as a query parameter. There is no outbound timeout: a hung upstream
// call blocks only the slice that issued it.
type Client struct {
	rest   *resty.Client
	apiKey string
	now    func() time.Time
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		rest:   resty.New().SetBaseURL(baseURL).SetHeader("Accept", "application/json"),
		apiKey: apiKey,
		now:    time.Now,
	}
}

// Current fetches current conditions for a city.
func (c *Client) Current(ctx context.Context, city, country string, refresh bool) (json.RawMessage, error) {
	return c.get(ctx, "/current", c.cityQuery(city, country), refresh)
}

// CurrentByCoords fetches current conditions for a coordinate pair. Serves
// the legacy top-level weather endpoint.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("lat", lat)
	query.Set("lon", lon)
	return c.get(ctx, "/current", query, false)
}

// DailyForecast fetches the daily forecast. days <= 0 leaves the day count
// to the upstream default; callers clamp to [1,16] before passing it in.
func (c *Client) DailyForecast(ctx context.Context, city, country string, days int, refresh bool) (json.RawMessage, error) {
	query := c.cityQuery(city, country)
	if days > 0 {
		query.Set("days", fmt.Sprintf("%d", days))
	}
	return c.get(ctx, "/forecast/daily", query, refresh)
}

// DailyHistory fetches the trailing 3-day history window ending today. The
// window is recomputed in UTC on every call and is never caller-specified.
func (c *Client) DailyHistory(ctx context.Context, city, country string, refresh bool) (json.RawMessage, error) {
	startDate, endDate := HistoryRange(c.now())
	query := c.cityQuery(city, country)
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)
	return c.get(ctx, "/history/daily", query, refresh)
}

// Alerts fetches active weather alerts for a city.
func (c *Client) Alerts(ctx context.Context, city, country string) (json.RawMessage, error) {
	return c.get(ctx, "/alerts", c.cityQuery(city, country), false)
}

// HistoryRange computes the trailing 3-calendar-day window ending at and
// including the given instant's UTC date.
func HistoryRange(now time.Time) (startDate, endDate string) {
	end := now.UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -3)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func (c *Client) cityQuery(city, country string) url.Values {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("city", city)
	if country != "" {
		query.Set("country", country)
	}
	return query
}

func (c *Client) get(ctx context.Context, path string, query url.Values, refresh bool) (json.RawMessage, error) {
	req := c.rest.R().SetContext(ctx).SetQueryParamsFromValues(query)
	if refresh {
		// Ask intermediaries not to serve a cached copy.
		req.SetHeader("Cache-Control", "no-store")
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("contacting weatherbit: %w", err)
	}

	if resp.IsError() {
		return nil, &UpstreamError{
			Status:  resp.StatusCode(),
			Details: truncate(string(resp.Body()), maxErrorDetails),
		}
	}

	return json.RawMessage(resp.Body()), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
