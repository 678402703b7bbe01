package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/weatherupdate/weatherupdate/internal/session"
	"github.com/weatherupdate/weatherupdate/internal/weatherbit"
)

// Client talks to the weatherupdate API server. Responses are decoded into
// the typed weatherbit shapes exactly once, at this boundary.
type Client struct {
	rest         *resty.Client
	sessionToken string
}

func NewClient(baseURL string) *Client {
	return &Client{
		rest: resty.New().SetBaseURL(baseURL).SetHeader("Content-Type", "application/json"),
	}
}

// SetSessionToken attaches a previously obtained session token to future
// requests. The CLI persists the token between invocations the way the
// browser kept its cookie.
func (c *Client) SetSessionToken(token string) {
	c.sessionToken = token
}

type apiError struct {
	Error string `json:"error"`
}

// Login exchanges the shared access token for a session cookie and returns
// the cookie value.
func (c *Client) Login(ctx context.Context, accessToken string) (string, error) {
	resp, err := c.rest.R().SetContext(ctx).
		SetBody(map[string]string{"token": accessToken}).
		Post("/api/auth/login")
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	if resp.IsError() {
		return "", responseError(resp)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == session.CookieName && cookie.Value != "" {
			c.sessionToken = cookie.Value
			return cookie.Value, nil
		}
	}

	return "", fmt.Errorf("login succeeded but no session cookie was set")
}

// Logout clears the server-side cookie and drops the local token.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.newRequest(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	if resp.IsError() {
		return responseError(resp)
	}

	c.sessionToken = ""
	return nil
}

type SessionInfo struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
}

// Session reports whether the held token still verifies.
func (c *Client) Session(ctx context.Context) (*SessionInfo, error) {
	resp, err := c.newRequest(ctx).Get("/api/auth/me")
	if err != nil {
		return nil, fmt.Errorf("session request failed: %w", err)
	}
	if resp.IsError() {
		return nil, responseError(resp)
	}

	var info SessionInfo
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}
	return &info, nil
}

// CurrentWeather fetches current conditions through the proxy.
func (c *Client) CurrentWeather(ctx context.Context, city, country string, refresh bool) (*weatherbit.CurrentWeatherResponse, error) {
	var out weatherbit.CurrentWeatherResponse
	if err := c.postWeather(ctx, "/api/weather/currentWeather", city, country, refresh, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailyForecast fetches the daily forecast, optionally bounded to days.
func (c *Client) DailyForecast(ctx context.Context, city, country string, days int, refresh bool) (*weatherbit.DailyForecastResponse, error) {
	query := map[string]string{}
	if days > 0 {
		query["days"] = fmt.Sprintf("%d", days)
	}

	var out weatherbit.DailyForecastResponse
	if err := c.postWeather(ctx, "/api/weather/dailyForecast", city, country, refresh, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailyHistory fetches the trailing 3-day history window.
func (c *Client) DailyHistory(ctx context.Context, city, country string, refresh bool) (*weatherbit.DailyHistoryResponse, error) {
	var out weatherbit.DailyHistoryResponse
	if err := c.postWeather(ctx, "/api/weather/dailyHistory", city, country, refresh, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WeatherAlerts fetches active alerts.
func (c *Client) WeatherAlerts(ctx context.Context, city, country string) (*weatherbit.WeatherAlertsResponse, error) {
	var out weatherbit.WeatherAlertsResponse
	if err := c.postWeather(ctx, "/api/weather/weatherAlerts", city, country, false, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postWeather(ctx context.Context, path, city, country string, refresh bool, query map[string]string, out interface{}) error {
	req := c.newRequest(ctx).SetBody(map[string]string{"city": city, "country": country})
	for k, v := range query {
		req.SetQueryParam(k, v)
	}
	if refresh {
		req.SetQueryParam("refresh", "1")
	}

	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	if resp.IsError() {
		return responseError(resp)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	req := c.rest.R().SetContext(ctx)
	if c.sessionToken != "" {
		req.SetCookie(&http.Cookie{Name: session.CookieName, Value: c.sessionToken})
	}
	return req
}

// responseError surfaces the server's JSON error message, falling back to
// the HTTP status line.
func responseError(resp *resty.Response) error {
	var apiErr apiError
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("API error: %s", apiErr.Error)
	}
	return fmt.Errorf("API error: %s", resp.Status())
}
