package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/weatherupdate/weatherupdate/internal/config"
	"github.com/weatherupdate/weatherupdate/internal/weatherbit"
)

const (
	maxForecastDays = 16

	cacheControlDefault = "s-maxage=300, stale-while-revalidate=600"
	cacheControlBypass  = "no-store"
)

// WeatherHandler proxies the four Weatherbit operations. Each handler
// validates input, forwards the call upstream, and relays the body
// unchanged; errors are normalized into small JSON shapes.
type WeatherHandler struct {
	cfg     *config.Config
	weather *weatherbit.Client
}

func NewWeatherHandler(cfg *config.Config, weather *weatherbit.Client) *WeatherHandler {
	return &WeatherHandler{cfg: cfg, weather: weather}
}

type weatherRequest struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Refresh bool   `json:"refresh"`
}

// parseRequest reads the JSON body and resolves the refresh flag from either
// the body or the query string. A missing or malformed body is treated as
// empty, matching the permissive request shape of the original endpoints.
func parseRequest(r *http.Request) (city, country string, refresh bool) {
	var req weatherRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	refresh = req.Refresh
	if q := r.URL.Query().Get("refresh"); q == "1" || q == "true" {
		refresh = true
	}

	return strings.TrimSpace(req.City), strings.TrimSpace(req.Country), refresh
}

// parseDays clamps the optional forecast day count to [1,16]. Zero, negative,
// and non-numeric values are dropped so upstream applies its own default.
func parseDays(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0
	}
	if n > maxForecastDays {
		return maxForecastDays
	}
	return n
}

// Current proxies current conditions. Session-gated via middleware.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	city, country, refresh := parseRequest(r)
	if !h.validate(w, city) {
		return
	}

	data, err := h.weather.Current(r.Context(), city, country, refresh)
	h.relay(w, data, err, refresh)
}

// DailyForecast proxies the daily forecast with an optional bounded day
// count. Session-gated via middleware.
func (h *WeatherHandler) DailyForecast(w http.ResponseWriter, r *http.Request) {
	days := parseDays(r.URL.Query().Get("days"))

	city, country, refresh := parseRequest(r)
	if !h.validate(w, city) {
		return
	}

	data, err := h.weather.DailyForecast(r.Context(), city, country, days, refresh)
	h.relay(w, data, err, refresh)
}

// DailyHistory proxies the fixed trailing 3-day history window. The window
// is computed upstream-side in the client, never taken from the caller.
// Session-gated via middleware.
func (h *WeatherHandler) DailyHistory(w http.ResponseWriter, r *http.Request) {
	city, country, refresh := parseRequest(r)
	if !h.validate(w, city) {
		return
	}

	data, err := h.weather.DailyHistory(r.Context(), city, country, refresh)
	h.relay(w, data, err, refresh)
}

// Alerts proxies active weather alerts. Unlike the other three operations
// this endpoint is not session-gated and has no refresh mode.
func (h *WeatherHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	city, country, _ := parseRequest(r)
	if !h.validate(w, city) {
		return
	}

	data, err := h.weather.Alerts(r.Context(), city, country)
	h.relay(w, data, err, false)
}

// LegacyCurrent serves the original top-level GET endpoint: current
// conditions by lat+lon or city query parameters, no session required.
func (h *WeatherHandler) LegacyCurrent(w http.ResponseWriter, r *http.Request) {
	if h.cfg.WeatherbitAPIKey == "" {
		writeError(w, http.StatusInternalServerError, "Server missing WEATHERBIT_API_KEY")
		return
	}

	query := r.URL.Query()
	lat, lon := query.Get("lat"), query.Get("lon")
	city, country := query.Get("city"), query.Get("country")

	var data json.RawMessage
	var err error
	switch {
	case lat != "" && lon != "":
		data, err = h.weather.CurrentByCoords(r.Context(), lat, lon)
	case city != "":
		data, err = h.weather.Current(r.Context(), city, country, false)
	default:
		writeError(w, http.StatusBadRequest, "Provide lat+lon or city")
		return
	}

	h.relay(w, data, err, false)
}

// validate enforces the shared city requirement and the configured API key.
func (h *WeatherHandler) validate(w http.ResponseWriter, city string) bool {
	if h.cfg.WeatherbitAPIKey == "" {
		log.Printf("ERROR [handlers.weather] WEATHERBIT_API_KEY not configured")
		writeError(w, http.StatusInternalServerError, "Server missing WEATHERBIT_API_KEY")
		return false
	}

	if city == "" {
		writeError(w, http.StatusBadRequest, "Provide a city and country")
		return false
	}

	return true
}

type upstreamErrorResponse struct {
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

type networkErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// relay writes the upstream result. Cache directives apply to upstream
// responses, successful or not; transport failures carry none, matching the
// original handlers.
func (h *WeatherHandler) relay(w http.ResponseWriter, data json.RawMessage, err error, refresh bool) {
	if err != nil {
		var upstream *weatherbit.UpstreamError
		if errors.As(err, &upstream) {
			setCacheControl(w, refresh)
			writeJSON(w, upstream.Status, upstreamErrorResponse{
				Error:   "Upstream Weatherbit error",
				Status:  upstream.Status,
				Details: upstream.Details,
			})
			return
		}

		log.Printf("ERROR [handlers.weather] upstream call failed: %v", err)
		writeJSON(w, http.StatusBadGateway, networkErrorResponse{
			Error:   "Network error contacting Weatherbit",
			Details: err.Error(),
		})
		return
	}

	setCacheControl(w, refresh)
	writeRaw(w, http.StatusOK, data)
}

func setCacheControl(w http.ResponseWriter, refresh bool) {
	if refresh {
		w.Header().Set("Cache-Control", cacheControlBypass)
	} else {
		w.Header().Set("Cache-Control", cacheControlDefault)
	}
}
