package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weatherupdate/weatherupdate/internal/weatherbit"
)

// fakeUpstream is a recording stand-in for the Weatherbit API.
type fakeUpstream struct {
	mu         sync.Mutex
	srv        *httptest.Server
	status     int
	body       string
	lastPath   string
	lastQuery  url.Values
	lastHeader http.Header
}

func newFakeUpstream(t *testing.T, status int, body string) *fakeUpstream {
	t.Helper()

	up := &fakeUpstream{status: status, body: body}
	up.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up.mu.Lock()
		up.lastPath = r.URL.Path
		up.lastQuery = r.URL.Query()
		up.lastHeader = r.Header.Clone()
		status, body := up.status, up.body
		up.mu.Unlock()

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(up.srv.Close)
	return up
}

func (up *fakeUpstream) query() url.Values {
	up.mu.Lock()
	defer up.mu.Unlock()
	return up.lastQuery
}

func (up *fakeUpstream) path() string {
	up.mu.Lock()
	defer up.mu.Unlock()
	return up.lastPath
}

func (up *fakeUpstream) header() http.Header {
	up.mu.Lock()
	defer up.mu.Unlock()
	return up.lastHeader
}

var cityBody = map[string]string{"city": "Pretoria", "country": "ZA"}

func TestWeatherHandler_RequiresSession(t *testing.T) {
	up := newFakeUpstream(t, http.StatusOK, `{}`)
	ts := newTestServer(t, up.srv.URL)

	gated := []string{
		"/api/weather/currentWeather",
		"/api/weather/dailyForecast",
		"/api/weather/dailyHistory",
	}

	for _, path := range gated {
		t.Run(path, func(t *testing.T) {
			// No cookie
			resp := ts.request(t, http.MethodPost, path, cityBody, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var body map[string]string
			decodeJSON(t, resp, &body)
			assert.Equal(t, "Unauthorized", body["error"])

			// Invalid cookie
			resp = ts.request(t, http.MethodPost, path, cityBody,
				&http.Cookie{Name: "session", Value: "bogus"})
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestWeatherHandler_AlertsIsUngated(t *testing.T) {
	up := newFakeUpstream(t, http.StatusOK, `{"alerts":[]}`)
	ts := newTestServer(t, up.srv.URL)

	resp := ts.request(t, http.MethodPost, "/api/weather/weatherAlerts", cityBody, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/alerts", up.path())
}

func TestWeatherHandler_CurrentPassThrough(t *testing.T) {
	upstreamBody := `{"count":1,"data":[{"city_name":"Pretoria","temp":24.5}]}`
	up := newFakeUpstream(t, http.StatusOK, upstreamBody)
	ts := newTestServer(t, up.srv.URL)

	resp := ts.request(t, http.MethodPost, "/api/weather/currentWeather", cityBody, ts.sessionCookie(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Body relayed unchanged
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, upstreamBody, string(raw))

	// Upstream query carries the server-held key and validated params
	query := up.query()
	assert.Equal(t, "wb-key", query.Get("key"))
	assert.Equal(t, "Pretoria", query.Get("city"))
	assert.Equal(t, "ZA", query.Get("country"))

	assert.Equal(t, "s-maxage=300, stale-while-revalidate=600", resp.Header.Get("Cache-Control"))
}

func TestWeatherHandler_RefreshMode(t *testing.T) {
	up := newFakeUpstream(t, http.StatusOK, `{}`)
	ts := newTestServer(t, up.srv.URL)
	cookie := ts.sessionCookie(t)

	tests := []struct {
		name          string
		path          string
		body          interface{}
		expectedCache string
	}{
		{
			name:          "query refresh=1",
			path:          "/api/weather/currentWeather?refresh=1",
			body:          cityBody,
			expectedCache: "no-store",
		},
		{
			name:          "query refresh=true",
			path:          "/api/weather/currentWeather?refresh=true",
			body:          cityBody,
			expectedCache: "no-store",
		},
		{
			name:          "body refresh flag",
			path:          "/api/weather/currentWeather",
			body:          map[string]interface{}{"city": "Pretoria", "country": "ZA", "refresh": true},
			expectedCache: "no-store",
		},
		{
			name:          "no refresh",
			path:          "/api/weather/currentWeather",
			body:          cityBody,
			expectedCache: "s-maxage=300, stale-while-revalidate=600",
		},
		{
			name:          "unrecognized refresh value",
			path:          "/api/weather/currentWeather?refresh=yes",
			body:          cityBody,
			expectedCache: "s-maxage=300, stale-while-revalidate=600",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.request(t, http.MethodPost, tt.path, tt.body, cookie)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.expectedCache, resp.Header.Get("Cache-Control"))

			if tt.expectedCache == "no-store" {
				assert.Equal(t, "no-store", up.header().Get("Cache-Control"))
			}
		})
	}
}

func TestWeatherHandler_ForecastDaysClamping(t *testing.T) {
	up := newFakeUpstream(t, http.StatusOK, `{}`)
	ts := newTestServer(t, up.srv.URL)
	cookie := ts.sessionCookie(t)

	tests := []struct {
		name         string
		query        string
		expectedDays string
	}{
		{name: "normal value forwarded", query: "?days=3", expectedDays: "3"},
		{name: "above cap clamped to 16", query: "?days=99", expectedDays: "16"},
		{name: "exactly 16 kept", query: "?days=16", expectedDays: "16"},
		{name: "one kept", query: "?days=1", expectedDays: "1"},
		{name: "zero omitted", query: "?days=0", expectedDays: ""},
		{name: "negative omitted", query: "?days=-2", expectedDays: ""},
		{name: "non-numeric omitted", query: "?days=abc", expectedDays: ""},
		{name: "absent omitted", query: "", expectedDays: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.request(t, http.MethodPost, "/api/weather/dailyForecast"+tt.query, cityBody, cookie)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			query := up.query()
			if tt.expectedDays == "" {
				_, present := query["days"]
				assert.False(t, present, "days should be omitted")
			} else {
				assert.Equal(t, tt.expectedDays, query.Get("days"))
			}
			assert.Equal(t, "/forecast/daily", up.path())
		})
	}
}

func TestWeatherHandler_HistoryWindow(t *testing.T) {
	up := newFakeUpstream(t, http.StatusOK, `{}`)
	ts := newTestServer(t, up.srv.URL)

	resp := ts.request(t, http.MethodPost, "/api/weather/dailyHistory", cityBody, ts.sessionCookie(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	expectedStart, expectedEnd := weatherbit.HistoryRange(time.Now())
	query := up.query()
	assert.Equal(t, "/history/daily", up.path())
	assert.Equal(t, expectedStart, query.Get("start_date"))
	assert.Equal(t, expectedEnd, query.Get("end_date"))
}

func TestWeatherHandler_Validation(t *testing.T) {
	up := newFakeUpstream(t, http.StatusOK, `{}`)
	ts := newTestServer(t, up.srv.URL)
	cookie := ts.sessionCookie(t)

	paths := []string{
		"/api/weather/currentWeather",
		"/api/weather/dailyForecast",
		"/api/weather/dailyHistory",
		"/api/weather/weatherAlerts",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			// Country without city
			resp := ts.request(t, http.MethodPost, path, map[string]string{"country": "ZA"}, cookie)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body map[string]string
			decodeJSON(t, resp, &body)
			assert.Equal(t, "Provide a city and country", body["error"])

			// Blank city
			resp = ts.request(t, http.MethodPost, path, map[string]string{"city": "   ", "country": "ZA"}, cookie)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestWeatherHandler_UpstreamErrorRelay(t *testing.T) {
	up := newFakeUpstream(t, http.StatusServiceUnavailable, "Upstream failed")
	ts := newTestServer(t, up.srv.URL)

	resp := ts.request(t, http.MethodPost, "/api/weather/currentWeather", cityBody, ts.sessionCookie(t))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body struct {
		Error   string `json:"error"`
		Status  int    `json:"status"`
		Details string `json:"details"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Upstream Weatherbit error", body.Error)
	assert.Equal(t, http.StatusServiceUnavailable, body.Status)
	assert.Equal(t, "Upstream failed", body.Details)
}

func TestWeatherHandler_NetworkError(t *testing.T) {
	// An upstream that is no longer listening produces a transport error.
	up := newFakeUpstream(t, http.StatusOK, `{}`)
	upstreamURL := up.srv.URL
	up.srv.Close()

	ts := newTestServer(t, upstreamURL)

	resp := ts.request(t, http.MethodPost, "/api/weather/currentWeather", cityBody, ts.sessionCookie(t))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Network error contacting Weatherbit", body.Error)
	assert.NotEmpty(t, body.Details)
}

func TestWeatherHandler_MissingAPIKey(t *testing.T) {
	up := newFakeUpstream(t, http.StatusOK, `{}`)
	ts := newTestServer(t, up.srv.URL)
	ts.cfg.WeatherbitAPIKey = ""

	resp := ts.request(t, http.MethodPost, "/api/weather/currentWeather", cityBody, ts.sessionCookie(t))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Server missing WEATHERBIT_API_KEY", body["error"])
}

func TestWeatherHandler_LegacyCurrent(t *testing.T) {
	up := newFakeUpstream(t, http.StatusOK, `{"count":1}`)
	ts := newTestServer(t, up.srv.URL)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		check          func(t *testing.T, query url.Values)
	}{
		{
			name:           "coordinates",
			query:          "?lat=-25.75&lon=28.19",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, query url.Values) {
				assert.Equal(t, "-25.75", query.Get("lat"))
				assert.Equal(t, "28.19", query.Get("lon"))
			},
		},
		{
			name:           "city with country",
			query:          "?city=Pretoria&country=ZA",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, query url.Values) {
				assert.Equal(t, "Pretoria", query.Get("city"))
				assert.Equal(t, "ZA", query.Get("country"))
			},
		},
		{
			name:           "city only",
			query:          "?city=Pretoria",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no parameters",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "lat without lon",
			query:          "?lat=-25.75",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No session cookie: the legacy endpoint is ungated.
			resp := ts.request(t, http.MethodGet, "/api/weather"+tt.query, nil, nil)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusBadRequest {
				var body map[string]string
				decodeJSON(t, resp, &body)
				assert.Equal(t, "Provide lat+lon or city", body["error"])
				return
			}
			if tt.check != nil {
				tt.check(t, up.query())
			}
		})
	}
}
