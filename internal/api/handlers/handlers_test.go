package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weatherupdate/weatherupdate/internal/api"
	"github.com/weatherupdate/weatherupdate/internal/config"
	"github.com/weatherupdate/weatherupdate/internal/session"
	"github.com/weatherupdate/weatherupdate/internal/weatherbit"
)

const testAccessToken = "super-secret-token"

type testServer struct {
	*httptest.Server
	cfg   *config.Config
	codec *session.Codec
}

// newTestServer builds the full router against the given upstream base URL.
// Handlers read the config by pointer, so tests may mutate ts.cfg to
// simulate missing server configuration.
func newTestServer(t *testing.T, upstreamURL string) *testServer {
	t.Helper()

	cfg := &config.Config{
		Port:              "0",
		Environment:       "test",
		JWTSecret:         "test-secret",
		AppAccessToken:    testAccessToken,
		WeatherbitAPIKey:  "wb-key",
		WeatherbitBaseURL: upstreamURL,
	}

	codec := session.NewCodec(cfg.JWTSecret)
	weather := weatherbit.NewClient(cfg.WeatherbitBaseURL, cfg.WeatherbitAPIKey)

	srv := httptest.NewServer(api.NewRouter(cfg, codec, weather))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, cfg: cfg, codec: codec}
}

// sessionCookie issues a valid session cookie directly through the codec.
func (ts *testServer) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()

	token, err := ts.codec.Issue(session.RoleUser)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: token}
}

func (ts *testServer) request(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
