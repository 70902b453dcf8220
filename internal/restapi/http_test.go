package restapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"pathways.rf2lab.org/internal/app"
	"pathways.rf2lab.org/internal/appconf"
	"pathways.rf2lab.org/internal/logging"
)

// envelope mirrors models.ResponseModel with a typed data field.
type envelope[T any] struct {
	Code        int                 `json:"code"`
	CurrentTime int64               `json:"currentTime"`
	Data        T                   `json:"data"`
	Text        string              `json:"text"`
	Version     int                 `json:"version"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// createTestApi creates a RestAPI over the embedded dataset with rate limiting off.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.RateLimit = 0

	application, err := app.New(cfg, logging.NewStructuredLogger(io.Discard, slog.LevelInfo))
	require.NoError(t, err)

	api := NewRestAPI(application)
	t.Cleanup(func() {
		api.Stop()
		application.Close()
	})
	return api
}

// testServer serves api behind its full middleware chain. The returned
// client keeps cookies so consecutive calls share a session.
func testServer(t *testing.T, api *RestAPI) (*httptest.Server, *http.Client) {
	t.Helper()
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(api.Middleware(router))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return server, &http.Client{Jar: jar}
}

func decodeEnvelope[T any](t *testing.T, resp *http.Response) envelope[T] {
	t.Helper()
	defer logging.SafeCloseWithLogging(resp.Body, slog.Default(), "http_response_body")

	var out envelope[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func getEndpoint[T any](t *testing.T, client *http.Client, url string) (*http.Response, envelope[T]) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	return resp, decodeEnvelope[T](t, resp)
}

func postJSON[T any](t *testing.T, client *http.Client, url, body string) (*http.Response, envelope[T]) {
	t.Helper()
	resp, err := client.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp, decodeEnvelope[T](t, resp)
}
