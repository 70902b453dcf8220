package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pathways.rf2lab.org/internal/appconf"
	"pathways.rf2lab.org/internal/logging"
)

func TestServeAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := appconf.Default()
	cfg.Env = appconf.Test
	s, err := newServer(cfg, logging.NewStructuredLogger(io.Discard, slog.LevelInfo))
	require.NoError(t, err)
	defer s.close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	base := "http://" + ln.Addr().String()

	for path, wantType := range map[string]string{
		"/healthz":              "application/json",
		"/api/v1/industries":    "application/json",
		"/":                     "text/html; charset=utf-8",
		"/static/dashboard.css": "text/css; charset=utf-8",
	} {
		resp, err := client.Get(base + path)
		require.NoError(t, err, path)
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, wantType, resp.Header.Get("Content-Type"), path)
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"), path)
	}

	resp, err := client.Get(base + "/debug/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "debug page is development only")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not shut down")
	}
}

func TestNewServerFailsOnBadDataset(t *testing.T) {
	cfg := appconf.Default()
	cfg.DatasetPath = "does-not-exist.yaml"

	_, err := newServer(cfg, logging.NewStructuredLogger(io.Discard, slog.LevelInfo))
	require.Error(t, err)
}
