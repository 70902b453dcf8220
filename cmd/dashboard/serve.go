package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"

	"pathways.rf2lab.org/internal/app"
	"pathways.rf2lab.org/internal/appconf"
	"pathways.rf2lab.org/internal/logging"
	"pathways.rf2lab.org/internal/restapi"
	"pathways.rf2lab.org/internal/webui"
)

const shutdownTimeout = 10 * time.Second

// server owns the application and everything that must be stopped with it.
type server struct {
	app    *app.Application
	api    *restapi.RestAPI
	webUI  *webui.WebUI
	logger *slog.Logger
}

func newServer(cfg appconf.Config, logger *slog.Logger) (*server, error) {
	application, err := app.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	webUI, err := webui.NewWebUI(application)
	if err != nil {
		application.Close()
		return nil, err
	}

	return &server{
		app:    application,
		api:    restapi.NewRestAPI(application),
		webUI:  webUI,
		logger: logger,
	}, nil
}

// routes mounts the JSON API and the HTML pages on one router behind the
// shared middleware chain.
func (s *server) routes() http.Handler {
	router := httprouter.New()
	s.api.SetRoutes(router)
	s.webUI.SetWebUIRoutes(router)
	return s.api.Middleware(router)
}

// serve runs until ctx is cancelled or the listener fails, then shuts down
// gracefully.
func (s *server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.routes(),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	logging.LogOperation(s.logger, "server_started",
		slog.String("addr", ln.Addr().String()),
		slog.String("env", s.app.Config.Env.String()))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logging.LogOperation(s.logger, "server_stopping")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	logging.LogOperation(s.logger, "server_stopped")
	return nil
}

func (s *server) close() {
	s.api.Stop()
	s.app.Close()
}

func (c *cli) runServe(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := c.newLogger(cfg)
	if err != nil {
		return err
	}

	s, err := newServer(cfg, logger)
	if err != nil {
		logging.LogError(logger, "failed to start", err)
		return err
	}
	defer s.close()

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		logging.LogError(logger, "failed to listen", err, slog.String("addr", cfg.Addr()))
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.serve(ctx, ln); err != nil {
		logging.LogError(logger, "server failed", err)
		return err
	}
	return nil
}
