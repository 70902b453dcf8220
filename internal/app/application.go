package app

import (
	"fmt"
	"log/slog"
	"time"

	"pathways.rf2lab.org/internal/appconf"
	"pathways.rf2lab.org/internal/dashboard"
	"pathways.rf2lab.org/internal/dataset"
	"pathways.rf2lab.org/internal/logging"
	"pathways.rf2lab.org/internal/models"
	"pathways.rf2lab.org/internal/session"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Dataset  *dataset.Dataset
	Renderer *dashboard.Renderer
	Sessions *session.Store
}

// New loads the dataset, builds the renderer and starts the session store.
// Call Close to stop the store's background sweeper.
func New(cfg appconf.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	ds, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	logging.LogOperation(logger, "dataset_loaded",
		slog.String("source", ds.Source()),
		slog.Int("industries", len(ds.Industries())),
		slog.Int("sectors", len(ds.Sectors())),
		slog.Duration("duration", time.Since(start)))

	renderer, err := dashboard.NewRenderer(ds, cfg.DashboardOptions())
	if err != nil {
		return nil, err
	}

	application := &Application{
		Config:   cfg,
		Logger:   logger,
		Dataset:  ds,
		Renderer: renderer,
	}

	sweep := cfg.SessionTTL / 2
	if sweep > 5*time.Minute {
		sweep = 5 * time.Minute
	}
	store, err := session.NewStore(application.newSession, cfg.SessionTTL, sweep)
	if err != nil {
		return nil, err
	}
	application.Sessions = store
	return application, nil
}

// newSession creates dashboard state for a fresh session and logs every
// re-render it goes through.
func (app *Application) newSession(id string) (*dashboard.Session, error) {
	s, err := dashboard.NewSession(app.Renderer)
	if err != nil {
		return nil, err
	}
	logger := app.Logger.With(slog.String("session", id), slog.String("component", "dashboard"))
	s.Subscribe(func(sel dashboard.Selection, view models.View) {
		logger.Debug("view_rendered",
			slog.String("industry", sel.Industry),
			slog.Float64("sensitivity", sel.Sensitivity),
			slog.Float64("estimate", view.Cost.Estimate))
	})
	logging.LogOperation(logger, "session_created")
	return s, nil
}

// Close releases background resources.
func (app *Application) Close() {
	if app.Sessions != nil {
		app.Sessions.Stop()
	}
}
