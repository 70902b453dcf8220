package app

import (
	"log/slog"
	"net/http"

	"pathways.rf2lab.org/internal/dashboard"
)

// SessionCookieName is the cookie that carries the session id.
const SessionCookieName = "rf2_session"

// SessionID returns the caller's session id, creating a session when the
// request has none or an expired one. The cookie is re-issued on every call
// so its lifetime tracks the server-side idle timeout.
func (app *Application) SessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	var current string
	if c, err := r.Cookie(SessionCookieName); err == nil {
		current = c.Value
	}

	id, created, err := app.Sessions.Ensure(current)
	if err != nil {
		return "", err
	}
	if created && current != "" {
		app.Logger.Debug("session_replaced", slog.String("component", "sessions"))
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(app.Config.SessionTTL.Seconds()),
	})
	return id, nil
}

// WithSession runs fn against the caller's dashboard session.
func (app *Application) WithSession(w http.ResponseWriter, r *http.Request, fn func(*dashboard.Session) error) error {
	id, err := app.SessionID(w, r)
	if err != nil {
		return err
	}
	return app.Sessions.With(id, fn)
}
