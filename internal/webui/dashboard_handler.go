package webui

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"pathways.rf2lab.org/internal/dashboard"
	"pathways.rf2lab.org/internal/logging"
	"pathways.rf2lab.org/internal/models"
	"pathways.rf2lab.org/internal/utils"
)

const (
	msgUnknownIndustry    = "Unknown industry. Choose one of the listed industries."
	msgInvalidSensitivity = "Sensitivity must be a number."
)

func (webUI *WebUI) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "dashboard page failed", err,
		slog.String("path", r.URL.Path))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (webUI *WebUI) writePage(w http.ResponseWriter, r *http.Request, status int, view models.View, errMsg string) {
	var buf bytes.Buffer
	if err := webUI.pages.Render(&buf, view, errMsg); err != nil {
		webUI.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// selectIndustry applies a requested industry to the session. It reports a
// user-facing message when the request is rejected.
func selectIndustry(s *dashboard.Session, raw string) (string, error) {
	name := utils.SanitizeInput(raw)
	if err := utils.ValidateIndustryName(name); err != nil {
		return msgUnknownIndustry, nil
	}
	if _, err := s.SelectIndustry(name); err != nil {
		if errors.Is(err, dashboard.ErrInvalidSelection) {
			return msgUnknownIndustry, nil
		}
		return "", err
	}
	return "", nil
}

// indexHandler renders the session's dashboard. ?industry= preselects.
func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	var (
		view   models.View
		errMsg string
	)
	err := webUI.WithSession(w, r, func(s *dashboard.Session) error {
		if q := r.URL.Query(); q.Has("industry") {
			msg, err := selectIndustry(s, q.Get("industry"))
			if err != nil {
				return err
			}
			errMsg = msg
		}
		view = s.View()
		return nil
	})
	if err != nil {
		webUI.serverError(w, r, err)
		return
	}

	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusBadRequest
	}
	webUI.writePage(w, r, status, view, errMsg)
}

func (webUI *WebUI) selectHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		webUI.rejected(w, r, msgUnknownIndustry)
		return
	}

	var (
		view   models.View
		errMsg string
	)
	err := webUI.WithSession(w, r, func(s *dashboard.Session) error {
		msg, err := selectIndustry(s, r.PostForm.Get("industry"))
		errMsg = msg
		view = s.View()
		return err
	})
	if err != nil {
		webUI.serverError(w, r, err)
		return
	}

	if errMsg != "" {
		webUI.writePage(w, r, http.StatusBadRequest, view, errMsg)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (webUI *WebUI) sensitivityHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		webUI.rejected(w, r, msgInvalidSensitivity)
		return
	}

	value, parseErr := utils.ParseSensitivity(r.PostForm.Get("sensitivity"))

	var view models.View
	err := webUI.WithSession(w, r, func(s *dashboard.Session) error {
		if parseErr != nil {
			view = s.View()
			return nil
		}
		var err error
		view, err = s.AdjustCostSensitivity(value)
		return err
	})
	if err != nil {
		webUI.serverError(w, r, err)
		return
	}

	if parseErr != nil {
		webUI.writePage(w, r, http.StatusBadRequest, view, msgInvalidSensitivity)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// rejected re-renders the current view with an inline message.
func (webUI *WebUI) rejected(w http.ResponseWriter, r *http.Request, msg string) {
	var view models.View
	err := webUI.WithSession(w, r, func(s *dashboard.Session) error {
		view = s.View()
		return nil
	})
	if err != nil {
		webUI.serverError(w, r, err)
		return
	}
	webUI.writePage(w, r, http.StatusBadRequest, view, msg)
}
