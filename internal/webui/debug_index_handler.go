package webui

import (
	"bytes"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"pathways.rf2lab.org/internal/dashboard"
)

var debugDataTypes = []string{"profiles", "sectors", "selection", "config"}

type debugData struct {
	Title string
	Pre   string
	Types []string
}

var debugSpew = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	var buf bytes.Buffer
	err := webUI.pages.tmpl.ExecuteTemplate(&buf, "debug_index.html", debugData{
		Title: title,
		Pre:   debugSpew.Sdump(data),
		Types: debugDataTypes,
	})
	if err != nil {
		webUI.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "profiles":
		data = webUI.Dataset.Industries()
		title = "Dataset - Industry profiles (" + webUI.Dataset.Source() + ")"
	case "sectors":
		data = webUI.Dataset.Sectors()
		title = "Dataset - IPCC sectors"
	case "selection":
		var sel dashboard.Selection
		err := webUI.WithSession(w, r, func(s *dashboard.Session) error {
			sel = s.Selection()
			return nil
		})
		if err != nil {
			webUI.serverError(w, r, err)
			return
		}
		data = sel
		title = "Session - Selection"
	case "config":
		data = webUI.Config
		title = "Runtime configuration"
	default:
		data = map[string]string{
			"error": "Please use one of the following: profiles, sectors, selection, config.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, r, title, data)
}
