package webui

import (
	"embed"
	"io/fs"
	"net/http"

	"pathways.rf2lab.org/internal/app"
)

//go:embed static
var staticFS embed.FS

// WebUI serves the HTML dashboard.
type WebUI struct {
	*app.Application
	pages *PageRenderer
}

// NewWebUI parses templates and narrative up front so a broken build fails
// at startup rather than on the first request.
func NewWebUI(application *app.Application) (*WebUI, error) {
	pages, err := NewPageRenderer(application.Config.Theme)
	if err != nil {
		return nil, err
	}
	return &WebUI{Application: application, pages: pages}, nil
}

// Pages returns the page renderer.
func (webUI *WebUI) Pages() *PageRenderer {
	return webUI.pages
}

func staticFiles() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
