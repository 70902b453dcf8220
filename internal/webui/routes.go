package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"pathways.rf2lab.org/internal/appconf"
)

// SetWebUIRoutes registers the HTML pages and static assets. The debug page
// is only mounted in development.
func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", webUI.indexHandler)
	router.HandlerFunc(http.MethodPost, "/select", webUI.selectHandler)
	router.HandlerFunc(http.MethodPost, "/sensitivity", webUI.sensitivityHandler)
	router.ServeFiles("/static/*filepath", staticFiles())

	if webUI.Config.Env == appconf.Development {
		router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
	}
}
