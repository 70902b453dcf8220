package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const apiPrefix = "/api/v1/"

// SetRoutes registers the JSON API on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/api/v1/industries", api.industriesHandler)
	router.HandlerFunc(http.MethodGet, "/api/v1/industries/:slug", api.industryHandler)
	router.HandlerFunc(http.MethodGet, "/api/v1/sectors", api.sectorsHandler)
	router.HandlerFunc(http.MethodGet, "/api/v1/view", api.viewHandler)
	router.HandlerFunc(http.MethodPost, "/api/v1/selection/industry", api.selectIndustryHandler)
	router.HandlerFunc(http.MethodPost, "/api/v1/selection/sensitivity", api.adjustSensitivityHandler)
	router.HandlerFunc(http.MethodGet, "/api/v1/current-time", api.currentTimeHandler)
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)

	router.NotFound = http.HandlerFunc(api.notFoundHandler)
}

// Middleware wraps next in request logging, security headers, compression
// and rate limiting, outermost first.
func (api *RestAPI) Middleware(next http.Handler) http.Handler {
	handler := api.rateLimiter.Handler(next)
	handler = CompressionMiddleware(handler)
	handler = securityHeaders(handler)
	return NewRequestLoggingMiddleware(api.Logger)(handler)
}

func (api *RestAPI) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	if isAPIPath(r.URL.Path) {
		api.sendNotFound(w, r)
		return
	}
	http.NotFound(w, r)
}
