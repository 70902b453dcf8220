package restapi

import (
	"time"

	"pathways.rf2lab.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter.
// Call Stop when the server shuts down.
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Stop releases the rate limiter's cleanup goroutine.
func (api *RestAPI) Stop() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
