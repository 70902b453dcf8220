package restapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pathways.rf2lab.org/internal/app"
	"pathways.rf2lab.org/internal/logging"
)

// Request surfaces reported in the access log.
const (
	surfaceAPI    = "api"
	surfaceHTML   = "html"
	surfaceStatic = "static"
)

// statusRecorder captures the status code and body size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(p []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(p)
	rw.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// requestSurface classifies a path as JSON API, static asset or dashboard page.
func requestSurface(path string) string {
	switch {
	case isAPIPath(path), path == "/healthz":
		return surfaceAPI
	case strings.HasPrefix(path, "/static/"):
		return surfaceStatic
	default:
		return surfaceHTML
	}
}

// NewRequestLoggingMiddleware logs one line per request and puts logger on
// the request context for handlers further down the chain.
func NewRequestLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			_, cookieErr := r.Cookie(app.SessionCookieName)

			r = r.WithContext(logging.WithLogger(r.Context(), logger))
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			// The query string is left out; it can carry form input.
			logging.LogHTTPRequest(logger,
				r.Method,
				r.URL.Path,
				rec.status,
				float64(time.Since(start).Nanoseconds())/1e6,
				slog.String("surface", requestSurface(r.URL.Path)),
				slog.Bool("has_session", cookieErr == nil),
				slog.Int("bytes", rec.bytes),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.String("component", "http_server"))
		})
	}
}
