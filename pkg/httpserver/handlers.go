package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/response"
	"github.com/dmitrymomot/response/pkg/logger"
)

// HealthHandler answers liveness and readiness probes. With no checks it
// reports {"status":"alive"}; otherwise every check must pass for
// {"status":"ready"}, and a failing one yields 503 {"status":"not_ready"}.
func HealthHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := response.New(w, r, response.WithLogger(log))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = res.Set("Cache-Control", "no-store")

		if len(checks) == 0 {
			_ = res.JSON(map[string]string{"status": "alive"})
			return
		}
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				_ = res.Status(http.StatusServiceUnavailable)
				_ = res.JSON(map[string]string{"status": "not_ready"})
				return
			}
		}
		_ = res.JSON(map[string]string{"status": "ready"})
	}
}

// AccessLog logs one line per request once the handler returns.
func AccessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				// hijacked or never written
				status = http.StatusOK
			}
			log.InfoContext(r.Context(), "request",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Status(status),
				logger.Bytes(rec.written),
				logger.Duration(time.Since(start)),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.written += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach flush, deadline and hijack
// support of the wrapped writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
