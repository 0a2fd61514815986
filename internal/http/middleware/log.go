package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type responseWriter struct {
	http.ResponseWriter

	status  int
	written int
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.status = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Log writes one line per request. Server errors are logged at warn level.
func Log(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			schema := "http"
			if r.TLS != nil {
				schema = "https"
			}

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			now := time.Now()

			next.ServeHTTP(rw, r)

			fields := []zap.Field{
				zap.Duration("delay", time.Since(now)),
				zap.String("method", r.Method),
				zap.String("schema", schema),
				zap.String("uri", r.URL.RequestURI()),
				zap.Int("status", rw.status),
				zap.Int("response_length", rw.written),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			}
			if rw.status >= http.StatusInternalServerError {
				log.Warn("request served", fields...)
				return
			}
			log.Info("request served", fields...)
		})
	}
}
