package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestLogger injects a per-request logger into the context and logs each
// request and response.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logger.With().Str("request_id", ksuid.New().String()).Logger()
			ctx := reqLogger.WithContext(r.Context())
			r = r.WithContext(ctx)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			zerolog.Ctx(ctx).Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Msg("Incoming request")

			next.ServeHTTP(rw, r)

			zerolog.Ctx(ctx).Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status_code", rw.statusCode).
				Dur("duration", time.Since(start)).
				Msg("Request completed")
		})
	}
}

// requireFunctionKey gates the data endpoints on the function key, accepted
// either as the code query parameter or the x-functions-key header, matching
// Azure Functions key auth.
func (s *Server) requireFunctionKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("code")
		if key == "" {
			key = r.Header.Get("x-functions-key")
		}
		if !s.keyMatches(key) {
			writeError(w, http.StatusUnauthorized, "invalid or missing function key")
			return
		}
		next.ServeHTTP(w, r)
	})
}
