package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs one line per request. Server errors log at error level,
// client errors at warn. Webhook deliveries carry their svix-id so retries of
// the same message can be correlated.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", chimw.GetReqID(r.Context())),
			slog.String("remote_addr", r.RemoteAddr),
		}
		if id := r.Header.Get("svix-id"); id != "" {
			attrs = append(attrs, slog.String("svix_id", id))
		}
		s.logger.LogAttrs(r.Context(), statusLevel(ww.Status()), "http request", attrs...)
	})
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
