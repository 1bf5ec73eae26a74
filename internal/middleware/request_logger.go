package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/baharkarakas/fameflow-backend/internal/logger"
)

// RequestLogger puts a request-scoped logger in the context and logs one
// line per request once it completes.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := base.With(
				"request_id", RequestIDFrom(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"remote_ip", ClientIP(r),
			)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r.WithContext(logger.IntoContext(r.Context(), l)))

			dur := time.Since(start).Milliseconds()
			route := routePattern(r)
			switch {
			case rec.status >= 500:
				l.Error("request completed", "route", route, "status", rec.status, "duration_ms", dur)
			case rec.status >= 400:
				l.Warn("request completed", "route", route, "status", rec.status, "duration_ms", dur)
			default:
				l.Info("request completed", "route", route, "status", rec.status, "duration_ms", dur)
			}
		})
	}
}

// ClientIP is the remote host without port. Behind a proxy, chi's RealIP
// middleware has already rewritten RemoteAddr.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
