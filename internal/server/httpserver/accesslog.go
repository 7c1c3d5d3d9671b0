package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/robbyt/go-supervisor/runnables/httpserver"
)

// AccessLog returns a middleware that logs one line per request. 5xx responses log at error
// and 4xx at warn.
func AccessLog(logger *slog.Logger) httpserver.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.WithGroup("http")

	return func(rp *httpserver.RequestProcessor) {
		r := rp.Request()
		start := time.Now()

		rp.Next()

		status := rp.Writer().Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		logger.LogAttrs(r.Context(), level, "HTTP request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Int("size", rp.Writer().Size()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}
