package inspect

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/signalis/junction/mux"
)

// LoggingConfig configures the request logging inspector behaviour.
type LoggingConfig[T any] struct {
	// Logger receives the request records. Defaults to slog.Default.
	Logger *slog.Logger

	// Level is the level records are emitted at. Defaults to slog.LevelInfo.
	Level slog.Level

	// StartTime optionally extracts the request start time from the
	// metadata payload so the record can carry a duration. When nil, no
	// duration attribute is logged.
	StartTime func(c *mux.Context[T]) time.Time

	// Attrs optionally extracts extra attributes from the metadata payload,
	// appended to every record.
	Attrs func(c *mux.Context[T]) []slog.Attr
}

// Logging returns an inspector whose response hook emits one structured log
// record per request with the method, path, status, and response size.
func Logging[T any](cfg LoggingConfig[T]) mux.Inspector[T] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return mux.Inspector[T]{
		Response: func(r *http.Request, resp *mux.Response, c *mux.Context[T]) {
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", resp.StatusCode()),
				slog.Int("size", len(resp.Body())),
			}

			if cfg.StartTime != nil {
				if start := cfg.StartTime(c); !start.IsZero() {
					attrs = append(attrs, slog.Duration("duration", time.Since(start)))
				}
			}

			if cfg.Attrs != nil {
				attrs = append(attrs, cfg.Attrs(c)...)
			}

			logger.LogAttrs(r.Context(), cfg.Level, "request", attrs...)
		},
	}
}
