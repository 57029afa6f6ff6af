// Package logger is the JSON slog logger shared by the API, the worker and
// the migrator. Records written through a *Context method pick up the OTel
// trace, the chi request id and any attributes bound with WithAttrs, such as
// the visitor's cart id set by the session middleware.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ghuser/reactiveshop/pkg/config"
)

// Logger is the logging interface every package depends on.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	DebugContext(ctx context.Context, msg string, args ...any)
	// With binds key-value pairs to every record of the returned Logger.
	With(args ...any) Logger
}

// New returns a Logger writing JSON to stdout at cfg.LogLevel.
func New(cfg *config.Config) Logger {
	return newJSON(os.Stdout, parseLevel(cfg.LogLevel))
}

func newJSON(w io.Writer, level slog.Level) Logger {
	h := &contextHandler{next: slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})}
	return &slogLogger{Logger: slog.New(h)}
}

// slogLogger gets every method but With from the embedded *slog.Logger.
type slogLogger struct {
	*slog.Logger
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{Logger: l.Logger.With(args...)}
}

// parseLevel accepts slog level names in any case ("debug", "WARN", "info+2").
// Anything else logs at info.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
