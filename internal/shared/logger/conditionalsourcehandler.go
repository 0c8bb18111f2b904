package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// sourceHandler attaches the caller location to records at or above
// minLevel. The wrapped handler must have AddSource disabled.
type sourceHandler struct {
	handler  slog.Handler
	minLevel slog.Level
}

// NewConditionalSourceHandler wraps handler so that only records at or above
// minLevel carry a source attribute. Info-level request logs stay compact
// while warnings and errors point at the offending line.
func NewConditionalSourceHandler(handler slog.Handler, minLevel slog.Level) slog.Handler {
	return &sourceHandler{handler: handler, minLevel: minLevel}
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.minLevel {
		// skip runtime.Callers, this frame and the slog internal frame
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		f, _ := runtime.CallersFrames(pcs[:]).Next()

		r.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: f.Function,
			File:     f.File,
			Line:     f.Line,
		}))
	}
	return h.handler.Handle(ctx, r)
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceHandler{handler: h.handler.WithAttrs(attrs), minLevel: h.minLevel}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{handler: h.handler.WithGroup(name), minLevel: h.minLevel}
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}
