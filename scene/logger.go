package scene

import (
	"context"
	"log/slog"
	"sync/atomic"

	"fractal-explorer/renderer"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger for this package and the renderer it
// drives. Passing nil silences both.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
	renderer.SetLogger(l.With("component", "renderer"))
}

// Logger returns the current scene logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
