package frameview

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for frameview and its sub-packages.
// By default frameview produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by frameview:
//   - [slog.LevelDebug]: geometry and resource sizes on resize and upload
//   - [slog.LevelInfo]: lifecycle events (adapter selected, resources built or released)
//   - [slog.LevelWarn]: swallowed failures (surface reconfigure, vertex rewrite, suboptimal swapchain)
//
// Example:
//
//	frameview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by frameview.
// Sub-packages (source, loop) call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
