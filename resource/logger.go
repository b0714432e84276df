package resource

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false, so disabled
// log calls skip attribute formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	silent    = slog.New(nopHandler{})
	loggerPtr atomic.Pointer[slog.Logger]
)

func init() { loggerPtr.Store(silent) }

// Logger returns the logger shared by every rendergraph package.
// It is silent until SetLogger installs one. Safe for concurrent use.
func Logger() *slog.Logger { return loggerPtr.Load() }

// SetLogger installs l as the shared logger. Nil restores silence.
// Most callers use rendergraph.SetLogger, which forwards here.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	loggerPtr.Store(l)
}

func slogger() *slog.Logger { return loggerPtr.Load() }
