package rendergraph

import (
	"log/slog"

	"github.com/gogpu/rendergraph/resource"
)

// SetLogger configures the logger for rendergraph and all its sub-packages.
// By default, rendergraph produces no log output. Pass nil to restore the
// silent default. SetLogger is safe for concurrent use.
//
// Log levels used by rendergraph:
//   - [slog.LevelDebug]: resource create, update, alias and release
//   - [slog.LevelInfo]: graph setup, resize and teardown
//   - [slog.LevelWarn]: mutations during Execute, pruned entries, failed passes
//
// Example:
//
//	rendergraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) { resource.SetLogger(l) }

// Logger returns the current logger. The halctx and passes packages log
// through it.
func Logger() *slog.Logger { return resource.Logger() }
