// Package logger builds the console slog handler used by the command line
// tools.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// New returns a logger writing human readable records to w.
//
// Color is used only when w is a terminal and noColor is false.
func New(w io.Writer, level slog.Leveler, noColor bool) *slog.Logger {
	if f, ok := w.(*os.File); ok {
		noColor = noColor || !isatty.IsTerminal(f.Fd())
		w = colorable.NewColorable(f)
	} else {
		noColor = true
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:     noColor,
		ReplaceAttr: dropZero,
	}))
}

// Initialize installs a logger on w as the process default and returns it.
func Initialize(w io.Writer, level slog.Leveler, noColor bool) *slog.Logger {
	l := New(w, level, noColor)
	slog.SetDefault(l)
	return l
}

// Named returns the default logger tagged with name.
func Named(name string) *slog.Logger {
	return slog.Default().With("name", name)
}

// ParseLevel converts debug, info, warn or error to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", s)
	}
}

// dropZero removes attributes holding a zero value.
func dropZero(_ []string, a slog.Attr) slog.Attr {
	skip := false
	switch t := a.Value.Any().(type) {
	case string:
		skip = t == ""
	case bool:
		skip = !t
	case uint64:
		skip = t == 0
	case int64:
		skip = t == 0
	case float64:
		skip = t == 0
	case time.Time:
		skip = t.IsZero()
	case time.Duration:
		skip = t == 0
	case nil:
		skip = true
	}
	if skip {
		return slog.Attr{}
	}
	return a
}
