// Package logging builds the CLI's zerolog logger and routes compiler
// diagnostics into it.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnyUserName/trc/internal/transform"
)

// New constructs a logger writing to w. format is "console" or "json";
// level is any zerolog level name ("debug", "info", ...).
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	switch format {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

// maxSrcLen caps how much of an overlay source is logged.
const maxSrcLen = 80

// Observer returns a transform.Observer that logs each diagnostic on log.
func Observer(log zerolog.Logger) transform.Observer {
	return transform.ObserverFunc(func(d transform.Diagnostic) {
		ev := log.Info()
		if d.Severity == transform.SeverityWarn {
			ev = log.Warn()
		}
		src := d.Src
		if len(src) > maxSrcLen {
			src = src[:maxSrcLen] + "..."
		}
		ev.Str("code", d.Code).
			Int("overlay", d.Overlay).
			Str("src", src).
			Msg(d.Message)
	})
}
