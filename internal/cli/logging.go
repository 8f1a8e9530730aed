package cli

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger returns a text logger on w. verbose forces debug level;
// otherwise level is parsed from the config value, falling back to warn.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl := slog.LevelWarn
	if verbose {
		lvl = slog.LevelDebug
	} else {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(strings.TrimSpace(level))); err == nil {
			lvl = parsed
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
