package logging

import (
	"log/slog"
	"os"
)

// Options mirrors the CLI's verbosity flags.
type Options struct {
	Debug   bool
	Quiet   bool
	Verbose bool
}

// Configure installs a Handler on the global slog default logger based
// on opts, writing to stderr with color enabled only when stderr is a
// terminal.
func Configure(opts Options) {
	level := slog.LevelInfo
	switch {
	case opts.Debug:
		level = slog.LevelDebug
	case opts.Quiet:
		level = slog.LevelWarn
	}

	handler := New(os.Stderr, level, isTerminal(os.Stderr)).WithSource(opts.Verbose)
	slog.SetDefault(slog.New(handler))
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
