// Package logger builds the slog logger shared by the CLI, the TUI and the
// REST server.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Options struct {
	Level   string // debug, info, warn, error; empty means info
	Format  string // text or json
	Logfile string // empty writes to Output
	Output  io.Writer
}

// New returns a logger for options and a func that closes its log file.
// Problems with the level, format or log file fall back to safe defaults and
// are reported through the returned logger rather than failing startup.
func New(options Options) (*slog.Logger, func() error) {
	var warnings []string

	var opts slog.HandlerOptions
	switch strings.ToLower(options.Level) {
	case "", "info":
		opts.Level = slog.LevelInfo
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
		warnings = append(warnings, fmt.Sprintf("could not parse logger level %q", options.Level))
	}

	output := options.Output
	if output == nil {
		output = os.Stderr
	}
	closer := func() error { return nil }
	switch options.Logfile {
	case "":
	case os.DevNull:
		return slog.New(slog.DiscardHandler), closer
	default:
		f, err := openLogfile(options.Logfile)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not open logger output: %v", err))
		} else {
			output = f
			closer = f.Close
		}
	}

	var handler slog.Handler
	switch strings.ToLower(options.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, &opts)
	case "", "text":
		handler = slog.NewTextHandler(output, &opts)
	default:
		handler = slog.NewTextHandler(output, &opts)
		warnings = append(warnings, fmt.Sprintf("could not parse logger format %q", options.Format))
	}

	logger := slog.New(handler)
	for _, w := range warnings {
		logger.Warn(w)
	}
	return logger, closer
}

func openLogfile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
