package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	LogLevel  string `doc:"log from debug, info, warn or error"`
	LogFile   string `doc:"append logs to file, - for stdout"`
	LogFormat string `doc:"format logs as text or json"         default:"text"`
}

var levels = map[string]slog.Leveler{ //nolint: gochecknoglobals // lookup table
	"":      nil,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

var formats = map[string]func(io.Writer, *slog.HandlerOptions) slog.Handler{ //nolint: gochecknoglobals // lookup table
	"text": func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, o) },
	"json": func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewJSONHandler(w, o) },
}

// New returns a logger following options. Invalid options are reset to
// their default and the returned logger warns about each of them.
func New(options *Options) *slog.Logger {
	return newLogger(options, os.Stdout)
}

func newLogger(options *Options, stdout io.Writer) *slog.Logger {
	var warnings []func(*slog.Logger)

	level, ok := levels[strings.ToLower(options.LogLevel)]
	if !ok {
		invalid := options.LogLevel
		options.LogLevel = ""
		warnings = append(warnings, func(l *slog.Logger) { l.Warn("could not parse logger level", "level", invalid) })
	}

	format, ok := formats[strings.ToLower(options.LogFormat)]
	if !ok {
		invalid := options.LogFormat
		options.LogFormat = "text"
		format = formats["text"]
		warnings = append(warnings, func(l *slog.Logger) { l.Warn("could not parse logger format", "format", invalid) })
	}

	var output io.Writer
	switch options.LogFile {
	case "", "-":
		output = stdout
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		file, err := os.OpenFile(options.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			options.LogFile = ""
			output = stdout
			warnings = append(warnings, func(l *slog.Logger) { l.Warn("could not open logger file", "err", err) })
		} else {
			output = file
		}
	}

	logger := slog.New(format(output, &slog.HandlerOptions{Level: level}))
	for _, warn := range warnings {
		warn(logger)
	}
	return logger
}
