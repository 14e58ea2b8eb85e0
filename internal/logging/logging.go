// Package logging initializes the process-wide slog logger. CLI runs log
// quietly to stderr; the serve command logs to a rotated file by default.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dklevakin/ai-map/internal/appdirs"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

// Mode selects the logging defaults for the kind of process being started.
type Mode int

const (
	ModeCLI Mode = iota + 1
	ModeServe
)

func (m Mode) String() string {
	if m == ModeServe {
		return "serve"
	}
	return "cli"
}

const (
	EnvLogLevel  = "AI_MAP_LOG_LEVEL"
	EnvLogFormat = "AI_MAP_LOG_FORMAT"
	EnvLogSink   = "AI_MAP_LOG_SINK"
	EnvLogFile   = "AI_MAP_LOG_FILE"
)

// Options configures Init.
type Options struct {
	App     string
	Version string
	Mode    Mode

	Level  string
	Format string
	Sink   string
	File   string
}

func (o Options) withEnv() Options {
	apply := func(dst *string, env string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	apply(&o.Level, EnvLogLevel)
	apply(&o.Format, EnvLogFormat)
	apply(&o.Sink, EnvLogSink)
	apply(&o.File, EnvLogFile)
	return o
}

func (o Options) withDefaults() Options {
	if o.App == "" {
		o.App = "ai-map"
	}
	if o.Mode == 0 {
		o.Mode = ModeCLI
	}
	if o.Level == "" {
		if o.Mode == ModeServe {
			o.Level = "info"
		} else {
			o.Level = "error"
		}
	}
	if o.Format == "" {
		if o.Mode == ModeServe {
			o.Format = string(FormatJSON)
		} else {
			o.Format = string(FormatText)
		}
	}
	if o.Sink == "" {
		if o.Mode == ModeServe {
			o.Sink = string(SinkFile)
		} else {
			o.Sink = string(SinkStderr)
		}
	}
	return o
}

func (o Options) validate() error {
	switch Format(o.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("logging: invalid format %q", o.Format)
	}
	switch Sink(o.Sink) {
	case SinkStderr, SinkFile, SinkNone:
	default:
		return fmt.Errorf("logging: invalid sink %q", o.Sink)
	}
	switch strings.ToLower(o.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging: invalid level %q", o.Level)
	}
	return nil
}

// Init builds the logger from options, env overrides applied last, and
// installs it as the slog default. The returned func closes the sink.
func Init(opts Options) (func() error, error) {
	opts = opts.withDefaults().withEnv()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	writer, closeFn, err := resolveWriter(opts)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var handler slog.Handler
	if Format(opts.Format) == FormatJSON {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	logger := slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("mode", opts.Mode.String()),
	)
	slog.SetDefault(logger)
	return closeFn, nil
}

func parseLevel(value string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func resolveWriter(opts Options) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch Sink(opts.Sink) {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkStderr:
		return os.Stderr, noop, nil
	default:
		path := strings.TrimSpace(opts.File)
		if path == "" {
			dir, err := appdirs.CacheDir()
			if err != nil {
				return nil, nil, err
			}
			path = filepath.Join(dir, "ai-map.log")
		} else if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    20,
			MaxBackups: 5,
			MaxAge:     7,
			Compress:   true,
		}
		return rot, rot.Close, nil
	}
}
