package logger

import (
	"io"
	"log/slog"
	"os"
)

// InitLogger initializes the default slog logger from the given config,
// writing to stdout.
func InitLogger(cfg Config) {
	InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter initializes the default slog logger writing to w.
// Base attributes (service, version, environment) are attached to every
// record.
func InitLoggerWithWriter(cfg Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	handler = handler.WithAttrs(cfg.BaseAttributes())
	slog.SetDefault(slog.New(handler))
}
