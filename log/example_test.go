package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/ilc/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))
	logger.Info("compiled", slog.String("file", "out.js"))
	// Output: level=INFO msg=compiled file=out.js
}

func Example_levels() {
	logger := log.Make(os.Stdout, log.WithLevel(log.LevelWarn), log.WithTimeLayout("none"))

	logger.Trace("trace message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	// Output: level=WARN msg="warning message" key=value
}

func Example_jsonFormat() {
	logger := log.Make(os.Stdout, log.WithFormat(log.FormatJSON), log.WithTimeLayout("none"))
	logger.Error("compile failed", slog.String("name", "x"))
	// Output: {"level":"ERROR","msg":"compile failed","name":"x"}
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stdout, log.WithTimeLayout("none")).
		With(slog.String("backend", "js"))
	logger.InfoContext(ctx, "lowering block")
	// Output: level=INFO msg="lowering block" backend=js
}
