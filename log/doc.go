// Package log provides a concurrency-safe leveled logger built on
// [log/slog].
//
// Time formatting, caller information, output format and styling are
// fixed when a [Logger] is created with functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("compiled", slog.String("file", "out.js"))
//	logger.Error("compile failed", slog.Any("error", err))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// Attributes added with [Logger.With] are included in every subsequent
// message.
//
// # Context-Aware Logging
//
// Each level has a context-aware and a context-unaware variant. The
// context-unaware variants use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used for per-statement
// compiler tracing. Messages below the configured level are discarded.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON] are supported. When the output is
// a terminal and pretty output is enabled, records are styled with
// lipgloss; other writers receive the plain [slog] handlers.
//
// The package-level functions ([Info], [Config], and so on) operate on a
// shared default logger that writes to standard error.
package log
