// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("exercise loaded", slog.String("file", name))
//
// Options select the level, output format, timestamp layout, caller
// information and terminal styling:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// The zero [Logger] discards everything, so library types can hold one
// unconditionally and let callers opt in with a real logger.
//
// # Levels
//
// Besides the slog levels, [LevelTrace] sits below [LevelDebug] and is used
// for step-by-step tracing of expression evaluation.
//
// # Package Logger
//
// Package-level functions ([Info], [Error], ...) write to a default logger
// on standard error, reconfigured with [Config].
//
// # Pretty Output
//
// With [WithPretty] enabled, keys and values are styled with lipgloss.
// Styling is dropped when the output is not a terminal. With [FormatJSON],
// pretty output is an indented block per record rather than strict JSON.
package log
