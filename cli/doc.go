// Package cli contains the command line interface for equex.
//
// # Usage
//
//	equex [flags] [run] [FILE]        execute an exercise (default zad.txt)
//	equex eval [flags] EXPR           evaluate one expression
//	equex repl [FILE]                 interactive shell
//	equex init [--force]              write the configuration file
//
// Relative exercise names not found in the working directory are searched
// for in each --path directory, then in each directory of $EQUEX_PATH.
//
// # Configuration
//
// Flag defaults are read from config.yaml and config.json in the user
// configuration directory (for example ~/.config/equex). Keys are flag names
// with hyphens or underscores:
//
//	log_level: debug
//	path:
//	  - ~/exercises
//	precision: 2
//
// Command-line flags override configuration files.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, kitchen, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize output on terminals
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//	equex --pprof-mode=cpu --pprof-dir=/tmp/profiles run zad.txt
package cli
