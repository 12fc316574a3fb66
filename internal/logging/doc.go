// Package logging constructs the slog loggers used across restitch.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for log files or machine consumption. Context helpers stamp
// run identifiers and stage labels onto every record emitted during a
// reconstruction run.
package logging
