// Package logging builds the slog loggers used across the pipeline.
//
// Two output formats are supported: a human-oriented console format and JSON.
// Attribute helpers mirror the slog constructors so call sites stay terse, and
// context helpers carry the active stage and dialogue line into every record
// logged beneath them.
package logging
