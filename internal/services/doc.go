// Package services provides shared error classification and context carriage
// for the pipeline stages.
//
// Errors raised by stages are tagged with sentinel markers (ErrNotFound,
// ErrValidation, ErrSynthesis, ...) via Wrap so callers can classify failures
// with errors.Is without parsing message text. Context helpers propagate the
// active stage and dialogue line so log lines stay correlated.
package services
