package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound flags a missing input file or directory.
	ErrNotFound = errors.New("not found")
	// ErrValidation flags malformed input, such as a script that is not valid JSON
	// or an entry missing required fields.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration flags invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrSynthesis flags a failed speech synthesis call. Synthesis failures abort
	// the run; they never leave a partial final artifact behind.
	ErrSynthesis = errors.New("synthesis failure")
	// ErrEmptyInput flags a segment directory with no matching audio files.
	ErrEmptyInput = errors.New("empty input")
	// ErrExternalTool flags a non-zero exit from an external media tool. The
	// tool's diagnostic output is preserved verbatim in the error chain.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Detail returns the human-readable portion of a wrapped error with the
// sentinel marker prefix stripped, for surfacing in CLI output.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	message := err.Error()
	for _, marker := range []error{ErrNotFound, ErrValidation, ErrConfiguration, ErrSynthesis, ErrEmptyInput, ErrExternalTool} {
		prefix := marker.Error() + ": "
		if strings.HasPrefix(message, prefix) {
			return strings.TrimPrefix(message, prefix)
		}
	}
	return message
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
