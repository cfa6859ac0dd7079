package synth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"podforge/internal/config"
	"podforge/internal/services"
	"podforge/internal/voice"
)

// FailureReason classifies what part of a synthesis call broke.
type FailureReason string

const (
	// ReasonNetwork covers transport failures reaching a remote service.
	ReasonNetwork FailureReason = "network"
	// ReasonModel covers failures reported by the synthesis engine itself.
	ReasonModel FailureReason = "model"
	// ReasonIO covers failures writing the synthesized audio to disk.
	ReasonIO FailureReason = "io"
)

// Result describes a completed synthesis call.
type Result struct {
	// Duration is the synthesized audio length when the backend knows it
	// without probing the file. Zero means unknown.
	Duration time.Duration
	// UsedFallback reports that the backend degraded gracefully, for example
	// a local model synthesizing without its voice clone sample.
	UsedFallback bool
	// Backend names the backend that produced the file.
	Backend string
}

// Synthesizer converts one line of dialogue into an audio file at dest.
type Synthesizer interface {
	// Synthesize writes spoken audio for text to dest using the speaker's
	// profile. On error, dest does not exist.
	Synthesize(ctx context.Context, text string, profile voice.Profile, dest string) (Result, error)

	// Name identifies the backend in logs and CLI output.
	Name() string

	// Extension is the file extension (without dot) the backend emits.
	Extension() string
}

type reasonError struct {
	reason FailureReason
	err    error
}

func (e *reasonError) Error() string { return e.err.Error() }
func (e *reasonError) Unwrap() error { return e.err }

// failure tags err with a failure reason and the shared synthesis sentinel.
func failure(reason FailureReason, operation, message string, err error) error {
	wrapped := services.Wrap(services.ErrSynthesis, "synthesize", operation, message, err)
	return &reasonError{reason: reason, err: wrapped}
}

// Reason extracts the failure classification from a synthesis error.
func Reason(err error) (FailureReason, bool) {
	var re *reasonError
	if errors.As(err, &re) {
		return re.reason, true
	}
	return "", false
}

// FromConfig builds the synthesizer selected by the configuration.
func FromConfig(cfg *config.Config) (Synthesizer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Synthesis.Backend)) {
	case config.BackendRemote:
		return NewRemote(cfg.RemoteTTS.APIKey,
			WithBaseURL(cfg.RemoteTTS.BaseURL),
			WithModelID(cfg.RemoteTTS.ModelID),
			WithTimeout(cfg.RemoteTimeout()),
		), nil
	case config.BackendLocal:
		return NewLocal(cfg.LocalTTS, cfg.LocalTimeout()), nil
	case config.BackendTone:
		return NewTone(cfg.Output.SampleRate), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "synthesize", "select backend",
			fmt.Sprintf("unknown backend %q", cfg.Synthesis.Backend), nil)
	}
}

// commitFile moves a finished temporary file into its final place. Partial
// output stays under the temporary name and is removed on failure.
func commitFile(tmp, dest string) error {
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return failure(ReasonIO, "commit output", dest, err)
	}
	return nil
}
