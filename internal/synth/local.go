package synth

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"podforge/internal/config"
	"podforge/internal/voice"
)

const localExtension = "wav"

// commandRunner abstracts external process execution so tests can intercept
// the local model invocation.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Local synthesizes speech by invoking a local neural TTS command (the Coqui
// `tts` CLI by default). When voice cloning is enabled and the speaker's
// reference sample exists, it is passed to the model; a missing sample falls
// back to the model's default voice rather than failing the run.
type Local struct {
	command    string
	model      string
	gpu        bool
	voiceClone bool
	timeout    time.Duration
	runner     commandRunner
}

// LocalOption customizes the local synthesizer.
type LocalOption func(*Local)

// WithLocalRunner overrides process execution, for tests.
func WithLocalRunner(runner commandRunner) LocalOption {
	return func(l *Local) {
		if runner != nil {
			l.runner = runner
		}
	}
}

// NewLocal constructs the local-model synthesizer from configuration.
func NewLocal(cfg config.LocalTTS, timeout time.Duration, opts ...LocalOption) *Local {
	local := &Local{
		command:    strings.TrimSpace(cfg.Command),
		model:      strings.TrimSpace(cfg.Model),
		gpu:        cfg.GPU,
		voiceClone: cfg.VoiceClone,
		timeout:    timeout,
		runner:     runLocalCommand,
	}
	if local.command == "" {
		local.command = "tts"
	}
	for _, opt := range opts {
		opt(local)
	}
	return local
}

func (l *Local) Name() string      { return "local" }
func (l *Local) Extension() string { return localExtension }

// Synthesize shells out to the model command with a per-line timeout. The
// command writes to a temporary path that is renamed into place only when the
// process exits cleanly and produced a file.
func (l *Local) Synthesize(ctx context.Context, text string, profile voice.Profile, dest string) (Result, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	tmp := dest + ".part"
	args := []string{
		"--text", text,
		"--model_name", l.model,
		"--language_idx", profile.Language.String(),
		"--speed", strconv.FormatFloat(profile.Speed, 'f', -1, 64),
		"--out_path", tmp,
	}
	usedFallback := false
	if l.voiceClone {
		if sample := strings.TrimSpace(profile.CloneSample); sample != "" && fileExists(sample) {
			args = append(args, "--speaker_wav", sample)
		} else {
			usedFallback = true
		}
	}
	if l.gpu {
		args = append(args, "--use_cuda", "true")
	}

	output, err := l.runner(ctx, l.command, args...)
	if err != nil {
		os.Remove(tmp)
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		return Result{}, failure(ReasonModel, "local", fmt.Sprintf("%s failed: %s", l.command, detail), err)
	}
	if !fileExists(tmp) {
		return Result{}, failure(ReasonModel, "local",
			fmt.Sprintf("%s exited cleanly but wrote no output", l.command), nil)
	}
	if err := commitFile(tmp, dest); err != nil {
		return Result{}, err
	}
	return Result{UsedFallback: usedFallback, Backend: l.Name()}, nil
}

func runLocalCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
