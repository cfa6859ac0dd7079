package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"podforge/internal/media/ffprobe"
	"podforge/internal/services"
)

// Runner executes an external command and returns its combined output. It is
// injectable so tests can run without ffmpeg installed.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Encode describes the target codec settings for a combined artifact.
type Encode struct {
	Codec   string
	Bitrate string
}

// Toolkit wraps the ffmpeg/ffprobe binaries behind the operations the
// pipeline needs: silence generation, concatenation, and duration probing.
type Toolkit struct {
	binary      string
	probeBinary string
	sampleRate  int
	runner      Runner
}

// Option customizes a Toolkit.
type Option func(*Toolkit)

// WithRunner overrides the default command runner (for testing).
func WithRunner(runner Runner) Option {
	return func(t *Toolkit) {
		if runner != nil {
			t.runner = runner
		}
	}
}

// WithProbeBinary overrides the ffprobe executable name.
func WithProbeBinary(binary string) Option {
	return func(t *Toolkit) {
		binary = strings.TrimSpace(binary)
		if binary != "" {
			t.probeBinary = binary
		}
	}
}

// New constructs a Toolkit. sampleRate is used for generated silence audio.
func New(binary string, sampleRate int, opts ...Option) *Toolkit {
	t := &Toolkit{
		binary:      strings.TrimSpace(binary),
		probeBinary: "ffprobe",
		sampleRate:  sampleRate,
	}
	if t.binary == "" {
		t.binary = "ffmpeg"
	}
	if t.sampleRate <= 0 {
		t.sampleRate = 44100
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.runner == nil {
		t.runner = runCommand
	}
	return t
}

// WriteSilence renders duration of stereo silence to dest. The container
// format follows the destination extension.
func (t *Toolkit) WriteSilence(ctx context.Context, duration time.Duration, dest string) error {
	if duration <= 0 {
		return services.Wrap(services.ErrValidation, "media", "silence", "non-positive duration", nil)
	}
	if strings.TrimSpace(dest) == "" {
		return services.Wrap(services.ErrValidation, "media", "silence", "destination required", nil)
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "lavfi",
		"-i", "anullsrc=channel_layout=stereo:sample_rate=" + strconv.Itoa(t.sampleRate),
		"-t", formatSeconds(duration),
		"-y", dest,
	}
	if output, err := t.runner(ctx, t.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "media", "silence", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// Concat joins the listed files in order into one encoded output. The list
// file is written under workDir and removed before returning, on both
// success and failure paths.
func (t *Toolkit) Concat(ctx context.Context, files []string, output string, enc Encode, workDir string) error {
	if len(files) == 0 {
		return services.Wrap(services.ErrValidation, "media", "concat", "no input files", nil)
	}
	if strings.TrimSpace(output) == "" {
		return services.Wrap(services.ErrValidation, "media", "concat", "output path required", nil)
	}

	listPath, cleanup, err := writeConcatList(files, workDir)
	if err != nil {
		return err
	}
	defer cleanup()

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
	}
	if enc.Codec != "" {
		args = append(args, "-c:a", enc.Codec)
	}
	if enc.Bitrate != "" {
		args = append(args, "-b:a", enc.Bitrate)
	}
	args = append(args, "-ar", strconv.Itoa(t.sampleRate), "-y", output)

	if out, err := t.runner(ctx, t.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "media", "concat", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// ProbeDuration reports the playable duration of an audio file.
func (t *Toolkit) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	args := []string{"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path}
	output, err := t.runner(ctx, t.probeBinary, args...)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "media", "probe", strings.TrimSpace(string(output)), err)
	}
	result, err := ffprobe.Parse(output)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "media", "probe", "parse ffprobe output", err)
	}
	duration, ok := result.Duration()
	if !ok {
		return 0, services.Wrap(services.ErrExternalTool, "media", "probe", fmt.Sprintf("no duration reported for %s", path), nil)
	}
	return duration, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
