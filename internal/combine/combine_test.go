package combine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"podforge/internal/media/ffmpeg"
	"podforge/internal/services"
)

// fakeRunner stands in for ffmpeg: it writes the named output file and keeps
// the concat list contents, which the real toolkit deletes before returning.
type fakeRunner struct {
	calls       int
	failConcat  bool
	concatLists []string
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls++
	isConcat := false
	for i, a := range args {
		if a == "concat" {
			isConcat = true
		}
		if a == "-show_format" {
			return []byte(`{"format":{"duration":"12.5"}}`), nil
		}
		if a == "-i" && i+1 < len(args) && strings.HasSuffix(args[i+1], ".txt") {
			data, err := os.ReadFile(args[i+1])
			if err != nil {
				return nil, err
			}
			f.concatLists = append(f.concatLists, string(data))
		}
	}
	if isConcat && f.failConcat {
		return []byte("Invalid data found when processing input"), errors.New("exit status 1")
	}
	if len(args) > 0 {
		if err := os.WriteFile(args[len(args)-1], []byte("audio"), 0o644); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func writeSegments(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("seg"), 0o644); err != nil {
			t.Fatalf("write segment %s: %v", name, err)
		}
	}
}

func newCombiner(runner *fakeRunner) *Combiner {
	toolkit := ffmpeg.New("ffmpeg", 44100, ffmpeg.WithRunner(runner.run))
	return New(toolkit, nil)
}

func TestCombineOrdersByFilename(t *testing.T) {
	segmentsDir := t.TempDir()
	// Created out of order on purpose; only the names decide playback order.
	writeSegments(t, segmentsDir, "002_SAM.wav", "001_MIGUEL.wav", "003_MIGUEL.wav", "notes.txt")

	runner := &fakeRunner{}
	output := filepath.Join(t.TempDir(), "podcast.mp3")
	summary, err := newCombiner(runner).Combine(context.Background(), segmentsDir, output, Options{
		Pause:      time.Second,
		StagingDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Combine returned error: %v", err)
	}
	if summary.Segments != 3 {
		t.Fatalf("segments = %d, want 3", summary.Segments)
	}
	if summary.Silences != 2 {
		t.Fatalf("silences = %d, want 2", summary.Silences)
	}
	if summary.Duration != 12500*time.Millisecond {
		t.Fatalf("duration = %s, want 12.5s", summary.Duration)
	}

	if len(runner.concatLists) != 1 {
		t.Fatalf("expected one concat call, got %d", len(runner.concatLists))
	}
	lines := strings.Split(strings.TrimSpace(runner.concatLists[0]), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected clip/silence/clip/silence/clip, got %v", lines)
	}
	for i, want := range []string{"001_MIGUEL", "silence_001", "002_SAM", "silence_002", "003_MIGUEL"} {
		if !strings.Contains(lines[i], want) {
			t.Fatalf("list line %d = %q, want to contain %q", i, lines[i], want)
		}
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestCombineEmptyDirectory(t *testing.T) {
	output := filepath.Join(t.TempDir(), "podcast.mp3")
	_, err := newCombiner(&fakeRunner{}).Combine(context.Background(), t.TempDir(), output, Options{
		StagingDir: t.TempDir(),
	})
	if !errors.Is(err, services.ErrEmptyInput) {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Fatalf("no output may be created for an empty directory")
	}
}

func TestCombineMissingDirectory(t *testing.T) {
	_, err := newCombiner(&fakeRunner{}).Combine(context.Background(),
		filepath.Join(t.TempDir(), "absent"), filepath.Join(t.TempDir(), "out.mp3"), Options{})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCombineZeroPauseHasNoSilences(t *testing.T) {
	segmentsDir := t.TempDir()
	writeSegments(t, segmentsDir, "001_A.wav", "002_B.wav")

	runner := &fakeRunner{}
	summary, err := newCombiner(runner).Combine(context.Background(), segmentsDir,
		filepath.Join(t.TempDir(), "out.mp3"), Options{StagingDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Combine returned error: %v", err)
	}
	if summary.Silences != 0 {
		t.Fatalf("silences = %d, want 0", summary.Silences)
	}
	lines := strings.Split(strings.TrimSpace(runner.concatLists[0]), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two clips only, got %v", lines)
	}
}

func TestCombineSurfacesToolkitErrorAndCleansUp(t *testing.T) {
	segmentsDir := t.TempDir()
	writeSegments(t, segmentsDir, "001_A.wav", "002_B.wav")
	stagingDir := t.TempDir()

	runner := &fakeRunner{failConcat: true}
	_, err := newCombiner(runner).Combine(context.Background(), segmentsDir,
		filepath.Join(t.TempDir(), "out.mp3"), Options{
			Pause:      time.Second,
			StagingDir: stagingDir,
		})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	// The toolkit's diagnostic text surfaces verbatim.
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Fatalf("error should carry ffmpeg output: %v", err)
	}
	entries, readErr := os.ReadDir(stagingDir)
	if readErr != nil {
		t.Fatalf("read staging dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("intermediate artifacts should be removed after failure, found %d", len(entries))
	}
}

func TestCombineIsRepeatable(t *testing.T) {
	segmentsDir := t.TempDir()
	writeSegments(t, segmentsDir, "001_A.wav", "002_B.wav")

	first := &fakeRunner{}
	second := &fakeRunner{}
	opts := Options{Pause: 800 * time.Millisecond, StagingDir: t.TempDir()}

	if _, err := newCombiner(first).Combine(context.Background(), segmentsDir,
		filepath.Join(t.TempDir(), "a.mp3"), opts); err != nil {
		t.Fatalf("first combine: %v", err)
	}
	if _, err := newCombiner(second).Combine(context.Background(), segmentsDir,
		filepath.Join(t.TempDir(), "b.mp3"), opts); err != nil {
		t.Fatalf("second combine: %v", err)
	}

	normalize := func(list string) string {
		lines := strings.Split(strings.TrimSpace(list), "\n")
		out := make([]string, len(lines))
		for i, line := range lines {
			out[i] = filepath.Base(strings.Trim(strings.TrimPrefix(line, "file "), "'"))
		}
		return strings.Join(out, "|")
	}
	if normalize(first.concatLists[0]) != normalize(second.concatLists[0]) {
		t.Fatalf("combine structure changed between identical runs:\n%s\n%s",
			first.concatLists[0], second.concatLists[0])
	}
}
