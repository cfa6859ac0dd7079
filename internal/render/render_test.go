package render

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"podforge/internal/config"
	"podforge/internal/media/ffmpeg"
	"podforge/internal/script"
	"podforge/internal/services"
	"podforge/internal/synth"
	"podforge/internal/voice"
)

func testRegistry(t *testing.T) *voice.Registry {
	t.Helper()
	registry, err := voice.NewRegistry(map[string]config.Voice{
		"MIGUEL": {DisplayName: "Miguel", Language: "es", Speed: 0.9},
		"SAM":    {DisplayName: "Sam", Language: "es", Speed: 1.2},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return registry
}

func testLines() []script.Line {
	return []script.Line{
		{Index: 0, Speaker: "MIGUEL", Text: "hola a todos"},
		{Index: 1, Speaker: "NARRATOR", Text: "off script"},
		{Index: 2, Speaker: "SAM", Text: "que tal"},
	}
}

// fakeToolkitRunner emulates ffmpeg by writing whatever output path the
// command names, and captures the concat list before it is cleaned up.
type fakeToolkitRunner struct {
	calls       [][]string
	concatLists []string
}

func (f *fakeToolkitRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	for i, a := range args {
		if a == "-i" && i+1 < len(args) && strings.HasSuffix(args[i+1], ".txt") {
			data, err := os.ReadFile(args[i+1])
			if err != nil {
				return nil, err
			}
			f.concatLists = append(f.concatLists, string(data))
		}
	}
	if len(args) > 0 {
		dest := args[len(args)-1]
		if err := os.WriteFile(dest, []byte("audio"), 0o644); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func TestRunSegmentsSkipsUnknownSpeakers(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "segments")
	stage := New(testRegistry(t), synth.NewTone(8000), nil, nil)

	summary, err := stage.Run(context.Background(), testLines(), Options{
		Mode:      ModeSegments,
		OutputDir: outputDir,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Rendered != 2 {
		t.Fatalf("rendered = %d, want 2", summary.Rendered)
	}
	if len(summary.Skipped) != 1 || summary.Skipped[0].Speaker != "NARRATOR" || summary.Skipped[0].Index != 1 {
		t.Fatalf("unexpected skips: %+v", summary.Skipped)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 || names[0] != "001_MIGUEL_Miguel.wav" || names[1] != "003_SAM_Sam.wav" {
		t.Fatalf("unexpected segment files: %v", names)
	}
}

func TestRunSegmentsAllUnknownIsEmptyInput(t *testing.T) {
	stage := New(testRegistry(t), synth.NewTone(8000), nil, nil)
	lines := []script.Line{{Index: 0, Speaker: "GHOST", Text: "boo"}}

	_, err := stage.Run(context.Background(), lines, Options{
		Mode:      ModeSegments,
		OutputDir: t.TempDir(),
	})
	if !errors.Is(err, services.ErrEmptyInput) {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

// failingSynth succeeds until the configured line index, then fails.
type failingSynth struct {
	inner    synth.Synthesizer
	failFrom int
	calls    int
}

func (f *failingSynth) Name() string      { return f.inner.Name() }
func (f *failingSynth) Extension() string { return f.inner.Extension() }

func (f *failingSynth) Synthesize(ctx context.Context, text string, profile voice.Profile, dest string) (synth.Result, error) {
	f.calls++
	if f.calls > f.failFrom {
		return synth.Result{}, services.Wrap(services.ErrSynthesis, "synthesize", "test", "injected failure", nil)
	}
	return f.inner.Synthesize(ctx, text, profile, dest)
}

func TestRunSegmentsSynthesisFailureAbortsButKeepsCompleted(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "segments")
	adapter := &failingSynth{inner: synth.NewTone(8000), failFrom: 1}
	stage := New(testRegistry(t), adapter, nil, nil)

	_, err := stage.Run(context.Background(), testLines(), Options{
		Mode:      ModeSegments,
		OutputDir: outputDir,
	})
	if !errors.Is(err, services.ErrSynthesis) {
		t.Fatalf("expected synthesis error, got %v", err)
	}

	// The first line completed before the failure and stays valid on disk.
	if _, statErr := os.Stat(filepath.Join(outputDir, "001_MIGUEL_Miguel.wav")); statErr != nil {
		t.Fatalf("completed segment should survive the abort: %v", statErr)
	}
	if _, statErr := os.Stat(filepath.Join(outputDir, "003_SAM_Sam.wav")); !os.IsNotExist(statErr) {
		t.Fatalf("failed segment should not exist")
	}
}

func TestRunCombinedConcatenatesClipsAndSilences(t *testing.T) {
	stagingDir := filepath.Join(t.TempDir(), "staging")
	output := filepath.Join(t.TempDir(), "podcast.mp3")
	runner := &fakeToolkitRunner{}
	toolkit := ffmpeg.New("ffmpeg", 44100, ffmpeg.WithRunner(runner.run))
	stage := New(testRegistry(t), synth.NewTone(8000), toolkit, nil)

	summary, err := stage.Run(context.Background(), testLines(), Options{
		Mode:       ModeCombined,
		OutputFile: output,
		StagingDir: stagingDir,
		Pause:      time.Second,
		Encode:     ffmpeg.Encode{Codec: "libmp3lame", Bitrate: "192k"},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Rendered != 2 {
		t.Fatalf("rendered = %d, want 2", summary.Rendered)
	}
	if _, statErr := os.Stat(output); statErr != nil {
		t.Fatalf("combined output missing: %v", statErr)
	}

	if len(runner.concatLists) != 1 {
		t.Fatalf("expected one concat invocation, got %d", len(runner.concatLists))
	}
	listLines := strings.Split(strings.TrimSpace(runner.concatLists[0]), "\n")
	if len(listLines) != 3 {
		t.Fatalf("concat list should hold clip, silence, clip: %v", listLines)
	}
	if !strings.Contains(listLines[0], "001_MIGUEL") ||
		!strings.Contains(listLines[1], "silence_001") ||
		!strings.Contains(listLines[2], "003_SAM") {
		t.Fatalf("concat list out of order: %v", listLines)
	}

	// The per-run workspace is removed once the artifact is written.
	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		t.Fatalf("read staging dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("workspace should be cleaned up, found %d entries", len(entries))
	}
}

func TestRunCombinedIntroAndOutro(t *testing.T) {
	stagingDir := filepath.Join(t.TempDir(), "staging")
	runner := &fakeToolkitRunner{}
	toolkit := ffmpeg.New("ffmpeg", 44100, ffmpeg.WithRunner(runner.run))
	stage := New(testRegistry(t), synth.NewTone(8000), toolkit, nil)

	lines := []script.Line{{Index: 0, Speaker: "MIGUEL", Text: "hola"}}
	_, err := stage.Run(context.Background(), lines, Options{
		Mode:       ModeCombined,
		OutputFile: filepath.Join(t.TempDir(), "podcast.mp3"),
		StagingDir: stagingDir,
		Intro:      3 * time.Second,
		Outro:      2 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	listLines := strings.Split(strings.TrimSpace(runner.concatLists[0]), "\n")
	if len(listLines) != 3 {
		t.Fatalf("expected intro, clip, outro: %v", listLines)
	}
	if !strings.Contains(listLines[0], "silence_001") || !strings.Contains(listLines[2], "silence_002") {
		t.Fatalf("intro/outro silences misplaced: %v", listLines)
	}
}

func TestRunCombinedCleansWorkspaceOnFailure(t *testing.T) {
	stagingDir := filepath.Join(t.TempDir(), "staging")
	adapter := &failingSynth{inner: synth.NewTone(8000), failFrom: 1}
	toolkit := ffmpeg.New("ffmpeg", 44100, ffmpeg.WithRunner((&fakeToolkitRunner{}).run))
	stage := New(testRegistry(t), adapter, toolkit, nil)
	output := filepath.Join(t.TempDir(), "podcast.mp3")

	_, err := stage.Run(context.Background(), testLines(), Options{
		Mode:       ModeCombined,
		OutputFile: output,
		StagingDir: stagingDir,
	})
	if !errors.Is(err, services.ErrSynthesis) {
		t.Fatalf("expected synthesis error, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Fatalf("no combined artifact may exist after an aborted run")
	}
	entries, readErr := os.ReadDir(stagingDir)
	if readErr != nil {
		t.Fatalf("read staging dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("workspace should be cleaned up after failure, found %d entries", len(entries))
	}
}

func TestRunSegmentsLogsFailureClassification(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	adapter := synth.NewLocal(config.LocalTTS{Command: "tts", Model: "xtts_v2"}, 0,
		synth.WithLocalRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return []byte("model crashed"), errors.New("exit status 1")
		}))
	stage := New(testRegistry(t), adapter, nil, logger)

	_, err := stage.Run(context.Background(), testLines(), Options{
		Mode:      ModeSegments,
		OutputDir: t.TempDir(),
	})
	if !errors.Is(err, services.ErrSynthesis) {
		t.Fatalf("expected synthesis error, got %v", err)
	}
	logged := buf.String()
	if !strings.Contains(logged, `"reason":"model"`) {
		t.Fatalf("failure log should carry the classification, got: %s", logged)
	}
	if !strings.Contains(logged, `"msg":"synthesis failed"`) {
		t.Fatalf("missing failure record: %s", logged)
	}
}
