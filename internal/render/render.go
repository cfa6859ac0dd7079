package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"podforge/internal/fileutil"
	"podforge/internal/logging"
	"podforge/internal/media/ffmpeg"
	"podforge/internal/script"
	"podforge/internal/services"
	"podforge/internal/staging"
	"podforge/internal/synth"
	"podforge/internal/textutil"
	"podforge/internal/timeline"
	"podforge/internal/voice"
)

// Mode selects how the timeline is materialized.
type Mode int

const (
	// ModeSegments writes one standalone audio file per dialogue line.
	ModeSegments Mode = iota
	// ModeCombined folds all clips and silences into a single output file.
	ModeCombined
)

// Workspaces left behind by an interrupted run are reaped before the next one
// starts.
const staleWorkspaceAge = 24 * time.Hour

// Options configures a render run.
type Options struct {
	Mode Mode
	// OutputDir receives segment files in ModeSegments.
	OutputDir string
	// OutputFile is the combined artifact path in ModeCombined.
	OutputFile string
	// StagingDir hosts the per-run scratch workspace in ModeCombined.
	StagingDir string
	Pause      time.Duration
	Intro      time.Duration
	Outro      time.Duration
	Encode     ffmpeg.Encode
}

// SkippedLine records a dialogue line dropped because its speaker is not in
// the registry.
type SkippedLine struct {
	Index   int
	Speaker string
}

// Summary reports what a run produced.
type Summary struct {
	Rendered int
	Skipped  []SkippedLine
	// Output is the segment directory or the combined file, depending on mode.
	Output string
	// Duration estimates the assembled length; zero when clip durations were
	// not all known.
	Duration time.Duration
}

// Stage orchestrates synthesis and assembly for one script.
type Stage struct {
	registry    *voice.Registry
	synthesizer synth.Synthesizer
	toolkit     *ffmpeg.Toolkit
	logger      *slog.Logger
}

// New builds a render stage. The toolkit may be nil when only ModeSegments is
// used.
func New(registry *voice.Registry, synthesizer synth.Synthesizer, toolkit *ffmpeg.Toolkit, logger *slog.Logger) *Stage {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Stage{
		registry:    registry,
		synthesizer: synthesizer,
		toolkit:     toolkit,
		logger:      logging.NewComponentLogger(logger, "render"),
	}
}

// Run synthesizes every resolvable line and materializes the timeline. Lines
// whose speaker is unknown are skipped with a warning; a synthesis failure
// aborts the run.
func (s *Stage) Run(ctx context.Context, lines []script.Line, opts Options) (Summary, error) {
	ctx = logging.WithStage(ctx, "render")
	summary := Summary{}

	switch opts.Mode {
	case ModeSegments:
		if strings.TrimSpace(opts.OutputDir) == "" {
			return summary, services.Wrap(services.ErrConfiguration, "render", "run", "output directory required", nil)
		}
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return summary, services.Wrap(services.ErrConfiguration, "render", "run", "create output directory", err)
		}
		return s.runSegments(ctx, lines, opts)
	case ModeCombined:
		if strings.TrimSpace(opts.OutputFile) == "" {
			return summary, services.Wrap(services.ErrConfiguration, "render", "run", "output file required", nil)
		}
		if s.toolkit == nil {
			return summary, services.Wrap(services.ErrConfiguration, "render", "run", "media toolkit required for combined output", nil)
		}
		return s.runCombined(ctx, lines, opts)
	default:
		return summary, services.Wrap(services.ErrConfiguration, "render", "run", fmt.Sprintf("unknown mode %d", opts.Mode), nil)
	}
}

func (s *Stage) runSegments(ctx context.Context, lines []script.Line, opts Options) (Summary, error) {
	summary := Summary{Output: opts.OutputDir}
	clips, skipped, err := s.synthesizeLines(ctx, lines, opts.OutputDir)
	summary.Skipped = skipped
	if err != nil {
		return summary, err
	}
	summary.Rendered = len(clips)
	if len(clips) == 0 {
		return summary, services.Wrap(services.ErrEmptyInput, "render", "segments", "no lines could be rendered", nil)
	}

	tl, err := timeline.Build(clips, timeline.Options{Pause: opts.Pause, Intro: opts.Intro, Outro: opts.Outro})
	if err != nil {
		return summary, err
	}
	if estimated, complete := tl.EstimatedDuration(); complete {
		summary.Duration = estimated
	}
	s.logger.Info("segments rendered", logging.Args(
		logging.Int("clips", tl.ClipCount()),
		logging.Int("skipped", len(skipped)),
		logging.String("dir", opts.OutputDir),
	)...)
	return summary, nil
}

func (s *Stage) runCombined(ctx context.Context, lines []script.Line, opts Options) (Summary, error) {
	summary := Summary{Output: opts.OutputFile}

	if result := staging.CleanStale(ctx, opts.StagingDir, staleWorkspaceAge, s.logger); len(result.Removed) > 0 {
		s.logger.Info("removed stale workspaces", logging.Args(logging.Int("count", len(result.Removed)))...)
	}
	workspace, err := staging.NewWorkspace(opts.StagingDir)
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "render", "combined", "create workspace", err)
	}
	defer func() {
		if cleanupErr := workspace.Cleanup(); cleanupErr != nil {
			s.logger.Warn("workspace cleanup failed", logging.Args(logging.Error(cleanupErr))...)
		}
	}()

	clips, skipped, err := s.synthesizeLines(ctx, lines, workspace.Dir())
	summary.Skipped = skipped
	if err != nil {
		return summary, err
	}
	summary.Rendered = len(clips)
	if len(clips) == 0 {
		return summary, services.Wrap(services.ErrEmptyInput, "render", "combined", "no lines could be rendered", nil)
	}

	tl, err := timeline.Build(clips, timeline.Options{Pause: opts.Pause, Intro: opts.Intro, Outro: opts.Outro})
	if err != nil {
		return summary, err
	}
	if estimated, complete := tl.EstimatedDuration(); complete {
		summary.Duration = estimated
	}

	files, err := s.materialize(ctx, tl, workspace)
	if err != nil {
		return summary, err
	}
	// Concatenate inside the workspace first, then copy the finished artifact
	// into place. An ffmpeg failure can never leave a truncated final file.
	staged := workspace.Path("combined" + filepath.Ext(opts.OutputFile))
	if err := s.toolkit.Concat(ctx, files, staged, opts.Encode, workspace.Dir()); err != nil {
		return summary, err
	}
	if err := fileutil.Finalize(staged, opts.OutputFile); err != nil {
		return summary, services.Wrap(services.ErrExternalTool, "render", "combined", "finalize output", err)
	}
	s.logger.Info("combined output written", logging.Args(
		logging.Int("clips", tl.ClipCount()),
		logging.Int("silences", tl.SilenceCount()),
		logging.String("output", opts.OutputFile),
	)...)
	return summary, nil
}

// synthesizeLines renders each resolvable line into destDir and returns the
// clips in script order. Unknown speakers are logged and skipped; any
// synthesis error aborts immediately.
func (s *Stage) synthesizeLines(ctx context.Context, lines []script.Line, destDir string) ([]timeline.Clip, []SkippedLine, error) {
	clips := make([]timeline.Clip, 0, len(lines))
	var skipped []SkippedLine

	for _, line := range lines {
		lineCtx := services.WithLine(ctx, line.Index, line.Speaker)
		profile, ok := s.registry.Resolve(line.Speaker)
		if !ok {
			skipped = append(skipped, SkippedLine{Index: line.Index, Speaker: line.Speaker})
			logging.WithContext(lineCtx, s.logger).Warn("unknown speaker, skipping line")
			continue
		}

		dest := segmentPath(destDir, line.Index, profile, s.synthesizer.Extension())
		logging.WithContext(lineCtx, s.logger).Info("synthesizing line",
			logging.Args(logging.String(logging.FieldBackend, s.synthesizer.Name()), logging.Int("words", line.WordCount()))...)

		result, err := s.synthesizer.Synthesize(lineCtx, line.Text, profile, dest)
		if err != nil {
			attrs := []logging.Attr{logging.Error(err)}
			if reason, ok := synth.Reason(err); ok {
				attrs = append(attrs, logging.String("reason", string(reason)))
			}
			logging.WithContext(lineCtx, s.logger).Error("synthesis failed", logging.Args(attrs...)...)
			return nil, skipped, err
		}
		if result.UsedFallback {
			logging.WithContext(lineCtx, s.logger).Warn("voice sample unavailable, used default voice")
		}
		clips = append(clips, timeline.Clip{
			Path:     dest,
			Duration: result.Duration,
			Ordinal:  line.Index,
		})
	}
	return clips, skipped, nil
}

// materialize turns timeline items into a flat, ordered file list for
// concatenation, writing each silence as a generated file in the workspace.
func (s *Stage) materialize(ctx context.Context, tl *timeline.Timeline, workspace *staging.Workspace) ([]string, error) {
	items := tl.Items()
	files := make([]string, 0, len(items))
	silences := 0
	for _, item := range items {
		switch item.Kind {
		case timeline.KindClip:
			files = append(files, item.Clip.Path)
		case timeline.KindSilence:
			silences++
			path := workspace.Path(fmt.Sprintf("silence_%03d.wav", silences))
			if err := s.toolkit.WriteSilence(ctx, item.Silence, path); err != nil {
				return nil, err
			}
			files = append(files, path)
		}
	}
	return files, nil
}

// segmentPath names a segment so lexicographic order matches playback order:
// a zero-padded one-based line number, then speaker and display name.
func segmentPath(dir string, lineIndex int, profile voice.Profile, ext string) string {
	name := fmt.Sprintf("%03d_%s", lineIndex+1, profile.SpeakerID)
	if display := textutil.SanitizeFileName(profile.DisplayName); display != "" {
		name += "_" + display
	}
	return filepath.Join(dir, name+"."+ext)
}
