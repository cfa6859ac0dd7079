package combine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"podforge/internal/fileutil"
	"podforge/internal/logging"
	"podforge/internal/media/ffmpeg"
	"podforge/internal/services"
	"podforge/internal/staging"
	"podforge/internal/timeline"
)

// staleWorkspaceAge is how old an abandoned run directory must be before the
// pre-run sweep removes it.
const staleWorkspaceAge = 24 * time.Hour

// audioExtensions are the segment file types the combiner recognizes.
var audioExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".flac": {},
	".m4a":  {},
}

// Options controls pause placement and encoding for a combine run.
type Options struct {
	Pause time.Duration
	// Intro and Outro add lead-in/trail-out silence when positive. Both are
	// off by default for the combiner.
	Intro      time.Duration
	Outro      time.Duration
	StagingDir string
	Encode     ffmpeg.Encode
}

// Summary reports what a combine run consumed and produced. Duration is
// probed from the finished artifact and is zero when probing fails.
type Summary struct {
	Segments int
	Silences int
	Output   string
	Duration time.Duration
}

// Combiner concatenates segment directories into single artifacts.
type Combiner struct {
	toolkit *ffmpeg.Toolkit
	logger  *slog.Logger
}

// New builds a combiner around the media toolkit.
func New(toolkit *ffmpeg.Toolkit, logger *slog.Logger) *Combiner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Combiner{
		toolkit: toolkit,
		logger:  logging.NewComponentLogger(logger, "combiner"),
	}
}

// Combine scans segmentsDir for audio files, rebuilds the timeline from their
// sorted names, and writes one concatenated file to outputPath. Intermediate
// silence and list artifacts are removed regardless of the toolkit's exit
// status.
func (c *Combiner) Combine(ctx context.Context, segmentsDir, outputPath string, opts Options) (Summary, error) {
	ctx = logging.WithStage(ctx, "combine")
	summary := Summary{Output: outputPath}

	segments, err := scanSegments(segmentsDir)
	if err != nil {
		return summary, err
	}
	summary.Segments = len(segments)
	c.logger.Info("segments found", logging.Args(
		logging.Int("count", len(segments)),
		logging.String("dir", segmentsDir),
	)...)

	clips := make([]timeline.Clip, len(segments))
	for i, path := range segments {
		clips[i] = timeline.Clip{Path: path, Ordinal: i}
	}
	tl, err := timeline.Build(clips, timeline.Options{Pause: opts.Pause, Intro: opts.Intro, Outro: opts.Outro})
	if err != nil {
		return summary, err
	}
	summary.Silences = tl.SilenceCount()

	if result := staging.CleanStale(ctx, opts.StagingDir, staleWorkspaceAge, c.logger); len(result.Removed) > 0 {
		c.logger.Info("removed stale workspaces", logging.Args(logging.Int("count", len(result.Removed)))...)
	}
	workspace, err := staging.NewWorkspace(opts.StagingDir)
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "combine", "run", "create workspace", err)
	}
	defer func() {
		if cleanupErr := workspace.Cleanup(); cleanupErr != nil {
			c.logger.Warn("workspace cleanup failed", logging.Args(logging.Error(cleanupErr))...)
		}
	}()

	files := make([]string, 0, len(tl.Items()))
	silences := 0
	for _, item := range tl.Items() {
		switch item.Kind {
		case timeline.KindClip:
			files = append(files, item.Clip.Path)
		case timeline.KindSilence:
			silences++
			path := workspace.Path(fmt.Sprintf("silence_%03d.wav", silences))
			if err := c.toolkit.WriteSilence(ctx, item.Silence, path); err != nil {
				return summary, err
			}
			files = append(files, path)
		}
	}

	// Concatenate inside the workspace, then copy the finished artifact into
	// place so a toolkit failure never leaves a truncated output file.
	staged := workspace.Path("combined" + filepath.Ext(outputPath))
	if err := c.toolkit.Concat(ctx, files, staged, opts.Encode, workspace.Dir()); err != nil {
		return summary, err
	}
	if err := fileutil.Finalize(staged, outputPath); err != nil {
		return summary, services.Wrap(services.ErrExternalTool, "combine", "run", "finalize output", err)
	}
	if duration, probeErr := c.toolkit.ProbeDuration(ctx, outputPath); probeErr != nil {
		c.logger.Debug("duration probe failed", logging.Args(logging.Error(probeErr))...)
	} else {
		summary.Duration = duration
	}
	c.logger.Info("combined output written", logging.Args(
		logging.Int("segments", summary.Segments),
		logging.Int("silences", summary.Silences),
		logging.Duration("duration", summary.Duration),
		logging.String("output", outputPath),
	)...)
	return summary, nil
}

// scanSegments lists recognized audio files in dir sorted lexicographically
// by name, independent of filesystem listing order.
func scanSegments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "combine", "scan segments", dir, err)
		}
		return nil, services.Wrap(services.ErrValidation, "combine", "scan segments", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := audioExtensions[ext]; !ok {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, services.Wrap(services.ErrEmptyInput, "combine", "scan segments", "no audio files found", nil)
	}
	sort.Strings(files)
	return files, nil
}
