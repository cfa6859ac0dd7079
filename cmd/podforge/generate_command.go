package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"podforge/internal/media/ffmpeg"
	"podforge/internal/render"
	"podforge/internal/script"
	"podforge/internal/synth"
	"podforge/internal/voice"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag      string
		segmentsFlag    bool
		segmentsDirFlag string
		pauseFlag       float64
		introFlag       bool
		outroFlag       bool
		backendFlag     string
		apiKeyFlag      string
		gpuFlag         bool
		voiceCloneFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "generate <script.json>",
		Short: "Synthesize a dialogue script into podcast audio",
		Long: `Generate synthesizes every line of a JSON dialogue script with the
configured backend and assembles the result into one combined audio file, or
into standalone per-line segment files with --segments.`,
		Example: `  podforge generate script.json -o show.mp3
  podforge generate script.json --segments
  podforge generate script.json --backend tone --pause 1.5 --intro --outro`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(backendFlag) != "" {
				cfg.Synthesis.Backend = strings.ToLower(strings.TrimSpace(backendFlag))
			}
			if strings.TrimSpace(apiKeyFlag) != "" {
				cfg.RemoteTTS.APIKey = strings.TrimSpace(apiKeyFlag)
			}
			if gpuFlag {
				cfg.LocalTTS.GPU = true
			}
			if voiceCloneFlag {
				cfg.LocalTTS.VoiceClone = true
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			lines, err := script.Load(args[0])
			if err != nil {
				return err
			}
			registry, err := voice.NewRegistry(cfg.Voices)
			if err != nil {
				return err
			}
			synthesizer, err := synth.FromConfig(cfg)
			if err != nil {
				return err
			}
			toolkit := ffmpeg.New(cfg.FFmpegBinary(), cfg.Output.SampleRate,
				ffmpeg.WithProbeBinary(cfg.FFprobeBinary()))

			opts := render.Options{
				StagingDir: cfg.Paths.StagingDir,
				Pause:      cfg.PauseDuration(),
				Encode:     ffmpeg.Encode{Codec: cfg.Output.Codec, Bitrate: cfg.Output.Bitrate},
			}
			if cmd.Flags().Changed("pause") {
				opts.Pause = time.Duration(pauseFlag * float64(time.Second))
			}
			if introFlag {
				opts.Intro = cfg.IntroDuration()
			}
			if outroFlag {
				opts.Outro = cfg.OutroDuration()
			}
			if strings.TrimSpace(segmentsDirFlag) != "" {
				segmentsFlag = true
			}
			if segmentsFlag {
				opts.Mode = render.ModeSegments
				opts.OutputDir = strings.TrimSpace(segmentsDirFlag)
				if opts.OutputDir == "" {
					opts.OutputDir = filepath.Join(cfg.Paths.OutputDir, "segments")
				}
			} else {
				opts.Mode = render.ModeCombined
				opts.OutputFile = strings.TrimSpace(outputFlag)
				if opts.OutputFile == "" {
					opts.OutputFile = filepath.Join(cfg.Paths.OutputDir, "podcast.mp3")
				}
			}

			stage := render.New(registry, synthesizer, toolkit, logger)
			summary, err := stage.Run(cmd.Context(), lines, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rendered %d of %d lines with the %s backend\n",
				summary.Rendered, len(lines), synthesizer.Name())
			for _, skip := range summary.Skipped {
				fmt.Fprintf(out, "Skipped line %d: speaker %q is not configured\n", skip.Index+1, skip.Speaker)
			}
			if summary.Duration > 0 {
				fmt.Fprintf(out, "Estimated duration: %s\n", summary.Duration.Round(time.Millisecond))
			}
			fmt.Fprintf(out, "Output: %s\n", summary.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Combined output file path")
	cmd.Flags().BoolVar(&segmentsFlag, "segments", false, "Write one file per line instead of a combined file")
	cmd.Flags().StringVar(&segmentsDirFlag, "segments-dir", "", "Directory for segment files (implies --segments)")
	cmd.Flags().Float64Var(&pauseFlag, "pause", 0, "Pause between lines in seconds")
	cmd.Flags().BoolVar(&introFlag, "intro", false, "Add the configured intro silence")
	cmd.Flags().BoolVar(&outroFlag, "outro", false, "Add the configured outro silence")
	cmd.Flags().StringVar(&backendFlag, "backend", "", "Synthesis backend: remote, local, or tone")
	cmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "Remote synthesis API key")
	cmd.Flags().BoolVar(&gpuFlag, "gpu", false, "Use GPU acceleration for the local backend")
	cmd.Flags().BoolVar(&voiceCloneFlag, "voice-clone", false, "Clone voices from configured reference samples")
	return cmd
}
