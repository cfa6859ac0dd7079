package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"podforge/internal/combine"
	"podforge/internal/media/ffmpeg"
)

func newCombineCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag string
		pauseFlag  float64
		introFlag  bool
		outroFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "combine <segments-dir>",
		Short: "Concatenate rendered segments into one audio file",
		Long: `Combine scans a directory of previously rendered segment files, orders
them by filename, and concatenates them with the configured pause between
each pair. Segment producers must name files so that lexicographic order
matches intended playback order.`,
		Example: `  podforge combine segments/ -o show.mp3
  podforge combine segments/ --pause 1.5 --intro --outro`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			output := outputFlag
			if output == "" {
				output = filepath.Join(cfg.Paths.OutputDir, "combined_podcast.mp3")
			}

			opts := combine.Options{
				Pause:      cfg.CombinePauseDuration(),
				StagingDir: cfg.Paths.StagingDir,
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

			toolkit := ffmpeg.New(cfg.FFmpegBinary(), cfg.Output.SampleRate,
				ffmpeg.WithProbeBinary(cfg.FFprobeBinary()))
			combiner := combine.New(toolkit, logger)

			summary, err := combiner.Combine(cmd.Context(), args[0], output, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Combined %d segments (%d silences) into %s\n",
				summary.Segments, summary.Silences, summary.Output)
			if summary.Duration > 0 {
				fmt.Fprintf(out, "Duration: %s\n", summary.Duration.Round(time.Millisecond))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output audio file path")
	cmd.Flags().Float64Var(&pauseFlag, "pause", 0, "Pause between segments in seconds")
	cmd.Flags().BoolVar(&introFlag, "intro", false, "Add the configured intro silence")
	cmd.Flags().BoolVar(&outroFlag, "outro", false, "Add the configured outro silence")
	return cmd
}
