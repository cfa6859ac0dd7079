package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podforge/internal/voice"
)

func newVoicesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List configured speaker voices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			registry, err := voice.NewRegistry(cfg.Voices)
			if err != nil {
				return err
			}

			headers := []string{"Speaker", "Name", "Language", "Accent", "Speed", "Voice ID", "Clone Sample"}
			rows := make([][]string, 0, registry.Len())
			for _, speaker := range registry.Speakers() {
				profile, _ := registry.Resolve(speaker)
				accent := profile.Accent
				if accent == "" {
					accent = "-"
				}
				remoteID := profile.RemoteID
				if remoteID == "" {
					remoteID = "-"
				}
				sample := profile.CloneSample
				if sample == "" {
					sample = "-"
				}
				rows = append(rows, []string{
					profile.SpeakerID,
					profile.DisplayName,
					profile.Language.String(),
					accent,
					fmt.Sprintf("%.2f", profile.Speed),
					remoteID,
					sample,
				})
			}

			out := cmd.OutOrStdout()
			for _, line := range sectionHeader(fmt.Sprintf("Voices (%d)", registry.Len()), shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{
				alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft,
			}))
			return nil
		},
	}
}
