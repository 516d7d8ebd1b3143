package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/ttsb/internal/browse"
	"github.com/Zuo-Peng/ttsb/internal/check"
	"github.com/Zuo-Peng/ttsb/internal/config"
	"github.com/Zuo-Peng/ttsb/internal/play"
	"github.com/Zuo-Peng/ttsb/internal/render"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// maxListed caps the ids printed per problem category.
const maxListed = 10

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor <meta-manifest>",
		Short: "Self-check: verify detail files, audio references, player and review store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			log, closeLog := newLogger(cfg, false)
			defer closeLog()

			fmt.Println("=== Manifest ===")
			fmt.Printf("  Path: %s\n", args[0])
			summaries, err := loadSummaries(args[0], log)
			if err != nil {
				fmt.Println("  Status: NOT FOUND")
				return err
			}
			b := browse.BoundsOf(summaries)
			fmt.Printf("  Conversations: %d\n", len(summaries))
			fmt.Printf("  Turns:    %d - %d\n", b.MinTurns, b.MaxTurns)
			fmt.Printf("  Duration: %s - %s\n", render.FormatTime(b.MinDuration), render.FormatTime(b.MaxDuration))

			r := check.Run(summaries)

			fmt.Println("\n=== Details ===")
			fmt.Printf("  Missing/unparsable: %d\n", len(r.DetailMissing))
			printIDs(r.DetailMissing)
			fmt.Printf("  num_turns mismatch: %d\n", len(r.TurnMismatch))
			printIDs(r.TurnMismatch)

			fmt.Println("\n=== Audio ===")
			fmt.Printf("  Dialogue audio: %d present, %d missing\n", r.WavPresent, r.WavMissing)
			fmt.Printf("  Turn audio:     %d present, %d missing\n", r.TurnAudio-r.TurnAudioGone, r.TurnAudioGone)
			fmt.Printf("  Total size:     %s\n", humanize.Bytes(uint64(r.AudioBytes)))

			fmt.Println("\n=== Player ===")
			if p, err := play.Detect(cfg.Player); err != nil {
				fmt.Printf("  %v\n", err)
			} else {
				fmt.Printf("  Using: %s\n", p)
			}

			fmt.Println("\n=== Review store ===")
			fmt.Printf("  Path: %s\n", cfg.ReviewDB)
			if info, err := os.Stat(cfg.ReviewDB); err != nil {
				fmt.Println("  Status: not created yet")
			} else {
				fmt.Printf("  Size: %s\n", humanize.Bytes(uint64(info.Size())))
			}

			log.Info().Str("report", r.String()).Msg("check finished")
			if !r.OK() {
				fmt.Println("\nStatus: PROBLEMS FOUND")
			} else {
				fmt.Println("\nStatus: OK")
			}
			return nil
		},
	}
}

func printIDs(ids []string) {
	for i, id := range ids {
		if i == maxListed {
			fmt.Printf("    ... and %d more\n", len(ids)-maxListed)
			return
		}
		fmt.Printf("    %s\n", id)
	}
}
