package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/ttsb/internal/config"
	"github.com/Zuo-Peng/ttsb/internal/manifest"
	"github.com/Zuo-Peng/ttsb/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func previewCmd() *cobra.Command {
	var turn int
	var meta bool

	cmd := &cobra.Command{
		Use:   "preview <meta-manifest> <conversation_id>",
		Short: "Render one conversation as chat bubbles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			log, closeLog := newLogger(cfg, false)
			defer closeLog()

			summaries, err := loadSummaries(args[0], log)
			if err != nil {
				return err
			}
			s, err := findSummary(summaries, args[1])
			if err != nil {
				return err
			}

			width := 80
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}

			d, err := manifest.LoadDetail(s)
			if err != nil {
				fmt.Println(render.Placeholder(s, err, width))
				return err
			}

			out, _ := render.Conversation(d, render.Options{
				Width:    width,
				Selected: turn - 1,
				ShowMeta: meta,
			})
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&turn, "turn", 0, "Turn to highlight (1-based)")
	cmd.Flags().BoolVar(&meta, "meta", false, "Show metadata of the highlighted turn")

	return cmd
}
