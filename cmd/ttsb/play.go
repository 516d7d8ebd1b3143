package main

import (
	"errors"
	"fmt"

	"github.com/Zuo-Peng/ttsb/internal/config"
	"github.com/Zuo-Peng/ttsb/internal/manifest"
	"github.com/Zuo-Peng/ttsb/internal/play"
	"github.com/spf13/cobra"
)

func playCmd() *cobra.Command {
	var turn int

	cmd := &cobra.Command{
		Use:   "play <meta-manifest> <conversation_id>",
		Short: "Play a conversation's dialogue audio, or one turn with --turn",
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

			path := s.WavPath
			if turn > 0 {
				d, err := manifest.LoadDetail(s)
				if err != nil {
					return err
				}
				if turn > len(d.Turns) {
					return fmt.Errorf("conversation %s has %d turns", s.ConversationID, len(d.Turns))
				}
				path = d.Turns[turn-1].AudioPath
			}

			err = play.Run(cmd.Context(), cfg.Player, path)
			if errors.Is(err, play.ErrAudioUnavailable) {
				return fmt.Errorf("%s: no audio to play", s.ConversationID)
			}
			return err
		},
	}

	cmd.Flags().IntVar(&turn, "turn", 0, "Turn to play (1-based, 0 = whole dialogue)")

	return cmd
}
