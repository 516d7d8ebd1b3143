package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/ttsb/internal/browse"
	"github.com/Zuo-Peng/ttsb/internal/config"
	"github.com/Zuo-Peng/ttsb/internal/play"
	"github.com/Zuo-Peng/ttsb/internal/review"
	"github.com/Zuo-Peng/ttsb/internal/tui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func browseCmd() *cobra.Command {
	var minTurns, maxTurns, page, pageSize int
	var minDur, maxDur float64

	cmd := &cobra.Command{
		Use:   "ttsb <meta-manifest>",
		Short: "Browse TTS dialogue recordings described by a JSON-lines manifest",
		Long: `Opens a terminal UI listing the conversations in a meta-manifest, filtered by
turn count and duration and paged 25 at a time. The selected conversation is
shown as chat bubbles; audio is played through an external player.

When stdout is not a terminal, the requested page is printed as TSV:
  conversation_id, num_turns, total_duration, wav_path`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if cmd.Flags().Changed("page-size") {
				cfg.PageSize = pageSize
			}

			interactive := term.IsTerminal(int(os.Stdout.Fd()))
			log, closeLog := newLogger(cfg, interactive)
			defer closeLog()

			summaries, err := loadSummaries(args[0], log)
			if err != nil {
				return err
			}

			session := browse.NewSession(summaries, cfg.PageSize)
			session.Subscribe(func(p browse.Page) {
				log.Debug().Int("page", p.Index).Int("pages", p.TotalPages).Int("matches", p.Matches).Msg("view changed")
			})

			c := session.Bounds()
			flags := cmd.Flags()
			if flags.Changed("min-turns") {
				c.MinTurns = minTurns
			}
			if flags.Changed("max-turns") {
				c.MaxTurns = maxTurns
			}
			if flags.Changed("min-duration") {
				c.MinDuration = minDur
			}
			if flags.Changed("max-duration") {
				c.MaxDuration = maxDur
			}
			session.SetCriteria(c)
			if page > 1 {
				session.SetPage(page - 1)
			}

			if !interactive {
				return printPage(session)
			}

			opts := tui.Options{
				Player: &play.Player{Name: cfg.Player},
				Log:    log,
			}
			if store := openReviewStore(cfg, log); store != nil {
				defer store.Close()
				opts.Marker = store
				opts.Marks = loadMarks(cmd, store, log)
			}
			return tui.Run(session, opts)
		},
	}

	cmd.Flags().IntVar(&minTurns, "min-turns", 0, "Minimum turn count (default: collection minimum)")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 0, "Maximum turn count (default: collection maximum)")
	cmd.Flags().Float64Var(&minDur, "min-duration", 0, "Minimum duration in seconds")
	cmd.Flags().Float64Var(&maxDur, "max-duration", 0, "Maximum duration in seconds")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show (1-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", browse.DefaultPageSize, "Conversations per page")

	return cmd
}

func printPage(session *browse.Session) error {
	p := session.Page()
	for _, s := range p.Items {
		wav := s.WavPath
		if wav == "" {
			wav = "-"
		}
		fmt.Printf("%s\t%d\t%.2f\t%s\n", s.ConversationID, s.NumTurns, s.TotalDuration, wav)
	}
	fmt.Fprintf(os.Stderr, "page %d/%d, %d of %d conversations\n", p.Index+1, p.TotalPages, p.Matches, session.Len())
	return nil
}

func openReviewStore(cfg *config.Config, log zerolog.Logger) *review.Store {
	store, err := review.Open(cfg.ReviewDB)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.ReviewDB).Msg("review store unavailable, marks disabled")
		return nil
	}
	return store
}

func loadMarks(cmd *cobra.Command, store *review.Store, log zerolog.Logger) map[string]bool {
	marked, err := store.Marked(cmd.Context())
	if err != nil {
		log.Warn().Err(err).Msg("read review marks")
		return nil
	}
	marks := make(map[string]bool, len(marked))
	for id := range marked {
		marks[id] = true
	}
	return marks
}
