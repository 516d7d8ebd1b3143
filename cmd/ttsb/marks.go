package main

import (
	"fmt"
	"sort"

	"github.com/Zuo-Peng/ttsb/internal/config"
	"github.com/Zuo-Peng/ttsb/internal/review"
	"github.com/spf13/cobra"
)

func marksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "marks",
		Short: "List conversations marked during review (TSV: conversation_id, marked_at)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			store, err := review.Open(cfg.ReviewDB)
			if err != nil {
				return err
			}
			defer store.Close()

			marks, err := store.Marked(cmd.Context())
			if err != nil {
				return fmt.Errorf("read marks: %w", err)
			}

			ids := make([]string, 0, len(marks))
			for id := range marks {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool {
				if !marks[ids[i]].Equal(marks[ids[j]]) {
					return marks[ids[i]].Before(marks[ids[j]])
				}
				return ids[i] < ids[j]
			})

			for _, id := range ids {
				fmt.Printf("%s\t%s\n", id, marks[id].Format("2006-01-02T15:04:05Z"))
			}
			return nil
		},
	}
}
