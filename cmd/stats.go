package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/edumentor/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show exam statistics and per-topic accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()

		attempts, err := repo.QueryAttempts(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet. Take an exam with `edumentor exam take`.")
			return nil
		}

		var score, total, best int
		tiers := make(map[string]int)
		for _, a := range attempts {
			score += a.Score
			total += a.Total
			tiers[a.Tier]++
			if a.Total > 0 {
				if pct := a.Score * 100 / a.Total; pct > best {
					best = pct
				}
			}
		}

		fmt.Fprintln(out, "Attempts")
		rule(out, 48)
		fmt.Fprintf(out, "%-20s  %d\n", "Attempts", len(attempts))
		if total > 0 {
			fmt.Fprintf(out, "%-20s  %d%%\n", "Average score", score*100/total)
		}
		fmt.Fprintf(out, "%-20s  %d%%\n", "Best score", best)
		fmt.Fprintf(out, "%-20s  %d excellent / %d good / %d needs work\n", "Tiers",
			tiers["excellent"], tiers["good"], tiers["needs-work"])

		topics, err := repo.TopicAccuracy(ctx)
		if err != nil {
			return fmt.Errorf("query topic accuracy: %w", err)
		}
		if len(topics) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Topic Accuracy")
		rule(out, 48)
		fmt.Fprintf(out, "%-24s  %6s  %8s  %5s\n", "Topic", "Asked", "Correct", "Acc")
		rule(out, 48)
		for _, t := range topics {
			pct := 0
			if t.Asked > 0 {
				pct = t.Correct * 100 / t.Asked
			}
			fmt.Fprintf(out, "%-24s  %6d  %8d  %4d%%\n", truncate(t.Topic, 24), t.Asked, t.Correct, pct)
		}
		return nil
	},
}
