package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/edumentor/internal/quiz"
	"github.com/abhisek/edumentor/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent exam attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		quizID, _ := cmd.Flags().GetString("quiz")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit}
		if quizID != "" {
			opts.Equal = map[string]any{"quiz_id": quizID}
		}
		attempts, err := s.EventRepo().QueryAttempts(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-28s  %-7s  %-12s  %-20s  %s\n",
			"ID", "Timestamp", "Exam", "Score", "Tier", "Review", "Feedback")
		rule(out, 110)

		for _, a := range attempts {
			fmt.Fprintf(out, "%-5d  %-19s  %-28s  %-7s  %-12s  %-20s  %s\n",
				a.ID,
				a.Timestamp.Local().Format(timeLayout),
				truncate(a.QuizTitle, 28),
				fmt.Sprintf("%d/%d", a.Score, a.Total),
				quiz.Tier(a.Tier).Label(),
				truncate(a.WeakTopic, 20),
				a.FeedbackSource,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().StringP("quiz", "q", "", "Only show attempts for this exam ID")
}
