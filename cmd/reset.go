package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/edumentor/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded attempts and LLM events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes %s; re-run with --yes to confirm", dbPath)
		}

		removed, err := store.Remove(dbPath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(removed) == 0 {
			fmt.Fprintln(out, "Nothing to delete at", dbPath)
			return nil
		}
		for _, p := range removed {
			fmt.Fprintln(out, "Deleted", p)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
