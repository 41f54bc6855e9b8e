package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/edumentor/internal/quiz"
	"github.com/abhisek/edumentor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "edumentor",
	Short: "Mock exams with AI coaching feedback",
	Long:  "Edumentor: take timed mock exams in the terminal, get a short coaching note on your weak topics, and chat with an AI study mentor.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDUMENTOR_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Directory of quiz bank files (overrides EDUMENTOR_BANK env var)")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file instead of ./.env")
	rootCmd.Flags().Bool("offline", false, "Run without an LLM provider")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadEnvFile loads --env-file, or ./.env when it exists. Variables already
// set in the environment win.
func loadEnvFile(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EDUMENTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveBankDir returns --bank, then EDUMENTOR_BANK. Empty means built-in
// quizzes only.
func resolveBankDir(cmd *cobra.Command) string {
	if d, _ := cmd.Flags().GetString("bank"); d != "" {
		return d
	}
	return os.Getenv("EDUMENTOR_BANK")
}

func loadCatalog(cmd *cobra.Command) (*quiz.Catalog, error) {
	dir := resolveBankDir(cmd)
	c, err := quiz.LoadCatalog(dir)
	if err != nil {
		return nil, fmt.Errorf("load quiz bank: %w", err)
	}
	return c, nil
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
