package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edumentor/internal/llm"
	"github.com/abhisek/edumentor/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM configuration and request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		attempt, _ := cmd.Flags().GetString("attempt")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		opts := store.QueryOpts{Limit: limit, Equal: map[string]any{}}
		if purpose != "" {
			opts.Equal["purpose"] = purpose
		}
		if attempt != "" {
			opts.Equal["attempt_id"] = attempt
		}
		if failedOnly {
			opts.Equal["success"] = false
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}
		printEventTable(out, events)
		return nil
	},
}

func printEventTable(out io.Writer, events []store.LLMEvent) {
	const row = "%-5v  %-19s  %-14s  %-28s  %6v  %6v  %7v  %s\n"
	fmt.Fprintf(out, row, "ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
	rule(out, 100)
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(out, row,
			e.ID,
			e.Timestamp.Local().Format(timeLayout),
			truncate(e.Purpose, 14),
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func printEvent(out io.Writer, e *store.LLMEvent) {
	field := func(name, format string, args ...any) {
		fmt.Fprintf(out, "%-10s %s\n", name+":", fmt.Sprintf(format, args...))
	}
	field("ID", "%d", e.ID)
	field("Time", "%s", e.Timestamp.Local().Format(timeLayout))
	field("Provider", "%s", e.Provider)
	field("Model", "%s", e.Model)
	field("Purpose", "%s", e.Purpose)
	if e.AttemptID != "" {
		field("Attempt", "%s", e.AttemptID)
	}
	field("Tokens", "%d in / %d out", e.InputTokens, e.OutputTokens)
	field("Latency", "%dms", e.LatencyMs)
	field("Success", "%v", e.Success)
	if e.ErrorMessage != "" {
		field("Error", "%s", e.ErrorMessage)
	}

	for _, section := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintln(out)
		rule(out, 60)
		fmt.Fprintln(out, section.title)
		rule(out, 60)
		if section.body == "" {
			section.body = "(not captured)"
		}
		fmt.Fprintln(out, section.body)
	}
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		printPurposeUsage(out, byPurpose)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) > 0 {
			fmt.Fprintln(out)
			printModelCost(out, byModel)
		}
		return nil
	},
}

func printPurposeUsage(out io.Writer, stats []store.PurposeUsage) {
	const row = "%-16s  %6v  %10v  %10v  %10v  %8v\n"
	fmt.Fprintln(out, "Usage by Purpose")
	rule(out, 72)
	fmt.Fprintf(out, row, "Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	rule(out, 72)

	var calls, in, outTok int
	for _, st := range stats {
		fmt.Fprintf(out, row, st.Purpose, st.Calls, st.InputTokens, st.OutputTokens,
			st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
		calls += st.Calls
		in += st.InputTokens
		outTok += st.OutputTokens
	}
	rule(out, 72)
	fmt.Fprintf(out, row, "TOTAL", calls, in, outTok, in+outTok, "")
}

func printModelCost(out io.Writer, usage []store.ModelUsage) {
	const row = "%-32s  %6v  %10v  %10v  %10s\n"
	fmt.Fprintln(out, "Estimated Cost (USD)")
	rule(out, 72)
	fmt.Fprintf(out, row, "Model", "Calls", "Input", "Output", "Cost")
	rule(out, 72)

	var total float64
	var unpriced []string
	for _, mu := range usage {
		cost := "?"
		if price := llm.LookupCost(mu.Model); price != nil {
			c := price.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, mu.Model)
		}
		fmt.Fprintf(out, row, truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, cost)
	}
	rule(out, 72)

	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(out, row, label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
	}
}

var llmConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved LLM provider configuration (keys redacted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := llm.ResolveConfig()
		if err != nil {
			return err
		}

		model, key := cfg.Selected()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Provider:    %s\n", cfg.Provider)
		fmt.Fprintf(out, "Model:       %s\n", model)
		fmt.Fprintf(out, "API key:     %s\n", redact(key))
		fmt.Fprintf(out, "Timeout:     %s\n", cfg.Timeout)
		fmt.Fprintf(out, "Max tokens:  %d\n", cfg.MaxTokens)
		fmt.Fprintf(out, "Retries:     %d\n", cfg.Retry.MaxAttempts)
		return nil
	},
}

// redact keeps the last four characters of a secret.
func redact(secret string) string {
	if secret == "" {
		return "(none)"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

func rule(out io.Writer, width int) {
	fmt.Fprintln(out, strings.Repeat("─", width))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. quiz-feedback, mentor-chat)")
	llmListCmd.Flags().StringP("attempt", "a", "", "Only show calls made for this attempt ID")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd, llmConfigCmd)
}
