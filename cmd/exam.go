package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	ex "github.com/abhisek/edumentor/internal/exam"
	"github.com/abhisek/edumentor/internal/quiz"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "List, take, and inspect mock exams",
}

var examListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available exams",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %-32s  %-14s  %9s  %s\n",
			"ID", "Title", "Subject", "Questions", "Duration")
		rule(out, 96)
		for _, q := range catalog.All() {
			fmt.Fprintf(out, "%-24s  %-32s  %-14s  %9d  %s\n",
				truncate(q.ID, 24), truncate(q.Title, 32), truncate(q.Subject, 14), q.Total(), q.Duration)
		}
		fmt.Fprintf(out, "\nTotal: %d exams\n", catalog.Len())
		return nil
	},
}

var examTakeCmd = &cobra.Command{
	Use:   "take <id>",
	Short: "Grade an exam and print coaching feedback",
	Long: `Grade an exam and print coaching feedback.

Answers are zero-based option indices or letters, comma separated, in
question order. Use "-" to leave a question unanswered. Without --answers
the questions are asked one by one on stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		offline, _ := cmd.Flags().GetBool("offline")
		asJSON, _ := cmd.Flags().GetBool("json")
		noSave, _ := cmd.Flags().GetBool("no-save")

		svc, err := buildServices(cmd, serviceOptions{offline: offline, withStore: !noSave})
		if err != nil {
			return err
		}
		defer svc.Close()

		q, err := svc.catalog.Get(args[0])
		if err != nil {
			return err
		}

		answers, err := answersFor(cmd, q)
		if err != nil {
			return err
		}

		eval, err := svc.exams.Evaluate(cmd.Context(), q.ID, answers)
		if err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(eval)
		}
		printEvaluation(cmd.OutOrStdout(), q, eval)
		return nil
	},
}

var examPromptCmd = &cobra.Command{
	Use:   "prompt <id>",
	Short: "Print the analysis prompt that would be sent for feedback",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		q, err := catalog.Get(args[0])
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetString("answers")
		answers, err := parseAnswers(raw)
		if err != nil {
			return err
		}
		if err := quiz.ValidateAnswers(q.Questions, answers); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), ex.Evaluate(q, answers).Prompt)
		return nil
	},
}

func init() {
	examTakeCmd.Flags().StringP("answers", "a", "", "Comma-separated answers, e.g. 1,0,2 or B,A,C")
	examTakeCmd.Flags().Bool("offline", false, "Skip the LLM and use the offline feedback message")
	examTakeCmd.Flags().Bool("json", false, "Print the evaluation as JSON")
	examTakeCmd.Flags().Bool("no-save", false, "Do not record the attempt")

	examPromptCmd.Flags().StringP("answers", "a", "", "Comma-separated answers, e.g. 1,0,2 or B,A,C")

	examCmd.AddCommand(examListCmd)
	examCmd.AddCommand(examTakeCmd)
	examCmd.AddCommand(examPromptCmd)
}

// answersFor reads --answers, or asks each question on stdin.
func answersFor(cmd *cobra.Command, q *quiz.Quiz) (quiz.AnswerSet, error) {
	if raw, _ := cmd.Flags().GetString("answers"); raw != "" {
		return parseAnswers(raw)
	}
	return askAnswers(cmd.InOrStdin(), cmd.OutOrStdout(), q)
}

// parseAnswers turns "1,0,-,C" into an AnswerSet. Letters map to indices
// (A=0); "-" or an empty field is unanswered.
func parseAnswers(raw string) (quiz.AnswerSet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return quiz.AnswerSet{}, nil
	}
	fields := strings.Split(raw, ",")
	answers := make(quiz.AnswerSet, len(fields))
	for i, f := range fields {
		v, err := parseAnswer(f)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i+1, err)
		}
		answers[i] = v
	}
	return answers, nil
}

func parseAnswer(field string) (int, error) {
	f := strings.TrimSpace(field)
	if f == "" || f == "-" {
		return quiz.Unanswered, nil
	}
	if r := []rune(f); len(r) == 1 && unicode.IsLetter(r[0]) {
		return int(unicode.ToUpper(r[0]) - 'A'), nil
	}
	n, err := strconv.Atoi(f)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid answer %q", f)
	}
	return n, nil
}

// askAnswers prompts for every question in order. A blank line leaves the
// question unanswered; invalid input is asked again.
func askAnswers(in io.Reader, out io.Writer, q *quiz.Quiz) (quiz.AnswerSet, error) {
	scanner := bufio.NewScanner(in)
	answers := quiz.NewAnswerSet(q.Total())

	fmt.Fprintf(out, "%s (%d questions)\n\n", q.Title, q.Total())
	for i, question := range q.Questions {
		fmt.Fprintf(out, "Q%d. %s\n", i+1, question.Prompt)
		for j, opt := range question.Options {
			fmt.Fprintf(out, "   %c) %s\n", 'A'+j, opt)
		}
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, fmt.Errorf("read answer: %w", err)
				}
				return answers, nil
			}
			v, err := parseAnswer(scanner.Text())
			if err == nil && v < len(question.Options) {
				answers[i] = v
				break
			}
			fmt.Fprintf(out, "Enter a letter A-%c, an index, or leave blank to skip.\n", 'A'+len(question.Options)-1)
		}
		fmt.Fprintln(out)
	}
	return answers, nil
}

func printEvaluation(out io.Writer, q *quiz.Quiz, eval *ex.Evaluation) {
	res := eval.Result
	sep := strings.Repeat("─", 60)

	fmt.Fprintln(out, res.QuizTitle)
	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "Score: %d/%d  (%s)\n\n", res.Score, res.Total, res.Tier.Label())

	for i, r := range res.Questions {
		mark := "✓"
		if !r.IsRight {
			mark = "✗"
		}
		picked := "unanswered"
		if r.Answered {
			picked = q.Questions[i].Options[r.Selected]
		}
		fmt.Fprintf(out, "%s Q%d  %-22s  %s\n", mark, r.Position+1, truncate(r.Topic, 22), picked)
	}

	if res.StrongTopic != "" || res.WeakTopic != "" {
		fmt.Fprintln(out)
	}
	if res.StrongTopic != "" {
		fmt.Fprintf(out, "Strong: %s\n", res.StrongTopic)
	}
	if res.WeakTopic != "" {
		fmt.Fprintf(out, "Review: %s\n", res.WeakTopic)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, "MENTOR FEEDBACK")
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, eval.Feedback.Text)
}
