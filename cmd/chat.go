package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edumentor/internal/mentor"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the study mentor in the terminal",
	Long: `Chat with the study mentor in the terminal.

Type a message and press Enter. "/reset" clears the conversation and
"/quit" (or Ctrl+D) exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildServices(cmd, serviceOptions{withStore: true})
		if err != nil {
			return err
		}
		defer svc.Close()

		if svc.mentor == nil {
			return errors.New("the mentor needs an LLM provider; set an API key (see `edumentor llm --help`)")
		}
		return chatLoop(cmd, svc.mentor, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func chatLoop(cmd *cobra.Command, conv *mentor.Conversation, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, mentor.Greeting)
	for {
		fmt.Fprint(out, "\nyou> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			conv.Reset()
			fmt.Fprintln(out, "(conversation cleared)")
			continue
		}

		reply, err := conv.Ask(cmd.Context(), line)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
		}
		fmt.Fprintf(out, "mentor> %s\n", reply)
	}
}
