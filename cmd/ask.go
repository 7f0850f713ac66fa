package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/codechat/internal/conversation"
	"github.com/zhubert/codechat/internal/pipeline"
	"github.com/zhubert/codechat/internal/ui"
)

var (
	askConversation string
	askFile         string
)

var askCmd = &cobra.Command{
	Use:   "ask [flags] <prompt...>",
	Short: "Send one prompt and print the reply",
	Long: `Sends a prompt without starting the TUI and prints the reply and any code.

Without --conversation a new conversation is started and named after the prompt.

Examples:
  codechat ask "write a fizzbuzz in go"
  codechat ask -c 12 "now add tests"
  codechat ask -f main.go "why does this panic?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askConversation, "conversation", "c", "", "Continue this conversation id")
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "Attach a file to the prompt")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	sess, _, backend, err := openSession()
	if err != nil {
		return err
	}
	if askConversation != "" {
		sess.Select(conversation.ID(askConversation))
	}

	sub := pipeline.Submission{Prompt: strings.Join(args, " ")}
	if askFile != "" {
		data, err := os.ReadFile(askFile)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", askFile, err)
		}
		sub.File = &pipeline.Attachment{Name: filepath.Base(askFile), Content: data}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	p := pipeline.New(backend, sess)
	if settings == nil || !settings.Quiet {
		p.OnStateChange(func(s pipeline.State) {
			if s == pipeline.Submitting {
				fmt.Fprintln(cmd.ErrOrStderr(), "Waiting for a reply...")
			}
		})
	}
	out, err := p.Submit(ctx, sub)
	w := cmd.OutOrStdout()
	if out.Created != nil {
		fmt.Fprintf(w, "Started conversation %s (%s)\n", out.Created.Name, out.Created.ID)
	}
	if err != nil {
		return err
	}

	for _, m := range out.Messages {
		if m.Role != conversation.RoleAssistant {
			continue
		}
		fmt.Fprintln(w, m.Content)
		for _, a := range m.Artifacts {
			printArtifact(w, a)
		}
	}
	if out.Tokens != nil {
		fmt.Fprintf(w, "\ntokens %s\n", ui.FormatTokens(*out.Tokens))
	}
	return nil
}
