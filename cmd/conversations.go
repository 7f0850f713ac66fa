package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zhubert/codechat/internal/conversation"
	"github.com/zhubert/codechat/internal/session"
	"github.com/zhubert/codechat/internal/ui"
)

var skipConfirm bool

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Start a conversation",
	Long: `Creates a conversation on the backend and prints its id.
Without a name the backend picks one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known conversations, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a conversation",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation",
	Long: `Deletes a conversation on the backend and forgets it locally.
Prompts for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a conversation with its code",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	deleteCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(newCmd, listCmd, renameCmd, deleteCmd, showCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	sess, _, _, err := openSession()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	conv, err := sess.Create(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", conv.ID, conv.Name)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	sess, _, _, err := openSession()
	if err != nil {
		return err
	}
	convs := sess.Conversations()
	if len(convs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No conversations yet.")
		return nil
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED")
	for _, c := range convs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, c.CreatedAt.Display())
	}
	return tw.Flush()
}

func runRename(cmd *cobra.Command, args []string) error {
	sess, _, _, err := openSession()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	res, err := sess.Rename(ctx, conversation.ID(args[0]), args[1])
	if err != nil {
		return err
	}
	if !res.Changed {
		fmt.Fprintf(cmd.OutOrStdout(), "Name unchanged: %s\n", res.Name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed to %s\n", res.Name)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	sess, _, _, err := openSession()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	var confirmer session.Confirmer = readerConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
	if skipConfirm {
		confirmer = session.Answer(true)
	}

	res, err := sess.Delete(ctx, conversation.ID(args[0]), confirmer)
	if err != nil {
		return err
	}
	if !res.Deleted {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Conversation deleted.")
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	sess, _, _, err := openSession()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	snap, err := sess.Load(ctx, conversation.ID(args[0]))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	title := snap.Conversation.Name
	if title == "" {
		title = string(snap.Conversation.ID)
	}
	fmt.Fprintf(out, "# %s (%s)\n", title, snap.Conversation.ID)
	for _, m := range snap.Messages {
		printMessage(out, m)
	}
	if len(snap.Unassociated) > 0 {
		fmt.Fprintln(out, "\n## Other code")
		for _, a := range snap.Unassociated {
			printArtifact(out, a)
		}
	}
	for _, f := range snap.Contexts {
		fmt.Fprintf(out, "\n## Context: %s\n%s\n", f.Path, f.Content)
	}
	fmt.Fprintf(out, "\ntokens %s\n", ui.FormatTokens(snap.Tokens))
	return nil
}

func printMessage(w io.Writer, m conversation.Message) {
	fmt.Fprintf(w, "\n[%s] %s\n%s\n", m.Role, m.Timestamp.Display(), m.Content)
	for _, a := range m.Artifacts {
		printArtifact(w, a)
	}
}

func printArtifact(w io.Writer, a conversation.Artifact) {
	fmt.Fprintf(w, "--- code %s (%s) ---\n%s\n", a.ID, conversation.NormalizeLanguage(a.Language), a.Content)
}
