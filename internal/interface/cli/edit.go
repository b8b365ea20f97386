package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askdeck/askdeck/internal/core/chat"
	"github.com/askdeck/askdeck/internal/core/models"
)

var editCmd = &cobra.Command{
	Use:   "edit <index> <new text...>",
	Short: "Edit an earlier message and resubmit",
	Long: `Rewrite the message at the given index (see 'askdeck ask' output
order, starting at 0), discard everything after it, and ask again with the
new text.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEdit,
}

var regenerateCmd = &cobra.Command{
	Use:   "regenerate",
	Short: "Ask again for the last reply",
	Long: `Discard everything after the most recent user message and request a
fresh reply to it. Does nothing when the conversation has no user message.`,
	Args: cobra.NoArgs,
	RunE: runRegenerate,
}

func init() {
	rootCmd.AddCommand(editCmd, regenerateCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid message index %q", args[0])
	}

	err = a.engine.EditAndResubmit(cmd.Context(), index, strings.Join(args[1:], " "))
	switch {
	case errors.Is(err, chat.ErrBlankMessage):
		return errors.New("new text must not be blank")
	case errors.Is(err, chat.ErrNotUserMessage):
		return fmt.Errorf("index %d is not one of your messages", index)
	case err != nil:
		return err
	}

	printLastReply(a)
	return nil
}

func runRegenerate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.engine.RegenerateLast(cmd.Context()); err != nil {
		return err
	}
	printLastReply(a)
	return nil
}

func printLastReply(a *app) {
	msgs := a.engine.Snapshot()
	if len(msgs) == 0 {
		fmt.Println("The conversation is empty.")
		return
	}
	last := msgs[len(msgs)-1]
	if last.Role == models.RoleAssistant {
		fmt.Println(last.Content)
	}
}
