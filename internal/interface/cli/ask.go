package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askdeck/askdeck/internal/core/chat"
)

var askAttach string

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Send a message to the assistant",
	Long: `Send one message to the assistant within the live conversation and
print the reply. The conversation persists across invocations; archive it
with 'askdeck new'.

Examples:
  askdeck ask explain quicksort in simple terms
  askdeck ask --attach diagram.png what does this show`,
	Args: cobra.ArbitraryArgs,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askAttach, "attach", "", "Attach a file to the message")
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if askAttach != "" {
		if err := a.engine.Attach(askAttach); err != nil {
			return fmt.Errorf("failed to attach file: %w", err)
		}
	}

	text := strings.Join(args, " ")
	err = a.engine.Submit(cmd.Context(), text)
	switch {
	case errors.Is(err, chat.ErrBlankMessage):
		return errors.New("nothing to send: provide a message or --attach a file")
	case err != nil:
		return err
	}

	printLastReply(a)
	return nil
}
