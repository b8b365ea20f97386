package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Archive the live conversation and start fresh",
	Long: `Archive the live conversation into a named session and clear the
buffer. An empty conversation is simply cleared without creating a session.`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	session, err := a.archive.ArchiveCurrent(a.engine)
	if err != nil {
		return fmt.Errorf("failed to archive conversation: %w", err)
	}

	if session == nil {
		fmt.Println("Conversation was empty; nothing archived.")
		return nil
	}

	fmt.Printf("Archived %q (%d messages) as %s\n", session.Title, len(session.Messages), session.ID)
	return nil
}
