package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askdeck/askdeck/internal/core/models"
)

var renameCmd = &cobra.Command{
	Use:   "rename <session-id> <title...>",
	Short: "Rename a session",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		title := strings.Join(args[1:], " ")
		if err := a.archive.Rename(args[0], title); err != nil {
			return fmt.Errorf("failed to rename session: %w", err)
		}
		fmt.Printf("Renamed session to %q\n", title)
		return nil
	},
}

var pinCmd = &cobra.Command{
	Use:   "pin <session-id>",
	Short: "Toggle a session's pin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.archive.TogglePin(args[0]); err != nil {
			return fmt.Errorf("failed to toggle pin: %w", err)
		}
		session, err := a.archive.Get(args[0])
		if err != nil {
			return err
		}
		if session.Pinned {
			fmt.Println("Pinned.")
		} else {
			fmt.Println("Unpinned.")
		}
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <session-id> <folder-id>",
	Short: "Move a session into a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		folderID := args[1]
		if !a.folders.Exists(folderID) {
			return fmt.Errorf("folder %q does not exist", folderID)
		}
		if err := a.archive.MoveToFolder(args[0], folderID); err != nil {
			return fmt.Errorf("failed to move session: %w", err)
		}
		fmt.Printf("Moved session to folder %s\n", folderID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.archive.Delete(args[0]); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		fmt.Println("Deleted.")
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		session, err := a.archive.Get(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s  (%s, %d messages)\n\n", session.Title, session.CreatedAtDisplay, len(session.Messages))
		for _, m := range session.Messages {
			label := "[AI]"
			if m.Role == models.RoleUser {
				label = "[You]"
			}
			fmt.Printf("%s: %s\n\n", label, m.Content)
		}
		return nil
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume <session-id>",
	Short: "Load a session into the live conversation",
	Long: `Replace the live conversation with a copy of the session's messages.
The session itself is untouched; archiving again creates a new session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.archive.LoadIntoConversation(args[0], a.engine); err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		fmt.Println("Loaded session into the live conversation.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd, pinCmd, moveCmd, deleteCmd, showCmd, resumeCmd)
}
