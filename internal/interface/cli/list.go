package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/askdeck/askdeck/internal/core/search"
)

var (
	listLimit  int
	listFolder string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived sessions",
	Long: `List archived sessions pinned-first, most recently archived first
within each group.

Examples:
  askdeck list
  askdeck list --limit 10
  askdeck list --folder default`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of sessions to display")
	listCmd.Flags().StringVar(&listFolder, "folder", "", "Only sessions in this folder id")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sessions := search.SortPinnedFirst(a.archive.Sessions())

	if listFolder != "" {
		filtered := sessions[:0]
		for _, s := range sessions {
			if s.FolderID == listFolder {
				filtered = append(filtered, s)
			}
		}
		sessions = filtered
	}

	if len(sessions) > listLimit {
		sessions = sessions[:listLimit]
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions yet. Chat with 'askdeck ask', then archive with 'askdeck new'.")
		return nil
	}

	fmt.Printf("Showing %d session(s)\n\n", len(sessions))
	for i, s := range sessions {
		pin := " "
		if s.Pinned {
			pin = "*"
		}
		fmt.Printf("[%d]%s %s\n", i+1, pin, s.Title)
		fmt.Printf("     id: %s  folder: %s  %d messages  archived %s\n",
			s.ID, s.FolderID, len(s.Messages), humanize.Time(s.CreatedAt))
	}
	return nil
}
