package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askdeck/askdeck/internal/core/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search archived sessions",
	Long: `Search session titles and message content, case-insensitively.
Results come back pinned-first and are grouped by folder.

Date filters can be mixed into the query:
  after:yesterday, before:2025-08-01, after:"last week"

Examples:
  askdeck search quicksort
  askdeck search deploy after:last-week`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	query := strings.Join(args, " ")
	results := search.Search(a.archive.Sessions(), query)
	if len(results) == 0 {
		fmt.Println("No matching conversations.")
		return nil
	}

	groups := search.GroupByFolder(results, a.folders.Folders())
	for _, g := range groups {
		fmt.Printf("%s (%d)\n", g.Folder.Name, len(g.Sessions))
		for _, s := range g.Sessions {
			pin := " "
			if s.Pinned {
				pin = "*"
			}
			fmt.Printf("  %s %s  (%s, %d messages)\n", pin, s.Title, s.ID, len(s.Messages))
		}
		fmt.Println()
	}
	return nil
}
