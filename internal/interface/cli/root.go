package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askdeck/askdeck/internal/core/config"
)

var (
	dbPath      string
	userFlag    string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "askdeck",
	Short: "Personal AI chat with archived, foldered sessions",
	Long: `askdeck - chat with your assistant and keep every conversation

Conversations are archived into named sessions you can pin, search, file
into folders, and export as plain text. Everything lives in a local
database; nothing is stored server-side.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "Database path")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "User identity (defaults to configured user)")
}
