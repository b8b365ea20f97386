package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/askdeck/askdeck/internal/core/archive"
)

var (
	exportOutput string
	exportCopy   bool
)

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a session as plain text",
	Long: `Export a session transcript to a .txt file named from the sanitized
session title, or to a custom path with --output, or straight to the
clipboard with --copy.

Examples:
  askdeck export 0ccfddc4-00e7-443a-bb82-58ede5936619
  askdeck export 0ccfddc4-00e7-443a-bb82-58ede5936619 -o transcript.txt
  askdeck export 0ccfddc4-00e7-443a-bb82-58ede5936619 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: <sanitized-title>.txt)")
	exportCmd.Flags().BoolVar(&exportCopy, "copy", false, "Copy the transcript to the clipboard instead of writing a file")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sessionID := args[0]
	text, err := a.archive.ExportText(sessionID, a.cfg.ExportTemplate)
	if err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}

	if exportCopy {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Println("Copied transcript to clipboard.")
		return nil
	}

	outputPath := exportOutput
	if outputPath == "" {
		session, err := a.archive.Get(sessionID)
		if err != nil {
			return err
		}
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		outputPath = filepath.Join(cwd, archive.ExportFilename(session.Title))
	}

	if err := os.WriteFile(outputPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Exported session to: %s\n", outputPath)
	return nil
}
