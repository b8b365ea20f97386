package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Manage session folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return foldersListCmd.RunE(cmd, args)
	},
}

var foldersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sessions := a.archive.Sessions()
		for _, f := range a.folders.Folders() {
			count := 0
			for _, s := range sessions {
				if s.FolderID == f.ID {
					count++
				}
			}
			fmt.Printf("%s  %s (%d sessions)\n", f.ID, f.Name, count)
		}
		return nil
	},
}

var foldersCreateCmd = &cobra.Command{
	Use:   "create <name...>",
	Short: "Create a folder",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.folders.Create(strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to create folder: %w", err)
		}
		if f == nil {
			fmt.Println("Folder name is blank; nothing created.")
			return nil
		}
		fmt.Printf("Created folder %q (%s)\n", f.Name, f.ID)
		return nil
	},
}

var foldersDeleteCmd = &cobra.Command{
	Use:   "delete <folder-id>",
	Short: "Delete a folder (its sessions move to General)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.folders.Delete(args[0], a.archive); err != nil {
			return fmt.Errorf("failed to delete folder: %w", err)
		}
		fmt.Println("Deleted. Sessions were moved to the General folder.")
		return nil
	},
}

func init() {
	foldersCmd.AddCommand(foldersListCmd, foldersCreateCmd, foldersDeleteCmd)
	rootCmd.AddCommand(foldersCmd)
}
