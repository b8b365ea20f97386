package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askdeck/askdeck/cmd/askdeck/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server exposing the session archive",
	Long: `Start an MCP (Model Context Protocol) server that lets other tools
search and retrieve your archived sessions.

Configure in an MCP client's config file:
  {
    "mcpServers": {
      "askdeck": {
        "command": "askdeck",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := mcp.StartServer(a.archive, a.folders); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
