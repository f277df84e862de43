package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gifex/internal/adapters/driving/mcp"
)

// mcpRun starts the server. Tests replace it to avoid blocking on stdio.
var mcpRun = func(cmd *cobra.Command, server *mcp.Server) error {
	return server.Run(cmd.Context())
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server communicates over stdio using JSON-RPC and exposes:
  - find_gifs: list the saved GIFs of a user.json export
  - gifex://settings: the key path and policy in effect

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "gifex": {
        "command": "/path/to/gifex",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Loader:   loaderService,
		Finder:   finderService,
		Settings: settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	return mcpRun(cmd, server)
}
