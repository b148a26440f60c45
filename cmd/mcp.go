package cmd

import (
	"github.com/huangsam/githours/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the githours MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents estimate hours via the
estimate_hours tool. Flags and config set the defaults for every tool call.`,
	Args: cobra.MaximumNArgs(1),
	// stdio carries the protocol, so handlers never print headers.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, gitClient)
	},
}
