package cmd

import (
	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Matchgrade MCP server",
	Long:  `Launch an MCP server that allows AI agents to grade match reports via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Verbose logs go to stderr, so stdio stays clean for the protocol.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return runGrading(func(pub contract.MatchPublisher) error {
			return mcp.StartMCPServer(rootCtx, cfg, storeManager, newDocumentSource(), pub)
		})
	},
}
