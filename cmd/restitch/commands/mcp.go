package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/restitch/restitch/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve restitch tools over the Model Context Protocol (stdio)",
		Long:  "Starts an MCP server on stdio exposing generate, generate_dto, parse_source, merge_dto, and merge_api tools. Configure with RESTITCH_* environment variables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return mcpserver.Run(ctx)
		},
	}
}
