// Package commands implements the restitch command line interface.
package commands

import (
	"github.com/spf13/cobra"
)

// Execute runs the restitch CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "restitch",
		Short:         "Generate, parse, and merge Go REST clients from API model documents",
		Long:          "restitch compiles REST-API model documents (YAML or JSON) into Go record types and HTTP clients, and merges fresh model fragments back into existing generated source without disturbing hand edits.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newMergeCmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
