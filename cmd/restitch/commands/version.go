package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restitch/restitch"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "restitch v%s\n", restitch.Version())
		},
	}
}
