// Implements: prd007-lcagents-cli (R2.2: version command).
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lcagents/pkg/lcagents"
)

const modulePath = "github.com/mesh-intelligence/lcagents"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lcagents version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "lcagents v%s\nmodule: %s\n", lcagents.Version, modulePath)
			return nil
		},
	}
}
