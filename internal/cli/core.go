// Core-system bundle commands.
// Implements: prd003-install-tree R3 (bundle discovery).
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lcagents/internal/coresys"
)

func newCoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "core",
		Short: "Inspect core-system bundles",
	}

	cmd.AddCommand(newCoreListCmd())
	return cmd
}

func newCoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List embedded core-system bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifests, err := coresys.Available()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("core list: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd, manifests)
			}

			out := cmd.OutOrStdout()
			for _, m := range manifests {
				fmt.Fprintf(out, "%s v%s  %s\n", m.Name, m.Version, m.Description)
			}
			return nil
		},
	}
}
