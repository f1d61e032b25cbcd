// Implements: prd007-lcagents-cli R2.4 (uninstall command);
//             prd003-install-tree R6 (keep-config semantics);
//             prd006-shell-integration R2.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lcagents/internal/installer"
	"github.com/mesh-intelligence/lcagents/internal/shell"
)

func newUninstallCmd() *cobra.Command {
	var (
		keepConfig   bool
		shellProfile string
	)

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the .lcagents tree",
		Long: "Delete the entire .lcagents tree, all layers, unconditionally.\n" +
			"With --keep-config, only runtime/config.yaml and\n" +
			"runtime/tech-stack.yaml survive removal.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("uninstall: %s", err))
			}

			if err := installer.Uninstall(root, keepConfig); err != nil {
				return exitError(exitSysError, fmt.Sprintf("uninstall: %s", err))
			}

			if shellProfile != "" {
				if _, err := shell.RemoveAliases(shellProfile); err != nil {
					return exitError(exitSysError, fmt.Sprintf("uninstall: shell aliases: %s", err))
				}
			}

			out := cmd.OutOrStdout()
			if keepConfig {
				fmt.Fprintln(out, "lcagents removed (runtime config preserved)")
			} else {
				fmt.Fprintln(out, "lcagents removed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepConfig, "keep-config", false, "preserve runtime config files")
	cmd.Flags().StringVar(&shellProfile, "shell-profile", "", "shell profile file to remove the alias block from (skipped when empty)")
	return cmd
}
