// Implements: prd007-lcagents-cli (R2.1: init command, R10: Init behavior);
//             prd003-install-tree (R3: core materialization, R5: migration);
//             prd006-shell-integration R1.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lcagents/internal/coresys"
	"github.com/mesh-intelligence/lcagents/internal/installer"
	"github.com/mesh-intelligence/lcagents/internal/shell"
)

func newInitCmd() *cobra.Command {
	var (
		coreSystem   string
		shellProfile string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Install the layered .lcagents tree",
		Long: "Create the .lcagents tree: materialize the chosen core system,\n" +
			"create the org, custom, and runtime layers, migrate a legacy flat\n" +
			"installation if present, and write the runtime configuration.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("init: %s", err))
			}

			cfg, err := installer.Install(root, coreSystem)
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("init: %s", err))
			}

			if shellProfile != "" {
				if _, err := shell.EnsureAliases(shellProfile, root); err != nil {
					return exitError(exitSysError, fmt.Sprintf("init: shell aliases: %s", err))
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "lcagents initialized successfully")
			fmt.Fprintln(out, "  root:       ", root)
			fmt.Fprintln(out, "  core system:", cfg.CoreSystem)
			if shellProfile != "" {
				fmt.Fprintln(out, "  aliases:    ", shellProfile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&coreSystem, "core-system", coresys.DefaultName, "core-system bundle to install")
	cmd.Flags().StringVar(&shellProfile, "shell-profile", "", "shell profile file to write the alias block to (skipped when empty)")
	return cmd
}
