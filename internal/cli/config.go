// Runtime configuration commands.
// Implements: prd002-runtime-config R4 (get/set/show);
//             prd007-lcagents-cli R4.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lcagents/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write the runtime configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the full runtime configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("config show: %s", err))
			}

			cfg, err := config.NewStore(root).Load()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("config show: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd, cfg)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "coreSystem:        ", cfg.CoreSystem)
			fmt.Fprintln(out, "fallbackCoreSystem:", cfg.FallbackCoreSystem)
			fmt.Fprintln(out, "installationId:    ", cfg.InstallationID)
			fmt.Fprintln(out, "version:           ", cfg.Version)
			fmt.Fprintln(out, "installedAt:       ", cfg.InstalledAt)
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one runtime configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("config get: %s", err))
			}

			value, err := config.NewStore(root).Get(args[0])
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("config get: %s", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Update one runtime configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("config set: %s", err))
			}

			if err := config.NewStore(root).Set(args[0], args[1]); err != nil {
				return fmt.Errorf("config set: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
			return nil
		},
	}
}
