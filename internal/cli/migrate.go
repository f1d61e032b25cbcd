// Implements: prd003-install-tree R5 (one-time flat-tree migration).
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Restructure a legacy flat installation into layers",
		Long: "Recognize a pre-layering .lcagents tree (resource directories at\n" +
			"the top level, no core/ subdirectory) and move its resources into\n" +
			"core/<core-system>/, creating the org, custom, and runtime layers.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newResolver()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("migrate: %s", err))
			}

			needed, err := r.NeedsMigration()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("migrate: %s", err))
			}
			if !needed {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate")
				return nil
			}

			if err := r.MigrateFromFlatStructure(); err != nil {
				return exitError(exitSysError, fmt.Sprintf("migrate: %s", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrated legacy installation to layered structure")
			return nil
		},
	}
}
