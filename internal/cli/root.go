// Package cli implements the lcagents command-line interface.
// Implements: prd007-lcagents-cli (R1: Root command structure, R6: Global
//             flags, R7: Exit codes, R8: Output modes);
//             docs/ARCHITECTURE § System Components.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lcagents/internal/config"
	"github.com/mesh-intelligence/lcagents/internal/coresys"
	"github.com/mesh-intelligence/lcagents/internal/paths"
	"github.com/mesh-intelligence/lcagents/internal/resolver"
)

// Exit codes (prd007-lcagents-cli R7).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	root     string
	jsonMode bool
}

var flags rootFlags

// NewRootCmd creates the top-level "lcagents" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lcagents",
		Short: "Layered agent-definition installer and resolver",
		Long: "lcagents installs a layered .lcagents resource tree and resolves\n" +
			"agent definitions, tasks, and templates across the core, org,\n" +
			"custom, and runtime layers.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	// Global persistent flags (prd007-lcagents-cli R6).
	root.PersistentFlags().StringVar(&flags.root, "root", "", "project root (default: $LCAGENTS_ROOT or current directory)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newUninstallCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newResCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newCoreCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// resolveRoot returns the project root from flag, env, or cwd.
func resolveRoot() (string, error) {
	return paths.ResolveRoot(flags.root)
}

// activeCoreSystem returns the core system the resolver should use:
// the runtime config's active name, its fallback, or the default bundle
// when nothing is installed yet.
func activeCoreSystem(store *config.Store) (string, error) {
	cfg, err := store.Load()
	if err != nil {
		return "", err
	}
	if name := cfg.ActiveOrFallback(); name != "" {
		return name, nil
	}
	return coresys.DefaultName, nil
}

// newResolver builds a Resolver for the resolved root and the active core
// system.
func newResolver() (*resolver.Resolver, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	name, err := activeCoreSystem(config.NewStore(root))
	if err != nil {
		return nil, err
	}
	return resolver.New(root, name), nil
}

// exitError prints the error to stderr and exits with the given code.
func exitError(code int, msg string) error {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
	return nil // unreachable
}
