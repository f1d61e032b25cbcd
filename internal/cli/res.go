// Resource commands: list, read, path, create, and search across layers.
// Implements: prd007-lcagents-cli R3 (resource commands, layer badges);
//             prd004-resource-scaffolding (R2: conflict guard, R3: extension
//             resources); prd005-resource-search R3.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lcagents/internal/index"
	"github.com/mesh-intelligence/lcagents/internal/resolver"
	"github.com/mesh-intelligence/lcagents/pkg/types"
)

func newResCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "res",
		Short: "Inspect and scaffold layered resources",
	}

	cmd.AddCommand(newResListCmd())
	cmd.AddCommand(newResReadCmd())
	cmd.AddCommand(newResPathCmd())
	cmd.AddCommand(newResCreateCmd())
	cmd.AddCommand(newResSearchCmd())
	return cmd
}

// layerBadge renders the layer tag shown next to resource names.
func layerBadge(l types.Layer) string {
	return "[" + strings.ToUpper(string(l)) + "]"
}

func newResListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [type]",
		Short: "List resolved resources",
		Long: `List the resolved view of one resource type, or of every standard
type when none is given. Each entry shows the layer that wins for that
name; shadowed copies in lower layers are not listed.

Valid types: ` + strings.Join(types.ResourceTypes, ", "),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newResolver()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("res list: %s", err))
			}

			resourceTypes := types.ResourceTypes
			if len(args) == 1 {
				if err := types.ValidateResourceType(args[0]); err != nil {
					return fmt.Errorf("invalid resource type %q", args[0])
				}
				resourceTypes = []string{args[0]}
			}

			var all []types.Resource
			for _, resourceType := range resourceTypes {
				view, err := r.ListResources(resourceType)
				if err != nil {
					// Partial failures must not hide the remaining
					// layers or types.
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", err)
				}
				all = append(all, view...)
			}

			if flags.jsonMode {
				return printJSON(cmd, all)
			}

			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, "No resources found")
				return nil
			}
			for _, resourceType := range resourceTypes {
				var section []types.Resource
				for _, res := range all {
					if res.Type == resourceType {
						section = append(section, res)
					}
				}
				if len(section) == 0 {
					continue
				}
				fmt.Fprintf(out, "%s:\n", resourceType)
				for _, res := range section {
					fmt.Fprintf(out, "  %-9s %s\n", layerBadge(res.Source), res.Name)
				}
			}
			return nil
		},
	}
}

func newResReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <type> <name>",
		Short: "Print the content of the winning resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := types.ValidateResourceType(args[0]); err != nil {
				return fmt.Errorf("invalid resource type %q", args[0])
			}

			r, err := newResolver()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("res read: %s", err))
			}

			content, err := r.ReadResource(args[0], args[1])
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("res read: %s", err))
			}
			if content == nil {
				return fmt.Errorf("resource %s/%s not found in any layer", args[0], args[1])
			}

			fmt.Fprint(cmd.OutOrStdout(), string(content))
			return nil
		},
	}
}

func newResPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <type> <name>",
		Short: "Print the path and layer of the winning resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := types.ValidateResourceType(args[0]); err != nil {
				return fmt.Errorf("invalid resource type %q", args[0])
			}

			r, err := newResolver()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("res path: %s", err))
			}

			res, err := r.Resolve(args[0], args[1])
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("res path: %s", err))
			}
			if res == nil {
				return fmt.Errorf("resource %s/%s not found in any layer", args[0], args[1])
			}

			if flags.jsonMode {
				return printJSON(cmd, res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", layerBadge(res.Source), res.Path)
			return nil
		},
	}
}

func newResCreateCmd() *cobra.Command {
	var (
		content     string
		fromFile    string
		force       bool
		asExtension bool
	)

	cmd := &cobra.Command{
		Use:   "create <type> <name>",
		Short: "Create a resource in the custom layer",
		Long: `Create a resource under custom/<type>/. The name gains a .md
extension when it carries none.

Creation is conflict-guarded: when a resource with the same base name
already resolves in any layer, nothing is written and the winning layer
and path are reported. Resolve the conflict by picking a new name, by
creating a linked extension resource (--as-extension, named
<base>-enhancement.md), or by shadowing explicitly (--force).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceType, name := args[0], args[1]
			if err := types.ValidateResourceType(resourceType); err != nil {
				return fmt.Errorf("invalid resource type %q", resourceType)
			}
			if err := types.ValidateResourceName(name); err != nil {
				return fmt.Errorf("invalid resource name %q", name)
			}

			r, err := newResolver()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("res create: %s", err))
			}

			targetName := name
			if types.NormalizeBaseName(targetName) == targetName {
				targetName += ".md"
			}
			if asExtension {
				targetName = resolver.ExtensionName(name)
			}

			// Guard against shadowing before anything is written.
			conflict, err := r.CheckConflict(resourceType, targetName)
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("res create: %s", err))
			}
			if conflict != nil && !force {
				return fmt.Errorf("resource %q already exists: %s %s\n"+
					"pick a new name, create an extension with --as-extension, or shadow it with --force",
					types.NormalizeBaseName(targetName), layerBadge(conflict.Source), conflict.Path)
			}

			body := content
			if fromFile != "" {
				data, err := os.ReadFile(fromFile)
				if err != nil {
					return exitError(exitSysError, fmt.Sprintf("res create: %s", err))
				}
				body = string(data)
			}
			if body == "" {
				body = "# " + types.NormalizeBaseName(targetName) + "\n"
			}

			target := r.Tree().ResourcePath(types.LayerCustom, resourceType, targetName)
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return exitError(exitSysError, fmt.Sprintf("res create: %s", err))
			}
			if err := os.WriteFile(target, []byte(body), 0o644); err != nil {
				return exitError(exitSysError, fmt.Sprintf("res create: %s", err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", layerBadge(types.LayerCustom), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "resource content (default: a markdown heading)")
	cmd.Flags().StringVar(&fromFile, "file", "", "read resource content from a file")
	cmd.Flags().BoolVar(&force, "force", false, "shadow an existing resource explicitly")
	cmd.Flags().BoolVar(&asExtension, "as-extension", false, "create a linked <base>-enhancement resource instead")
	return cmd
}

func newResSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search resource names and content",
		Long: "Rebuild the search index from the resolved view and match the\n" +
			"query against resource names and content, case-insensitively.\n" +
			"Only winning entries are searched; shadowed copies never match.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newResolver()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("res search: %s", err))
			}

			ix := index.New()
			if err := ix.Attach(r.Tree().IndexPath()); err != nil {
				return exitError(exitSysError, fmt.Sprintf("res search: %s", err))
			}
			defer ix.Detach()

			if _, err := ix.Rebuild(r); err != nil {
				return exitError(exitSysError, fmt.Sprintf("res search: %s", err))
			}

			matches, err := ix.Search(args[0])
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("res search: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd, matches)
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No matches")
				return nil
			}
			for _, res := range matches {
				fmt.Fprintf(out, "%-9s %s/%s\n", layerBadge(res.Source), res.Type, res.Name)
			}
			return nil
		},
	}
}

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
