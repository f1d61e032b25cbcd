// Conflict detection for the resource-create flow.
// Implements: prd001-layered-resolution R6 (uniqueness checks);
//
//	prd004-resource-scaffolding R2.
package resolver

import "github.com/mesh-intelligence/lcagents/pkg/types"

// CheckConflict reports whether a resource with the same logical name as
// requestedName already resolves in any layer. Comparison is by
// extension-normalized base-name equality, never substring containment, so
// "security" does not collide with "security-engineer.md" while
// "api.yaml" does collide with "api.md".
//
// The highest-precedence match is returned so the caller can present the
// conflicting winner's layer and path. CheckConflict never renames or
// writes; conflict resolution is caller policy (pick a new name, create an
// extension resource, or explicitly override).
func (r *Resolver) CheckConflict(resourceType, requestedName string) (*types.Resource, error) {
	base := types.NormalizeBaseName(requestedName)

	view, err := r.ListResources(resourceType)
	if err != nil && len(view) == 0 {
		return nil, err
	}

	var winner *types.Resource
	for i := range view {
		res := view[i]
		if types.NormalizeBaseName(res.Name) != base {
			continue
		}
		if winner == nil || res.Source.Shadows(winner.Source) {
			winner = &view[i]
		}
	}

	// A partial scan error with a conflict found is still a conflict; a
	// partial scan with no match surfaces the error so the caller does not
	// create a resource based on an incomplete view.
	if winner == nil {
		return nil, err
	}
	return winner, nil
}

// ExtensionName derives the name of a linked extension resource created
// under the custom layer when a conflict is resolved as an enhancement.
// The base resource itself is never touched and the resolver never merges
// the two.
func ExtensionName(requestedName string) string {
	return types.NormalizeBaseName(requestedName) + types.ExtensionSuffix + ".md"
}
