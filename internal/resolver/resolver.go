// Package resolver implements the layered resource resolution and override
// system. A Resolver presents each resource type as a single flattened,
// conflict-resolved collection merged from the four ordered layers
// (core < org < custom < runtime), while reporting which physical layer
// satisfied each lookup.
// Implements: prd001-layered-resolution R4, R5;
//
//	docs/ARCHITECTURE § Layer Resolver.
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mesh-intelligence/lcagents/internal/paths"
	"github.com/mesh-intelligence/lcagents/pkg/types"
)

// Resolver resolves resources across the layer tree of one install root.
// It is stateless apart from the tree layout and safe to construct per
// command invocation. Absence (missing root, layer, or resource) is never
// an error; only I/O failures are.
type Resolver struct {
	tree paths.Tree
}

// New creates a Resolver for the given project root and active core-system
// name.
func New(root, coreSystem string) *Resolver {
	return &Resolver{tree: paths.NewTree(root, coreSystem)}
}

// NewFromTree creates a Resolver over an existing Tree.
func NewFromTree(tree paths.Tree) *Resolver {
	return &Resolver{tree: tree}
}

// Tree returns the layout the resolver operates on.
func (r *Resolver) Tree() paths.Tree {
	return r.tree
}

// ListResources returns the resolved view for one resource type: every
// layer's type directory is scanned in ascending precedence order, and a
// higher-precedence entry replaces a lower-precedence entry of the same
// name in place. Content is not populated.
//
// Missing directories (including the whole install root) contribute zero
// entries. A layer directory that exists but cannot be read contributes an
// error without hiding entries from the remaining layers; partial results
// are returned alongside the joined error (prd001-layered-resolution R5.1,
// R7.2). A type name containing path separators is rejected with
// ErrInvalidResourceType before any scan.
func (r *Resolver) ListResources(resourceType string) ([]types.Resource, error) {
	if err := types.ValidateResourceType(resourceType); err != nil {
		return nil, err
	}

	var (
		resources []types.Resource
		position  = make(map[string]int)
		scanErrs  []error
	)

	for _, layer := range types.Layers {
		dir := r.tree.TypeDir(layer, resourceType)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			scanErrs = append(scanErrs, fmt.Errorf("scan %s/%s: %w", layer, resourceType, err))
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			res := types.Resource{
				Type:   resourceType,
				Name:   entry.Name(),
				Source: layer,
				Path:   r.tree.ResourcePath(layer, resourceType, entry.Name()),
			}
			if i, seen := position[res.Name]; seen {
				// Higher-precedence layer shadows the earlier entry.
				resources[i] = res
				continue
			}
			position[res.Name] = len(resources)
			resources = append(resources, res)
		}
	}

	return resources, errors.Join(scanErrs...)
}

// Resolve returns the winning entry for (resourceType, name), or nil when
// no layer defines the name. Absence is not an error; callers branch on
// the nil result (prd001-layered-resolution R5.2).
func (r *Resolver) Resolve(resourceType, name string) (*types.Resource, error) {
	if err := types.ValidateResourceType(resourceType); err != nil {
		return nil, err
	}
	if err := types.ValidateResourceName(name); err != nil {
		return nil, err
	}

	// Descending precedence: the first layer that defines the name wins.
	for i := len(types.Layers) - 1; i >= 0; i-- {
		layer := types.Layers[i]
		path := r.tree.ResourcePath(layer, resourceType, name)

		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s/%s/%s: %w", layer, resourceType, name, err)
		}
		if info.IsDir() {
			continue
		}
		return &types.Resource{
			Type:   resourceType,
			Name:   name,
			Source: layer,
			Path:   path,
		}, nil
	}

	return nil, nil
}

// GetResourcePath returns the absolute path of the winning entry, or the
// empty string when no layer defines the name. Callers inspect the path's
// layer segment to report which layer wins without a second lookup.
func (r *Resolver) GetResourcePath(resourceType, name string) (string, error) {
	res, err := r.Resolve(resourceType, name)
	if err != nil || res == nil {
		return "", err
	}
	return res.Path, nil
}

// ReadResource returns the full content of the winning file, or nil when
// no layer defines the name. Pure read; no side effects.
func (r *Resolver) ReadResource(resourceType, name string) ([]byte, error) {
	res, err := r.Resolve(resourceType, name)
	if err != nil || res == nil {
		return nil, err
	}

	content, err := os.ReadFile(res.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s/%s: %w", res.Source, resourceType, name, err)
	}
	return content, nil
}

// ResourceExists reports whether (resourceType, name) resolves to an entry
// in any layer. Consistent with ListResources and ReadResource for a
// stable filesystem.
func (r *Resolver) ResourceExists(resourceType, name string) (bool, error) {
	res, err := r.Resolve(resourceType, name)
	if err != nil {
		return false, err
	}
	return res != nil, nil
}
