// Legacy flat-tree migration.
// Implements: prd003-install-tree R5 (migrateFromFlatStructure).
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/lcagents/pkg/types"
)

// NeedsMigration recognizes a legacy installation: an .lcagents directory
// with no core/ subdirectory but with an agents/ subdirectory directly
// under the root. A missing install tree needs no migration.
func (r *Resolver) NeedsMigration() (bool, error) {
	base := r.tree.Base()
	if _, err := os.Stat(base); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", base, err)
	}

	if _, err := os.Stat(filepath.Join(base, string(types.LayerCore))); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat core layer: %w", err)
	}

	info, err := os.Stat(filepath.Join(base, types.TypeAgents))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat legacy agents dir: %w", err)
	}
	return info.IsDir(), nil
}

// MigrateFromFlatStructure restructures a legacy flat installation into
// the four-layer form: every known resource-type directory directly under
// .lcagents moves into core/<core-system>/, and the org, custom, and
// runtime layers are created empty. Idempotent: a tree that does not need
// migration is left untouched.
//
// Resolver operations tolerate a not-yet-migrated tree by returning empty
// results, so migration is an explicit one-time step rather than a
// precondition.
func (r *Resolver) MigrateFromFlatStructure() error {
	needed, err := r.NeedsMigration()
	if err != nil {
		return err
	}
	if !needed {
		return nil
	}

	base := r.tree.Base()
	coreDir := r.tree.LayerDir(types.LayerCore)
	if err := os.MkdirAll(coreDir, 0o755); err != nil {
		return fmt.Errorf("create core layer: %w", err)
	}

	for _, resourceType := range types.ResourceTypes {
		src := filepath.Join(base, resourceType)
		info, err := os.Stat(src)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat legacy %s: %w", resourceType, err)
		}
		if !info.IsDir() {
			continue
		}

		dst := filepath.Join(coreDir, resourceType)
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("move legacy %s: %w", resourceType, err)
		}
	}

	for _, layer := range []types.Layer{types.LayerOrg, types.LayerCustom, types.LayerRuntime} {
		if err := os.MkdirAll(r.tree.LayerDir(layer), 0o755); err != nil {
			return fmt.Errorf("create %s layer: %w", layer, err)
		}
	}

	return nil
}
