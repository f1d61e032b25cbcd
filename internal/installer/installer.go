// Package installer orchestrates install and uninstall of the .lcagents
// tree: legacy migration, core-layer materialization, runtime-config
// stamping, and conflict-free removal.
// Implements: prd003-install-tree (R3, R4, R6);
//
//	prd002-runtime-config R3 (install stamp).
package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/lcagents/internal/config"
	"github.com/mesh-intelligence/lcagents/internal/coresys"
	"github.com/mesh-intelligence/lcagents/internal/paths"
	"github.com/mesh-intelligence/lcagents/internal/resolver"
	"github.com/mesh-intelligence/lcagents/pkg/lcagents"
	"github.com/mesh-intelligence/lcagents/pkg/types"
)

// Install materializes the named core system under root, migrating a
// legacy flat tree first, and stamps runtime/config.yaml. A fresh install
// gets a new installation ID; reinstalls keep the existing one so the
// tree's identity survives upgrades.
func Install(root, coreSystem string) (types.RuntimeConfig, error) {
	r := resolver.New(root, coreSystem)
	if err := r.MigrateFromFlatStructure(); err != nil {
		return types.RuntimeConfig{}, fmt.Errorf("migrate legacy tree: %w", err)
	}

	if err := coresys.Install(root, coreSystem); err != nil {
		return types.RuntimeConfig{}, err
	}

	store := config.NewStore(root)
	cfg, err := store.Load()
	if err != nil {
		return types.RuntimeConfig{}, err
	}

	cfg.CoreSystem = coreSystem
	if cfg.FallbackCoreSystem == "" {
		cfg.FallbackCoreSystem = coresys.DefaultName
	}
	if cfg.InstallationID == "" {
		cfg.InstallationID = uuid.NewString()
	}
	cfg.Version = lcagents.Version
	cfg.InstalledAt = time.Now().UTC().Format(time.RFC3339)

	if err := store.Save(cfg); err != nil {
		return types.RuntimeConfig{}, err
	}
	return cfg, nil
}

// Uninstall deletes the entire .lcagents tree, all layers,
// unconditionally. With keepConfig set, exactly the runtime config files
// (config.yaml and tech-stack.yaml) survive; everything else, including
// the search index and every resource in every layer, is removed.
// A missing tree is not an error.
func Uninstall(root string, keepConfig bool) error {
	tree := paths.NewTree(root, "")
	base := tree.Base()

	if _, err := os.Stat(base); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", base, err)
	}

	if !keepConfig {
		return os.RemoveAll(base)
	}

	kept := make(map[string]bool, len(paths.KeepConfigFiles))
	for _, name := range paths.KeepConfigFiles {
		kept[filepath.Join(tree.RuntimeDir(), name)] = true
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return fmt.Errorf("read %s: %w", base, err)
	}
	for _, entry := range entries {
		path := filepath.Join(base, entry.Name())
		if entry.Name() != string(types.LayerRuntime) {
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("remove %s: %w", path, err)
			}
			continue
		}

		runtimeEntries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		for _, re := range runtimeEntries {
			rePath := filepath.Join(path, re.Name())
			if kept[rePath] {
				continue
			}
			if err := os.RemoveAll(rePath); err != nil {
				return fmt.Errorf("remove %s: %w", rePath, err)
			}
		}
	}
	return nil
}
