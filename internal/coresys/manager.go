// Package coresys manages core-system bundles: the named sets of default
// resources that populate the core layer at install time. Bundles are
// compiled into the binary so installs work offline.
// Implements: prd003-install-tree R3 (core layer materialization);
//
//	prd002-runtime-config R2 (active core-system name).
package coresys

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/lcagents/internal/paths"
	"github.com/mesh-intelligence/lcagents/pkg/types"
)

//go:embed all:assets
var bundlesFS embed.FS

// DefaultName is the core system installed when none is requested.
const DefaultName = "bmad-core"

const (
	assetsRoot   = "assets"
	manifestFile = "manifest.yaml"
)

// Bundle errors.
var (
	ErrUnknownCoreSystem = errors.New("unknown core system")
)

// Manifest describes an embedded core-system bundle.
type Manifest struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// Available returns the manifests of every embedded bundle.
func Available() ([]Manifest, error) {
	entries, err := bundlesFS.ReadDir(assetsRoot)
	if err != nil {
		return nil, fmt.Errorf("read embedded bundles: %w", err)
	}

	var manifests []Manifest
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m, err := Load(entry.Name())
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}

// Load parses the manifest of the named bundle.
// Returns ErrUnknownCoreSystem when no embedded bundle has that name.
func Load(name string) (Manifest, error) {
	data, err := bundlesFS.ReadFile(filepath.ToSlash(filepath.Join(assetsRoot, name, manifestFile)))
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %s", ErrUnknownCoreSystem, name)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest for %s: %w", name, err)
	}
	return m, nil
}

// Install materializes the named bundle into core/<name>/ under the
// project root and creates the org, custom, and runtime layers empty.
// Existing files are overwritten so reinstalling refreshes the core layer;
// the other layers are never touched beyond creation.
func Install(root, name string) error {
	if _, err := Load(name); err != nil {
		return err
	}

	tree := paths.NewTree(root, name)
	coreDir := tree.LayerDir(types.LayerCore)
	bundleRoot := assetsRoot + "/" + name

	err := fs.WalkDir(bundlesFS, bundleRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := strings.TrimPrefix(path, bundleRoot)
		rel = strings.TrimPrefix(rel, "/")
		dst := filepath.Join(coreDir, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}

		data, err := bundlesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read embedded %s: %w", path, err)
		}
		return os.WriteFile(dst, data, 0o644)
	})
	if err != nil {
		return fmt.Errorf("install core system %s: %w", name, err)
	}

	for _, layer := range []types.Layer{types.LayerOrg, types.LayerCustom, types.LayerRuntime} {
		if err := os.MkdirAll(tree.LayerDir(layer), 0o755); err != nil {
			return fmt.Errorf("create %s layer: %w", layer, err)
		}
	}
	return nil
}

// InstalledManifest reads the manifest that Install copied into the core
// layer, reporting the version an existing tree was installed from.
// Returns ErrUnknownCoreSystem when the tree has no manifest for name.
func InstalledManifest(root, name string) (Manifest, error) {
	tree := paths.NewTree(root, name)
	data, err := os.ReadFile(filepath.Join(tree.LayerDir(types.LayerCore), manifestFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, fmt.Errorf("%w: %s", ErrUnknownCoreSystem, name)
		}
		return Manifest{}, fmt.Errorf("read installed manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse installed manifest: %w", err)
	}
	return m, nil
}
