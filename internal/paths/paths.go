// Package paths resolves the lcagents install root and the per-layer
// directory layout beneath it.
// Implements: prd003-install-tree (R1.2, R1.3, R2);
//
//	prd001-layered-resolution R4 (layer directory mapping).
package paths

import (
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/lcagents/pkg/types"
)

// DirName is the name of the install tree directory under the project root.
const DirName = ".lcagents"

// EnvRoot overrides project-root discovery when set.
const EnvRoot = "LCAGENTS_ROOT"

// Runtime-directory file names. The config files are the only ones an
// uninstall with --keep-config preserves.
const (
	RuntimeConfigFile = "config.yaml"
	TechStackFile     = "tech-stack.yaml"
	IndexFile         = "index.db"
)

// KeepConfigFiles lists the runtime files preserved by --keep-config,
// relative to the runtime directory.
var KeepConfigFiles = []string{RuntimeConfigFile, TechStackFile}

// ResolveRoot returns the project root following the precedence chain:
// flag > LCAGENTS_ROOT env > current working directory. The returned path
// is absolute. The root is where the .lcagents tree lives (or will live);
// ResolveRoot does not require it to exist.
func ResolveRoot(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvRoot); env != "" {
		return filepath.Abs(env)
	}
	return os.Getwd()
}

// Tree describes the .lcagents directory layout for one project root and
// one active core system. All accessors are pure path computations.
type Tree struct {
	root       string // project root (parent of .lcagents)
	coreSystem string // active core-system bundle name
}

// NewTree creates a Tree for the given project root and active core-system
// name.
func NewTree(root, coreSystem string) Tree {
	return Tree{root: root, coreSystem: coreSystem}
}

// Root returns the project root.
func (t Tree) Root() string {
	return t.root
}

// CoreSystem returns the active core-system bundle name.
func (t Tree) CoreSystem() string {
	return t.coreSystem
}

// Base returns the path of the .lcagents directory.
func (t Tree) Base() string {
	return filepath.Join(t.root, DirName)
}

// LayerDir returns the root directory of the given layer. The core layer
// nests under the active core-system name; the other layers sit directly
// under the base (prd003-install-tree R2).
func (t Tree) LayerDir(layer types.Layer) string {
	if layer == types.LayerCore {
		return filepath.Join(t.Base(), string(types.LayerCore), t.coreSystem)
	}
	return filepath.Join(t.Base(), string(layer))
}

// TypeDir returns the directory holding resources of resourceType within
// the given layer. The subdirectory name is identical across layers.
func (t Tree) TypeDir(layer types.Layer, resourceType string) string {
	return filepath.Join(t.LayerDir(layer), resourceType)
}

// ResourcePath returns the path a resource of the given type and name
// occupies in the given layer.
func (t Tree) ResourcePath(layer types.Layer, resourceType, name string) string {
	return filepath.Join(t.TypeDir(layer, resourceType), name)
}

// RuntimeDir returns the runtime directory, which holds runtime-override
// resources alongside the runtime config files.
func (t Tree) RuntimeDir() string {
	return t.LayerDir(types.LayerRuntime)
}

// RuntimeConfigPath returns the path of runtime/config.yaml.
func (t Tree) RuntimeConfigPath() string {
	return filepath.Join(t.RuntimeDir(), RuntimeConfigFile)
}

// TechStackPath returns the path of runtime/tech-stack.yaml.
func (t Tree) TechStackPath() string {
	return filepath.Join(t.RuntimeDir(), TechStackFile)
}

// IndexPath returns the path of the search index database.
func (t Tree) IndexPath() string {
	return filepath.Join(t.RuntimeDir(), IndexFile)
}

// Exists reports whether the .lcagents directory is present.
func (t Tree) Exists() bool {
	info, err := os.Stat(t.Base())
	return err == nil && info.IsDir()
}
