package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lcagents/internal/config"
	"github.com/mesh-intelligence/lcagents/internal/coresys"
	"github.com/mesh-intelligence/lcagents/internal/resolver"
	"github.com/mesh-intelligence/lcagents/pkg/lcagents"
	"github.com/mesh-intelligence/lcagents/pkg/types"
)

func TestInstallFreshTree(t *testing.T) {
	root := t.TempDir()

	cfg, err := Install(root, coresys.DefaultName)
	require.NoError(t, err)

	assert.Equal(t, coresys.DefaultName, cfg.CoreSystem)
	assert.Equal(t, coresys.DefaultName, cfg.FallbackCoreSystem)
	assert.NotEmpty(t, cfg.InstallationID)
	assert.Equal(t, lcagents.Version, cfg.Version)
	assert.NotEmpty(t, cfg.InstalledAt)

	// Config is persisted and resources resolve.
	stored, err := config.NewStore(root).Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, stored)

	r := resolver.New(root, cfg.CoreSystem)
	exists, err := r.ResourceExists(types.TypeAgents, "pm.md")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInstallKeepsInstallationID(t *testing.T) {
	root := t.TempDir()

	first, err := Install(root, coresys.DefaultName)
	require.NoError(t, err)

	second, err := Install(root, coresys.DefaultName)
	require.NoError(t, err)
	assert.Equal(t, first.InstallationID, second.InstallationID)
}

func TestInstallMigratesLegacyTree(t *testing.T) {
	root := t.TempDir()
	legacyAgents := filepath.Join(root, ".lcagents", "agents")
	require.NoError(t, os.MkdirAll(legacyAgents, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(legacyAgents, "legacy-pm.md"), []byte("# legacy"), 0o644))

	_, err := Install(root, coresys.DefaultName)
	require.NoError(t, err)

	r := resolver.New(root, coresys.DefaultName)
	content, err := r.ReadResource(types.TypeAgents, "legacy-pm.md")
	require.NoError(t, err)
	assert.Equal(t, "# legacy", string(content))
}

func TestInstallUnknownCoreSystem(t *testing.T) {
	_, err := Install(t.TempDir(), "no-such-core")
	assert.ErrorIs(t, err, coresys.ErrUnknownCoreSystem)
}

func TestUninstallRemovesTree(t *testing.T) {
	root := t.TempDir()
	_, err := Install(root, coresys.DefaultName)
	require.NoError(t, err)

	require.NoError(t, Uninstall(root, false))

	_, statErr := os.Stat(filepath.Join(root, ".lcagents"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUninstallKeepConfig(t *testing.T) {
	root := t.TempDir()
	_, err := Install(root, coresys.DefaultName)
	require.NoError(t, err)

	store := config.NewStore(root)
	require.NoError(t, store.SaveTechStack(types.TechStack{Primary: "go"}))

	// Something that must not survive.
	runtimeDir := filepath.Join(root, ".lcagents", "runtime")
	require.NoError(t, os.WriteFile(filepath.Join(runtimeDir, "index.db"), []byte("x"), 0o644))

	require.NoError(t, Uninstall(root, true))

	// Exactly the two config files remain.
	entries, err := os.ReadDir(filepath.Join(root, ".lcagents"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "runtime", entries[0].Name())

	runtimeEntries, err := os.ReadDir(runtimeDir)
	require.NoError(t, err)
	names := make([]string, 0, len(runtimeEntries))
	for _, e := range runtimeEntries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"config.yaml", "tech-stack.yaml"}, names)

	// Config content intact.
	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, coresys.DefaultName, cfg.CoreSystem)
}

func TestUninstallMissingTree(t *testing.T) {
	require.NoError(t, Uninstall(t.TempDir(), false))
	require.NoError(t, Uninstall(t.TempDir(), true))
}
