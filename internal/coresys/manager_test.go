package coresys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lcagents/internal/resolver"
	"github.com/mesh-intelligence/lcagents/pkg/types"
)

func TestAvailableIncludesDefault(t *testing.T) {
	manifests, err := Available()
	require.NoError(t, err)
	require.NotEmpty(t, manifests)

	var found bool
	for _, m := range manifests {
		if m.Name == DefaultName {
			found = true
			assert.NotEmpty(t, m.Version)
			assert.NotEmpty(t, m.Description)
		}
	}
	assert.True(t, found, "default bundle %s must be embedded", DefaultName)
}

func TestLoadUnknownBundle(t *testing.T) {
	_, err := Load("no-such-core")
	assert.ErrorIs(t, err, ErrUnknownCoreSystem)
}

func TestInstallMaterializesLayers(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Install(root, DefaultName))

	// Core resources land under core/<name>/<type>/.
	r := resolver.New(root, DefaultName)
	agents, err := r.ListResources(types.TypeAgents)
	require.NoError(t, err)
	require.NotEmpty(t, agents)
	for _, res := range agents {
		assert.Equal(t, types.LayerCore, res.Source)
	}

	content, err := r.ReadResource(types.TypeTasks, "create-doc.md")
	require.NoError(t, err)
	assert.Contains(t, string(content), "Create Document")

	// Remaining layers created empty.
	for _, layer := range []string{"org", "custom", "runtime"} {
		info, err := os.Stat(filepath.Join(root, ".lcagents", layer))
		require.NoError(t, err, "layer %s", layer)
		assert.True(t, info.IsDir())
	}
}

func TestInstallUnknownBundle(t *testing.T) {
	root := t.TempDir()
	err := Install(root, "no-such-core")
	assert.ErrorIs(t, err, ErrUnknownCoreSystem)

	_, statErr := os.Stat(filepath.Join(root, ".lcagents"))
	assert.True(t, os.IsNotExist(statErr), "failed install must not leave a tree behind")
}

func TestInstallRefreshesCoreLayerOnly(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Install(root, DefaultName))

	// Tamper with a core file and add a custom resource.
	r := resolver.New(root, DefaultName)
	corePath := r.Tree().ResourcePath(types.LayerCore, types.TypeAgents, "pm.md")
	require.NoError(t, os.WriteFile(corePath, []byte("tampered"), 0o644))

	customPath := r.Tree().ResourcePath(types.LayerCustom, types.TypeAgents, "data-analyst.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(customPath), 0o755))
	require.NoError(t, os.WriteFile(customPath, []byte("# data-analyst"), 0o644))

	require.NoError(t, Install(root, DefaultName))

	refreshed, err := os.ReadFile(corePath)
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", string(refreshed), "reinstall must refresh core files")

	kept, err := os.ReadFile(customPath)
	require.NoError(t, err)
	assert.Equal(t, "# data-analyst", string(kept), "reinstall must not touch custom layer")
}

func TestInstalledManifest(t *testing.T) {
	root := t.TempDir()

	_, err := InstalledManifest(root, DefaultName)
	assert.ErrorIs(t, err, ErrUnknownCoreSystem)

	require.NoError(t, Install(root, DefaultName))

	m, err := InstalledManifest(root, DefaultName)
	require.NoError(t, err)
	assert.Equal(t, DefaultName, m.Name)
	assert.NotEmpty(t, m.Version)
}
