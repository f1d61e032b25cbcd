package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lcagents/pkg/types"
)

func TestResolveRoot(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{
			name:   "flag wins over env",
			flag:   "/explicit/project",
			envVal: "/env/project",
			want:   "/explicit/project",
		},
		{
			name:   "env wins when flag empty",
			flag:   "",
			envVal: "/env/project",
			want:   "/env/project",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvRoot, tt.envVal)
			got, err := ResolveRoot(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("cwd when flag and env empty", func(t *testing.T) {
		t.Setenv(EnvRoot, "")
		cwd, err := os.Getwd()
		require.NoError(t, err)

		got, err := ResolveRoot("")
		require.NoError(t, err)
		assert.Equal(t, cwd, got)
	})

	t.Run("relative flag becomes absolute", func(t *testing.T) {
		t.Setenv(EnvRoot, "")
		got, err := ResolveRoot("relative/path")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})
}

func TestTreeLayout(t *testing.T) {
	tree := NewTree("/proj", "bmad-core")

	assert.Equal(t, "/proj/.lcagents", tree.Base())
	assert.Equal(t, "/proj/.lcagents/core/bmad-core", tree.LayerDir(types.LayerCore))
	assert.Equal(t, "/proj/.lcagents/org", tree.LayerDir(types.LayerOrg))
	assert.Equal(t, "/proj/.lcagents/custom", tree.LayerDir(types.LayerCustom))
	assert.Equal(t, "/proj/.lcagents/runtime", tree.LayerDir(types.LayerRuntime))

	assert.Equal(t, "/proj/.lcagents/core/bmad-core/tasks", tree.TypeDir(types.LayerCore, types.TypeTasks))
	assert.Equal(t, "/proj/.lcagents/custom/templates/api.md",
		tree.ResourcePath(types.LayerCustom, types.TypeTemplates, "api.md"))

	assert.Equal(t, "/proj/.lcagents/runtime/config.yaml", tree.RuntimeConfigPath())
	assert.Equal(t, "/proj/.lcagents/runtime/tech-stack.yaml", tree.TechStackPath())
	assert.Equal(t, "/proj/.lcagents/runtime/index.db", tree.IndexPath())
}

func TestTreeExists(t *testing.T) {
	root := t.TempDir()
	tree := NewTree(root, "bmad-core")

	assert.False(t, tree.Exists())

	require.NoError(t, os.MkdirAll(tree.Base(), 0o755))
	assert.True(t, tree.Exists())
}
