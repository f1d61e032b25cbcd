package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lcagents/internal/resolver"
	"github.com/mesh-intelligence/lcagents/pkg/types"
)

// seedResource writes a resource file into the given layer of a test tree.
func seedResource(t *testing.T, r *resolver.Resolver, layer types.Layer, resourceType, name, content string) {
	t.Helper()
	path := r.Tree().ResourcePath(layer, resourceType, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// attachedIndex returns an index attached to a fresh database under the
// resolver's runtime directory.
func attachedIndex(t *testing.T, r *resolver.Resolver) *Index {
	t.Helper()
	ix := New()
	require.NoError(t, ix.Attach(r.Tree().IndexPath()))
	t.Cleanup(func() { ix.Detach() })
	return ix
}

func TestAttachDetachLifecycle(t *testing.T) {
	r := resolver.New(t.TempDir(), "bmad-core")
	ix := New()

	require.NoError(t, ix.Attach(r.Tree().IndexPath()))
	assert.ErrorIs(t, ix.Attach(r.Tree().IndexPath()), ErrAlreadyAttached)

	require.NoError(t, ix.Detach())
	require.NoError(t, ix.Detach(), "Detach is idempotent")

	_, err := ix.Search("anything")
	assert.ErrorIs(t, err, ErrDetached)

	_, err = ix.Rebuild(r)
	assert.ErrorIs(t, err, ErrDetached)
}

func TestRebuildAndSearch(t *testing.T) {
	r := resolver.New(t.TempDir(), "bmad-core")
	seedResource(t, r, types.LayerCore, types.TypeTasks, "review.md", "Perform a senior-developer review")
	seedResource(t, r, types.LayerCore, types.TypeTemplates, "api.md", "API design template")
	seedResource(t, r, types.LayerOrg, types.TypeAgents, "security-engineer.md", "Threat modeling and audits")

	ix := attachedIndex(t, r)
	count, err := ix.Rebuild(r)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Name match.
	got, err := ix.Search("security")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "security-engineer.md", got[0].Name)
	assert.Equal(t, types.LayerOrg, got[0].Source)

	// Content match, case-insensitive.
	got, err = ix.Search("THREAT MODELING")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "security-engineer.md", got[0].Name)

	// No match.
	got, err = ix.Search("kubernetes")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRebuildIndexesOnlyWinners(t *testing.T) {
	r := resolver.New(t.TempDir(), "bmad-core")
	seedResource(t, r, types.LayerCore, types.TypeTemplates, "api.md", "core wording")
	seedResource(t, r, types.LayerCustom, types.TypeTemplates, "api.md", "custom wording")

	ix := attachedIndex(t, r)
	count, err := ix.Rebuild(r)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := ix.Search("core wording")
	require.NoError(t, err)
	assert.Empty(t, got, "shadowed content must not be searchable")

	got, err = ix.Search("custom wording")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.LayerCustom, got[0].Source)
}

func TestRebuildReplacesPreviousContents(t *testing.T) {
	r := resolver.New(t.TempDir(), "bmad-core")
	seedResource(t, r, types.LayerCore, types.TypeTasks, "old.md", "stale entry")

	ix := attachedIndex(t, r)
	_, err := ix.Rebuild(r)
	require.NoError(t, err)

	require.NoError(t, os.Remove(r.Tree().ResourcePath(types.LayerCore, types.TypeTasks, "old.md")))
	seedResource(t, r, types.LayerCore, types.TypeTasks, "new.md", "fresh entry")

	count, err := ix.Rebuild(r)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := ix.Search("stale")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchEscapesWildcards(t *testing.T) {
	r := resolver.New(t.TempDir(), "bmad-core")
	seedResource(t, r, types.LayerCore, types.TypeData, "kb.md", "plain body")
	seedResource(t, r, types.LayerCore, types.TypeData, "odd.md", "literal 100% match")

	ix := attachedIndex(t, r)
	_, err := ix.Rebuild(r)
	require.NoError(t, err)

	got, err := ix.Search("100%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "odd.md", got[0].Name)

	got, err = ix.Search("%")
	require.NoError(t, err)
	assert.Len(t, got, 1, "bare wildcard must not match everything")
}
