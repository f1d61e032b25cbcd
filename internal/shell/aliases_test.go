package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profilePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".bashrc")
}

func TestEnsureAliasesCreatesProfile(t *testing.T) {
	path := profilePath(t)

	res, err := EnsureAliases(path, "/proj")
	require.NoError(t, err)
	assert.Equal(t, Updated, res)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), blockBegin)
	assert.Contains(t, string(content), blockEnd)
	assert.Contains(t, string(content), "/proj")
}

func TestEnsureAliasesPreservesUserContent(t *testing.T) {
	path := profilePath(t)
	require.NoError(t, os.WriteFile(path, []byte("export EDITOR=vim\n"), 0o644))

	_, err := EnsureAliases(path, "/proj")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "export EDITOR=vim\n"))
	assert.Contains(t, string(content), blockBegin)
}

func TestEnsureAliasesIdempotent(t *testing.T) {
	path := profilePath(t)

	_, err := EnsureAliases(path, "/proj")
	require.NoError(t, err)

	res, err := EnsureAliases(path, "/proj")
	require.NoError(t, err)
	assert.Equal(t, Unchanged, res)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), blockBegin), "only one managed block")
}

func TestEnsureAliasesRefreshesStaleBlock(t *testing.T) {
	path := profilePath(t)

	_, err := EnsureAliases(path, "/old-root")
	require.NoError(t, err)

	res, err := EnsureAliases(path, "/new-root")
	require.NoError(t, err)
	assert.Equal(t, Updated, res)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "/new-root")
	assert.NotContains(t, string(content), "/old-root")
	assert.Equal(t, 1, strings.Count(string(content), blockBegin))
}

func TestRemoveAliases(t *testing.T) {
	path := profilePath(t)
	require.NoError(t, os.WriteFile(path, []byte("export EDITOR=vim\n"), 0o644))

	_, err := EnsureAliases(path, "/proj")
	require.NoError(t, err)

	res, err := RemoveAliases(path)
	require.NoError(t, err)
	assert.Equal(t, Removed, res)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "export EDITOR=vim")
	assert.NotContains(t, string(content), blockBegin)
	assert.NotContains(t, string(content), "alias lca")
}

func TestRemoveAliasesMissingProfile(t *testing.T) {
	res, err := RemoveAliases(filepath.Join(t.TempDir(), "no-such-file"))
	require.NoError(t, err)
	assert.Equal(t, Unchanged, res)
}

func TestRemoveAliasesWithoutBlock(t *testing.T) {
	path := profilePath(t)
	require.NoError(t, os.WriteFile(path, []byte("export EDITOR=vim\n"), 0o644))

	res, err := RemoveAliases(path)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, res)
}
