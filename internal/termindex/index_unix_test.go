//go:build unix

package termindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSymlinkedConfig(t *testing.T) {
	root := t.TempDir()
	store := filepath.Join(root, "store")
	flat := filepath.Join(root, "params")
	tree := filepath.Join(root, "atlas")
	for _, d := range []string{store, flat, filepath.Join(tree, "d")} {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}
	target := filepath.Join(store, "t.json")
	require.NoError(t, os.WriteFile(target, []byte(`{}`), 0o644))

	flatLink := filepath.Join(flat, "flatlink.json")
	treeLink := filepath.Join(tree, "d", "treelink.json")
	require.NoError(t, os.Symlink(target, flatLink))
	require.NoError(t, os.Symlink(target, treeLink))
	require.NoError(t, os.Symlink(filepath.Join(store, "gone.json"), filepath.Join(flat, "dangling.json")))
	require.NoError(t, os.Symlink(store, filepath.Join(tree, "dirlink.json")))

	idx, err := Build(afero.NewOsFs(), ".json",
		Source{Dir: flat, Priority: 0},
		Source{Dir: tree, Recursive: true, Priority: 1},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"flatlink", "treelink"}, idx.Terms())

	p, ok := idx.Lookup("treelink")
	require.True(t, ok)
	assert.Equal(t, treeLink, p)
}

func TestBuildSkipsPermissionDeniedSubdir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	tree := t.TempDir()
	locked := filepath.Join(tree, "locked")
	require.NoError(t, os.MkdirAll(locked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "hidden.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "ok.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	idx, err := Build(afero.NewOsFs(), ".json", Source{Dir: tree, Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, idx.Terms())
	assert.Equal(t, []string{locked}, idx.Skipped())
}
