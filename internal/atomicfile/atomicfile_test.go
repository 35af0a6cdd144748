package atomicfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNoTemp(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tmp-"), "tmp file not cleaned: %s", e.Name())
	}
}

func TestWriteFileCreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.csv")

	require.NoError(t, WriteFile(p, []byte("v1"), 0o644))
	require.NoError(t, WriteFile(p, []byte("v2"), 0o644))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))
	assertNoTemp(t, dir)
}

func TestWriteFileMissingDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nope", "out.txt")
	assert.Error(t, WriteFile(p, []byte("x"), 0o644))
}

func TestWriteFileRenameFailureKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	// a non-empty directory cannot be replaced by a file
	target := filepath.Join(dir, "target")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0o755))

	assert.Error(t, WriteFile(target, []byte("x"), 0o644))
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assertNoTemp(t, dir)
}

func TestProbeMissingAndFree(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, Probe(filepath.Join(dir, "missing.csv")))

	p := filepath.Join(dir, "free.csv")
	require.NoError(t, os.WriteFile(p, []byte("a"), 0o644))
	assert.NoError(t, Probe(p))
}
