package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, DirExists(dir))
	assert.False(t, DirExists(file))
	assert.False(t, DirExists(filepath.Join(dir, "nope")))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, Dedupe([]string{"b", "a", "b", "a"}))
	assert.Equal(t, []int64{3}, Dedupe([]int64{3, 3}))
	assert.Empty(t, Dedupe[string](nil))
}
