package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuman(t *testing.T) {
	assert.Equal(t, "0 B", Human(0))
	assert.Equal(t, "512 B", Human(512))
	assert.Equal(t, "1.00 KB", Human(1024))
	assert.Equal(t, "1.50 MB", Human(3<<19))
	assert.Equal(t, "2.00 GB", Human(2<<30))
}

func TestCleanupPartialArtifacts(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "Some-Series")
	require.NoError(t, os.MkdirAll(sub, 0755))

	tmpFile := filepath.Join(sub, "12.pdf.tmp")
	doneFile := filepath.Join(sub, "11.pdf")
	require.NoError(t, os.WriteFile(tmpFile, []byte("partial"), 0644))
	require.NoError(t, os.WriteFile(doneFile, []byte("complete"), 0644))

	CleanupPartialArtifacts(dir)

	_, err := os.Stat(tmpFile)
	assert.True(t, os.IsNotExist(err), "staging files are removed")

	_, err = os.Stat(doneFile)
	assert.NoError(t, err, "finished artifacts stay")
}

func TestRemoveIfEmpty(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.MkdirAll(empty, 0755))

	RemoveIfEmpty(empty)
	_, err := os.Stat(empty)
	assert.True(t, os.IsNotExist(err))

	full := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(full, "keep"), []byte("x"), 0644))

	RemoveIfEmpty(full)
	_, err = os.Stat(full)
	assert.NoError(t, err)
}
