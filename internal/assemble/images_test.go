package assemble

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagesWritesOneFilePerPage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "7")

	pages := []Page{
		{Index: 1, Data: testPNG(t, 4, 4)},
		{Index: 2, Data: testPNG(t, 4, 4)},
	}

	require.NoError(t, Images(dir, pages))

	for _, name := range []string{"1.png", "2.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err)
	}
}

func TestImagesLeavesExistingFilesAlone(t *testing.T) {
	dir := t.TempDir()

	existing := filepath.Join(dir, "1.png")
	require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0644))

	pages := []Page{
		{Index: 1, Data: testPNG(t, 4, 4)},
		{Index: 2, Data: testPNG(t, 4, 4)},
	}

	require.NoError(t, Images(dir, pages))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))

	_, err = os.Stat(filepath.Join(dir, "2.png"))
	assert.NoError(t, err)
}
