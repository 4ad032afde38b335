package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfigRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", root)
	return filepath.Join(root, "weebdl")
}

func TestProfileLifecycle(t *testing.T) {
	root := isolateConfigRoot(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "configs", "Default.yaml"), path)

	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)

	// a second init reports the existing file instead of overwriting it
	_, err = InitDefaultConfig()
	assert.ErrorIs(t, err, os.ErrExist)

	workPath, err := CreateEmptyConfig("Work")
	require.NoError(t, err)
	require.NoError(t, SwitchConfig("Work"))

	active, err := ActiveConfigPath()
	require.NoError(t, err)
	assert.Equal(t, workPath, active)

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.False(t, list[0].Active)
	assert.Equal(t, "Work", list[1].Label)
	assert.True(t, list[1].Active)
}

func TestRenameConfigFollowsActivePointer(t *testing.T) {
	isolateConfigRoot(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)

	_, err = CreateEmptyConfig("Old")
	require.NoError(t, err)
	require.NoError(t, SwitchConfig("Old"))

	require.NoError(t, RenameConfig("Old", "New"))

	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "New", label)

	assert.Error(t, RenameConfig("Missing", "Whatever"))
}

func TestRemoveConfigFallsBackToDefault(t *testing.T) {
	isolateConfigRoot(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)

	_, err = CreateEmptyConfig("Temp")
	require.NoError(t, err)
	require.NoError(t, SwitchConfig("Temp"))

	require.NoError(t, RemoveConfig("Temp", true))

	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)

	assert.Error(t, RemoveConfig("Default", true), "the Default profile is protected")
}

func TestAddConfigCopiesFile(t *testing.T) {
	isolateConfigRoot(t)

	src := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, SaveYAML(&Config{Output: "/data", Format: "cbz"}, src))

	require.NoError(t, AddConfig("Imported", src))

	path, err := ConfigPathByLabel("Imported")
	require.NoError(t, err)

	got, err := loadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "/data", got.Output)
	assert.Equal(t, "cbz", got.Format)

	assert.Error(t, AddConfig("Imported", src), "duplicate labels are rejected")
}
