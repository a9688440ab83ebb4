package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_DisabledIsSilent(t *testing.T) {
	t.Cleanup(CloseAll)

	home := t.TempDir()
	require.NoError(t, Initialize(home, false, "info"))
	assert.False(t, IsDebugMode())

	// Must not panic or create files.
	API("request sent to %s", "/clients/clients/")
	entries, err := os.ReadDir(home)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInitialize_DebugWritesCategoryFiles(t *testing.T) {
	t.Cleanup(CloseAll)

	home := t.TempDir()
	require.NoError(t, Initialize(home, true, "debug"))
	require.True(t, IsDebugMode())

	API("listing clients page=%d", 1)
	Session("token saved")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(home, "logs"))
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, 2)
}

func TestInitialize_RequiresHomeWhenEnabled(t *testing.T) {
	t.Cleanup(CloseAll)
	assert.Error(t, Initialize("", true, "info"))
	assert.NoError(t, Initialize("", false, "info"))
}
