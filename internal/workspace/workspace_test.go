package workspace

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEphemeral_CreateAndCleanup(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.Create())

	path := m.GetPath()
	require.DirExists(t, path)

	require.NoError(t, m.Cleanup())
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
	require.Empty(t, m.GetPath())
}

func TestPersistent_SurvivesCleanup(t *testing.T) {
	base := t.TempDir()
	m := NewPersistentManager(base, "working")
	require.NoError(t, m.Create())

	path := m.GetPath()
	require.DirExists(t, path)

	require.NoError(t, m.Cleanup())
	require.DirExists(t, path)
}

func TestCleanup_WithoutCreateIsNoop(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.Cleanup())
}
