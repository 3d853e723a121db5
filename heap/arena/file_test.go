package arena

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileArenaPersistsOnSync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.bin")
	a, err := NewFile(path, 1<<16)
	require.NoError(t, err)
	defer a.Close()

	start, err := a.Extend(64)
	require.NoError(t, err)
	copy(a.Bytes()[start:], "persisted")
	require.NoError(t, a.Sync())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, int64(len(got)), int64(64))
	require.Equal(t, []byte("persisted"), got[start:start+9])
}

func TestFileArenaRejectsBadCapacity(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "heap.bin"), 0)
	require.Error(t, err)
}

func TestFileArenaDoubleClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.bin")
	a, err := NewFile(path, 4096)
	require.NoError(t, err)

	_, err = a.Extend(32)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}
