//go:build !unix

package arena

import (
	"fmt"
	"os"
)

// FileArena falls back to in-memory storage on platforms without shared file
// mappings; contents reach the file only on Sync or Close.
type FileArena struct {
	*SliceArena
	path   string
	closed bool
}

// NewFile creates the file at path and an in-memory arena of the given
// capacity that writes back to it.
func NewFile(path string, capacity int64) (*FileArena, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("arena: invalid capacity %d", capacity)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return nil, err
	}
	return &FileArena{SliceArena: NewSlice(capacity), path: path}, nil
}

// Sync writes the region out to the file.
func (a *FileArena) Sync() error {
	if a.closed {
		return nil
	}
	return os.WriteFile(a.path, a.Bytes(), 0o644)
}

// Close flushes and releases the buffer. Double close is a no-op.
func (a *FileArena) Close() error {
	if a.closed {
		return nil
	}
	err := a.Sync()
	a.closed = true
	if cerr := a.SliceArena.Close(); cerr != nil {
		return cerr
	}
	return err
}
