//go:build unix

package arena

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// FileArena backs the region with a shared mapping of a file, so heap
// contents survive the process. The file is sized to the full capacity up
// front and the mapping never moves; Size tracks how much of the file the
// heap actually uses.
type FileArena struct {
	f    *os.File
	data []byte
	size int64
}

var _ Arena = (*FileArena)(nil)

// NewFile creates (or truncates) the file at path and maps it as an arena of
// the given capacity.
func NewFile(path string, capacity int64) (*FileArena, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("arena: invalid capacity %d", capacity)
	}
	if capacity > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("arena: capacity %d too large to map", capacity)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(capacity); err != nil {
		f.Close()
		return nil, err
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(capacity),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("arena: mmap %s: %w", path, err)
	}
	return &FileArena{f: f, data: data}, nil
}

// Extend grows the region by n bytes.
func (a *FileArena) Extend(n int64) (int64, error) {
	if n < 0 || a.size+n > int64(len(a.data)) {
		return 0, ErrExhausted
	}
	start := a.size
	a.size += n
	return start, nil
}

// Bytes returns the addressable region.
func (a *FileArena) Bytes() []byte { return a.data[:a.size] }

// Size returns the current high bound.
func (a *FileArena) Size() int64 { return a.size }

// Cap returns the mapped capacity.
func (a *FileArena) Cap() int64 { return int64(len(a.data)) }

// Reset moves the high bound back to zero. File contents are untouched.
func (a *FileArena) Reset() { a.size = 0 }

// Sync flushes dirty pages back to the file.
func (a *FileArena) Sync() error {
	if a.data == nil {
		return nil
	}
	return unix.Msync(a.data, unix.MS_SYNC)
}

// Close flushes and unmaps the region and closes the file. Double close is a
// no-op.
func (a *FileArena) Close() error {
	if a.data == nil {
		return nil
	}
	syncErr := a.Sync()
	data := a.data
	a.data = nil
	a.size = 0
	if err := unix.Munmap(data); err != nil {
		a.f.Close()
		return err
	}
	if err := a.f.Close(); err != nil {
		return err
	}
	return syncErr
}
