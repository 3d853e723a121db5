//go:build unix

package arena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapArena backs the region with an anonymous private mapping. The full
// capacity is reserved as address space when the arena is created; pages are
// only committed by the kernel as the region is touched, so a large capacity
// is cheap until used.
type MmapArena struct {
	data []byte // full mapping, length == capacity
	size int64  // current high bound
}

var _ Arena = (*MmapArena)(nil)

// NewMmap creates an mmap-backed arena that can grow to capacity bytes.
func NewMmap(capacity int64) (*MmapArena, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("arena: invalid capacity %d", capacity)
	}
	if capacity > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("arena: capacity %d too large to map", capacity)
	}
	data, err := unix.Mmap(-1, 0, int(capacity),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("arena: mmap: %w", err)
	}
	return &MmapArena{data: data}, nil
}

// Extend grows the region by n bytes.
func (a *MmapArena) Extend(n int64) (int64, error) {
	if n < 0 || a.size+n > int64(len(a.data)) {
		return 0, ErrExhausted
	}
	start := a.size
	a.size += n
	return start, nil
}

// Bytes returns the addressable region.
func (a *MmapArena) Bytes() []byte { return a.data[:a.size] }

// Size returns the current high bound.
func (a *MmapArena) Size() int64 { return a.size }

// Cap returns the reserved capacity.
func (a *MmapArena) Cap() int64 { return int64(len(a.data)) }

// Reset moves the high bound back to zero.
func (a *MmapArena) Reset() { a.size = 0 }

// Close unmaps the region. Double close is a no-op.
func (a *MmapArena) Close() error {
	if a.data == nil {
		return nil
	}
	data := a.data
	a.data = nil
	a.size = 0
	return unix.Munmap(data)
}
