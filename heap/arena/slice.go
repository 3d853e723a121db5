package arena

// SliceArena backs the region with a byte slice whose full capacity is
// allocated at construction. The backing array therefore never moves, which
// keeps slices into the region valid as it grows.
type SliceArena struct {
	buf []byte
}

var _ Arena = (*SliceArena)(nil)

// NewSlice creates a slice-backed arena that can grow to capacity bytes.
func NewSlice(capacity int64) *SliceArena {
	return &SliceArena{buf: make([]byte, 0, capacity)}
}

// Extend grows the region by n bytes.
func (a *SliceArena) Extend(n int64) (int64, error) {
	if n < 0 {
		return 0, ErrExhausted
	}
	size := int64(len(a.buf))
	if size+n > int64(cap(a.buf)) {
		return 0, ErrExhausted
	}
	a.buf = a.buf[: size+n : cap(a.buf)]
	return size, nil
}

// Bytes returns the addressable region.
func (a *SliceArena) Bytes() []byte { return a.buf }

// Size returns the current high bound.
func (a *SliceArena) Size() int64 { return int64(len(a.buf)) }

// Cap returns the reserved capacity.
func (a *SliceArena) Cap() int64 { return int64(cap(a.buf)) }

// Reset moves the high bound back to zero.
func (a *SliceArena) Reset() { a.buf = a.buf[:0] }

// Close releases the buffer.
func (a *SliceArena) Close() error {
	a.buf = nil
	return nil
}
