//go:build !unix

package arena

// NewMmap falls back to a slice-backed arena on platforms without anonymous
// mmap support. The behavior is identical; only the backing storage differs.
func NewMmap(capacity int64) (*SliceArena, error) {
	return NewSlice(capacity), nil
}
