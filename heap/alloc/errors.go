package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found and the
	// arena could not grow further. Existing blocks remain valid.
	ErrNoSpace = errors.New("alloc: heap exhausted")

	// ErrBadRef indicates a reference that is out of the heap's bounds,
	// misaligned, or does not name an allocated block.
	ErrBadRef = errors.New("alloc: bad block reference")
)
