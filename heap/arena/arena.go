// Package arena provides the growth primitive the allocator builds on: a
// contiguous byte region addressed by offsets from zero that can only grow,
// up to a fixed capacity reserved at construction time.
//
// Three backings are provided. SliceArena uses an ordinary byte slice and
// suits tests and embedded use. NewMmap uses an anonymous memory mapping on
// unix systems, so unused capacity costs address space rather than committed
// memory. NewFile maps a regular file shared, so heap contents can outlive
// the process.
//
// The capacity is reserved up front so the backing array never moves;
// payload slices handed out by the allocator stay valid across Extend calls.
package arena

import "errors"

// ErrExhausted is returned by Extend when growing would push the region past
// its reserved capacity.
var ErrExhausted = errors.New("arena: address space exhausted")

// Arena is a contiguous, offset-addressed memory region with a movable high
// bound. Offsets start at zero and the region is dense: every byte below
// Size is addressable.
//
// Implementations are not safe for concurrent use.
type Arena interface {
	// Extend grows the region by n bytes and returns the offset of the
	// first newly addressable byte (the previous Size). Returns
	// ErrExhausted when the reserved capacity cannot satisfy the request;
	// the region is unchanged in that case.
	Extend(n int64) (int64, error)

	// Bytes returns the addressable region [0, Size). The slice aliases the
	// arena's backing memory; it must be re-fetched after Extend to see the
	// new bytes.
	Bytes() []byte

	// Size returns the current high bound of the region.
	Size() int64

	// Cap returns the reserved capacity the region can grow to.
	Cap() int64

	// Reset moves the high bound back to zero. Previously handed out
	// offsets become invalid; the contents are left as-is.
	Reset()

	// Close releases the backing memory. The arena must not be used after.
	Close() error
}
