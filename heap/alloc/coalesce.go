package alloc

import "github.com/y-tongchen/heapkit/internal/format"

// coalesce merges ref with its free address-order neighbors and inserts the
// result into the free-list index, returning the merged block's ref. This is
// the only path that restores the no-two-adjacent-free-blocks invariant, and
// the only place a freed or grown block enters the index: callers must not
// pre-insert ref.
//
// Four cases by (predecessor free, successor free). When the predecessor is
// free the block's identity moves down to the predecessor's address and
// inherits its predecessor-allocated bit; the sentinels guarantee both
// neighbors always exist.
func (a *Allocator) coalesce(ref Ref) Ref {
	h := a.header(ref)
	next := ref + h.Size
	nh := a.header(next)

	prevFree := !h.PrevAllocated
	nextFree := !nh.Allocated
	size := h.Size

	switch {
	case !prevFree && !nextFree:
		// Nothing adjacent to merge.

	case !prevFree && nextFree:
		a.stats.CoalesceForward++
		a.removeFree(next)
		size += nh.Size
		m := format.Header{Size: size, PrevAllocated: true}
		a.writeHeader(ref, m)
		a.writeFooter(ref, m)

	case prevFree && !nextFree:
		a.stats.CoalesceBackward++
		prev := a.prevBlock(ref)
		ph := a.header(prev)
		a.removeFree(prev)
		size += ph.Size
		ref = prev
		m := format.Header{Size: size, PrevAllocated: ph.PrevAllocated}
		a.writeHeader(ref, m)
		a.writeFooter(ref, m)

	default: // both neighbors free
		a.stats.CoalesceForward++
		a.stats.CoalesceBackward++
		prev := a.prevBlock(ref)
		ph := a.header(prev)
		a.removeFree(prev)
		a.removeFree(next)
		size += ph.Size + nh.Size
		ref = prev
		m := format.Header{Size: size, PrevAllocated: ph.PrevAllocated}
		a.writeHeader(ref, m)
		a.writeFooter(ref, m)
	}

	a.clearLinks(ref)
	a.insertFree(ref)
	return ref
}
