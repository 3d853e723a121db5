package alloc

import "github.com/y-tongchen/heapkit/internal/format"

// extend grows the arena by at least n bytes (rounded to the 8-byte
// granularity) and formats the new region as one free block in place of the
// old epilogue, with a fresh epilogue written at the new top. The block is
// coalesced with a free block that may have been sitting just below the old
// epilogue, so the returned ref is already linked into the index — callers
// must not insert it again.
func (a *Allocator) extend(n int64) (Ref, error) {
	size := format.Align8(n)

	start, err := a.ar.Extend(size)
	if err != nil {
		a.stats.GrowFailures++
		if debugAlloc {
			debugLogf("extend(%d): arena refused at %d of %d bytes",
				size, a.ar.Size(), a.ar.Cap())
			a.dumpHeapState(size)
		}
		return NilRef, ErrNoSpace
	}
	a.stats.GrowCalls++
	a.stats.GrowBytes += size

	// The old epilogue header becomes the new block's header, so the new
	// block's payload ref is exactly the old arena top. Its predecessor bit
	// carries over from the epilogue, preserving the mirror invariant.
	ref := Ref(start)
	old := a.header(ref)

	h := format.Header{Size: size, PrevAllocated: old.PrevAllocated}
	a.writeHeader(ref, h)
	a.writeFooter(ref, h)
	a.clearLinks(ref)

	// Fresh epilogue at the new top; its predecessor, the block just
	// written, is free.
	a.writeHeader(ref+size, format.Header{Allocated: true})

	return a.coalesce(ref), nil
}
