package alloc

import (
	"io"
	"math"
	"os"

	"github.com/y-tongchen/heapkit/heap/arena"
	"github.com/y-tongchen/heapkit/internal/format"
)

// Allocator owns one heap: the arena it lives in, the bucket roots of the
// segregated free-list index, and operation counters. Multiple allocators
// over distinct arenas can coexist.
type Allocator struct {
	ar    arena.Arena
	roots [numClasses]Ref // bucket heads of the free-list index
	base  Ref             // payload ref of the prologue sentinel
	stats Stats
	diag  io.Writer
}

// New creates an allocator over ar and formats the heap. The arena is reset
// first, so any prior contents are discarded.
func New(ar arena.Arena) (*Allocator, error) {
	a := &Allocator{ar: ar, diag: os.Stderr}
	if err := a.Init(); err != nil {
		return nil, err
	}
	return a, nil
}

// Init formats the arena into an empty heap: an alignment pad, the 8-byte
// allocated prologue, a zero-size allocated epilogue header, then one
// ChunkSize extension so the first allocation finds a free block. Calling
// Init on a live allocator resets it.
func (a *Allocator) Init() error {
	a.ar.Reset()
	a.roots = [numClasses]Ref{}
	a.stats = Stats{}

	start, err := a.ar.Extend(2 * format.DWordSize)
	if err != nil {
		return ErrNoSpace
	}
	data := a.ar.Bytes()

	// Padding word keeps every payload on an 8-byte boundary given the
	// 4-byte headers.
	format.PutU32(data, start, 0)

	prologue := format.Header{Size: format.DWordSize, Allocated: true}
	format.PutHeader(data, start+format.WordSize, prologue)   // prologue header
	format.PutHeader(data, start+2*format.WordSize, prologue) // prologue footer

	epilogue := format.Header{Allocated: true, PrevAllocated: true}
	format.PutHeader(data, start+3*format.WordSize, epilogue)

	a.base = start + format.DWordSize

	if _, err := a.extend(format.ChunkSize); err != nil {
		return err
	}
	return nil
}

// Alloc returns a block with at least size usable payload bytes, 8-byte
// aligned. A size of zero (or less) yields NilRef with no error; ErrNoSpace
// means the arena could not grow to satisfy the request.
func (a *Allocator) Alloc(size int64) (Ref, error) {
	if size <= 0 {
		return NilRef, nil
	}
	// Rounding the request up to a block size must not overflow; a request
	// this large can never be satisfied anyway.
	if size > math.MaxInt64-format.WordSize-format.AlignMask {
		return NilRef, ErrNoSpace
	}
	a.stats.AllocCalls++

	asize := adjustSize(size)

	if ref := a.findFit(asize); ref != NilRef {
		a.stats.AllocFastPath++
		a.place(ref, asize)
		return ref, nil
	}

	// No fit anywhere. Grow by at least a chunk; the new block comes back
	// already coalesced and indexed.
	ref, err := a.extend(max(asize, format.ChunkSize))
	if err != nil {
		return NilRef, err
	}
	a.stats.AllocSlowPath++
	if debugAlloc {
		debugLogf("Alloc(%d): grew heap for block size %d", size, asize)
	}
	a.place(ref, asize)
	return ref, nil
}

// Free returns a block to the heap. Freeing NilRef is a no-op. The freed
// block is merged with any free neighbors before it reenters the index.
func (a *Allocator) Free(ref Ref) {
	if ref == NilRef {
		return
	}
	a.stats.FreeCalls++

	h := a.header(ref)
	a.stats.BytesFreed += h.Size

	freed := format.Header{Size: h.Size, PrevAllocated: h.PrevAllocated}
	a.writeHeader(ref, freed)
	a.writeFooter(ref, freed)
	a.clearLinks(ref)

	// Tell the successor its predecessor is free now.
	next := ref + h.Size
	nh := a.header(next)
	nh.PrevAllocated = false
	a.writeHeader(next, nh)
	if !nh.Allocated {
		a.writeFooter(next, nh)
	}

	// Ownership of the merged block passes into the free-list index.
	a.coalesce(ref)
}

// Realloc resizes a block. Realloc(NilRef, n) behaves as Alloc(n);
// Realloc(ref, 0) behaves as Free(ref) and returns NilRef. Otherwise the
// contents are copied into a fresh block and the old one is freed. On
// failure the original block is left untouched.
func (a *Allocator) Realloc(ref Ref, size int64) (Ref, error) {
	if size <= 0 {
		a.Free(ref)
		return NilRef, nil
	}
	if ref == NilRef {
		return a.Alloc(size)
	}
	if !a.validRef(ref) {
		return NilRef, ErrBadRef
	}

	newRef, err := a.Alloc(size)
	if err != nil {
		return NilRef, err
	}

	n := min(a.UsableSize(ref), size)
	data := a.ar.Bytes()
	copy(data[newRef:newRef+n], data[ref:ref+n])

	a.Free(ref)
	return newRef, nil
}

// Calloc allocates count*size bytes and zero-fills them. A zero count or
// size yields NilRef; a product that overflows is reported as exhaustion.
func (a *Allocator) Calloc(count, size int64) (Ref, error) {
	if count <= 0 || size <= 0 {
		return NilRef, nil
	}
	if count > math.MaxInt64/size {
		return NilRef, ErrNoSpace
	}

	ref, err := a.Alloc(count * size)
	if err != nil {
		return NilRef, err
	}
	clear(a.Bytes(ref))
	return ref, nil
}

// UsableSize returns the payload bytes backing ref, which may exceed the
// requested size due to alignment and the minimum block size. Zero for
// NilRef.
func (a *Allocator) UsableSize(ref Ref) int64 {
	if ref == NilRef {
		return 0
	}
	return a.header(ref).Size - format.WordSize
}

// Bytes returns the block's payload as a slice aliasing the arena. The view
// stays valid until the block is freed. Nil for NilRef.
func (a *Allocator) Bytes(ref Ref) []byte {
	if ref == NilRef {
		return nil
	}
	return a.ar.Bytes()[ref : ref+a.UsableSize(ref)]
}

// Stats returns a copy of the allocator's operation counters.
func (a *Allocator) Stats() Stats { return a.stats }

// SetDiagOutput redirects Check's violation reports. The default is stderr.
func (a *Allocator) SetDiagOutput(w io.Writer) { a.diag = w }

// adjustSize converts a payload request into a block size: header overhead
// added, rounded up to the 8-byte granularity, floored at the minimum block
// size so a later free can always hold the footer and both list links.
func adjustSize(size int64) int64 {
	if size <= 2*format.DWordSize {
		return format.MinBlockSize
	}
	return format.Align8(size + format.WordSize)
}

// place carves asize bytes out of a free block. The remainder is split off
// as a new free block when it can stand alone; otherwise the whole block is
// handed out and the successor learns its predecessor is allocated. The
// no-split branch accepts up to MinBlockSize-1 bytes of internal
// fragmentation.
func (a *Allocator) place(ref Ref, asize int64) {
	h := a.header(ref)
	a.removeFree(ref)

	if rem := h.Size - asize; rem >= format.MinBlockSize {
		a.stats.SplitCount++
		a.writeHeader(ref, format.Header{
			Size:          asize,
			Allocated:     true,
			PrevAllocated: h.PrevAllocated,
		})

		tail := ref + asize
		th := format.Header{Size: rem, PrevAllocated: true}
		a.writeHeader(tail, th)
		a.writeFooter(tail, th)
		a.clearLinks(tail)
		a.insertFree(tail)

		a.stats.BytesAllocated += asize
		return
	}

	a.writeHeader(ref, format.Header{
		Size:          h.Size,
		Allocated:     true,
		PrevAllocated: h.PrevAllocated,
	})

	next := ref + h.Size
	nh := a.header(next)
	nh.PrevAllocated = true
	a.writeHeader(next, nh)
	if !nh.Allocated {
		a.writeFooter(next, nh)
	}

	a.stats.BytesAllocated += h.Size
}

// validRef reports whether ref plausibly names a live allocated block:
// inside the heap, aligned, and carrying the allocated bit.
func (a *Allocator) validRef(ref Ref) bool {
	if ref < a.base+format.DWordSize || ref >= a.ar.Size() {
		return false
	}
	if !format.Aligned8(ref) {
		return false
	}
	h := a.header(ref)
	return h.Allocated && h.Size >= format.MinBlockSize && ref+h.Size <= a.ar.Size()
}
