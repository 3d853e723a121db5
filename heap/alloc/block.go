package alloc

import "github.com/y-tongchen/heapkit/internal/format"

// Address arithmetic over the arena. A block's payload ref is the anchor:
// the header word sits WordSize bytes before it, the footer (free blocks
// only) DWordSize bytes before the block's end, and the two free-list links
// occupy the first 16 payload bytes of a free block.

const (
	prevLinkOff = 0                // back link, relative to the payload ref
	nextLinkOff = format.DWordSize // forward link, relative to the payload ref
)

// header decodes the block's header word.
func (a *Allocator) header(ref Ref) format.Header {
	return format.ReadHeader(a.ar.Bytes(), ref-format.WordSize)
}

// writeHeader encodes h as the block's header word.
func (a *Allocator) writeHeader(ref Ref, h format.Header) {
	format.PutHeader(a.ar.Bytes(), ref-format.WordSize, h)
}

// writeFooter mirrors h at the block's end. Only meaningful for free blocks.
func (a *Allocator) writeFooter(ref Ref, h format.Header) {
	format.PutHeader(a.ar.Bytes(), ref+h.Size-format.DWordSize, h)
}

// nextBlock returns the payload ref of the block immediately after ref in
// address order. For the last real block this lands on the epilogue, whose
// zero-size allocated header keeps the walk well-defined.
func (a *Allocator) nextBlock(ref Ref) Ref {
	return ref + a.header(ref).Size
}

// prevBlock returns the payload ref of the block immediately before ref.
// Valid only when that block is free: allocated blocks carry no footer, so
// their size cannot be read from below.
func (a *Allocator) prevBlock(ref Ref) Ref {
	footer := format.ReadHeader(a.ar.Bytes(), ref-format.DWordSize)
	return ref - footer.Size
}

// listPrev returns the block's back reference within its bucket.
func (a *Allocator) listPrev(ref Ref) Ref {
	return Ref(format.ReadU64(a.ar.Bytes(), ref+prevLinkOff))
}

// listNext returns the block's forward reference within its bucket.
func (a *Allocator) listNext(ref Ref) Ref {
	return Ref(format.ReadU64(a.ar.Bytes(), ref+nextLinkOff))
}

func (a *Allocator) setListPrev(ref, to Ref) {
	format.PutU64(a.ar.Bytes(), ref+prevLinkOff, uint64(to))
}

func (a *Allocator) setListNext(ref, to Ref) {
	format.PutU64(a.ar.Bytes(), ref+nextLinkOff, uint64(to))
}

// clearLinks severs both list links. Done defensively when a block changes
// state so stale references never look live.
func (a *Allocator) clearLinks(ref Ref) {
	a.setListPrev(ref, NilRef)
	a.setListNext(ref, NilRef)
}
