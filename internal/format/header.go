package format

// Header is the decoded form of a block's metadata word. Free blocks repeat
// the same word as a footer at the end of the block so the predecessor can be
// located during coalescing; allocated blocks carry only the header.
type Header struct {
	// Size is the total block size in bytes, including the header word and,
	// for free blocks, the footer word. Always a multiple of DWordSize.
	Size int64

	// Allocated reports whether the block's payload is in use.
	Allocated bool

	// PrevAllocated mirrors the allocation state of the block immediately
	// preceding this one in address order.
	PrevAllocated bool
}

// Pack encodes the header into its on-heap word. Size must be a non-negative
// multiple of DWordSize small enough to fit the 32-bit word; the packing
// silently drops anything in the low three bits.
func (h Header) Pack() uint32 {
	w := uint32(h.Size) & sizeMask
	if h.Allocated {
		w |= allocatedBit
	}
	if h.PrevAllocated {
		w |= prevAllocatedBit
	}
	return w
}

// Unpack decodes a header word.
func Unpack(w uint32) Header {
	return Header{
		Size:          int64(w & sizeMask),
		Allocated:     w&allocatedBit != 0,
		PrevAllocated: w&prevAllocatedBit != 0,
	}
}

// PutHeader writes the packed header word at off.
func PutHeader(b []byte, off int64, h Header) {
	PutU32(b, off, h.Pack())
}

// ReadHeader decodes the header word at off.
func ReadHeader(b []byte, off int64) Header {
	return Unpack(ReadU32(b, off))
}
