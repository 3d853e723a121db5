// Package format houses the word-level layout of heap blocks. The goal is to
// keep the bit packing and alignment rules focused and independent from the
// allocation policy so higher-level packages can orchestrate blocks without
// re-deriving the encoding.
package format

const (
	// WordSize is the size of a block header or footer word in bytes.
	WordSize = 4

	// DWordSize is the allocation granularity and the size of one free-list
	// link in bytes. All block sizes are multiples of DWordSize.
	DWordSize = 8

	// MinBlockSize is the smallest representable block: header and footer
	// bookkeeping (8 bytes) plus two 8-byte free-list links that overlap the
	// payload of a free block.
	MinBlockSize = 3 * DWordSize

	// ChunkSize is the default heap extension granularity. Growth requests
	// smaller than this are rounded up to amortize arena calls.
	ChunkSize = 1 << 12

	// AlignMask is the bitmask used for aligning sizes and offsets to
	// DWordSize boundaries (DWordSize - 1).
	AlignMask = DWordSize - 1
)

const (
	// allocatedBit marks a block whose payload is in use.
	allocatedBit = 0x1

	// prevAllocatedBit mirrors the allocation state of the block immediately
	// preceding this one in address order. It is what lets allocated blocks
	// go without a footer.
	prevAllocatedBit = 0x2

	// sizeMask extracts the block size from a packed header word. The low
	// three bits are free for flags because sizes are 8-byte multiples.
	sizeMask = ^uint32(7)
)
