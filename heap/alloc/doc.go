// Package alloc implements a dynamic memory allocator over an offset-addressed
// arena, using segregated free lists with a best-fit search strategy.
//
// # Overview
//
// The allocator manages a single contiguous heap. Every block is
// self-describing: a 4-byte header word packs the block size (a multiple of
// 8) with an allocated bit and a predecessor-allocated bit. Free blocks
// repeat the header as a footer at their end and thread two 8-byte list
// links through the start of their payload, which is why the minimum block
// size is 24 bytes. Allocated blocks carry only the header; the
// predecessor-allocated bit in the following block's header replaces the
// footer they would otherwise need.
//
// # Free-List Index
//
// Free blocks are partitioned into 10 size-class buckets:
//
//	Bucket 0:     ..   32 bytes
//	Bucket 1:   33 -   64 bytes
//	Bucket 2:   65 -  128 bytes
//	Bucket 3:  129 -  256 bytes
//	Bucket 4:  257 -  512 bytes
//	Bucket 5:  513 - 1024 bytes
//	Bucket 6: 1025 - 2048 bytes
//	Bucket 7: 2049 - 4096 bytes
//	Bucket 8: 4097 - 8192 bytes
//	Bucket 9: 8193+      bytes
//
// Each bucket is a doubly linked list kept in ascending size order, so the
// first block that fits is also the best fit within its bucket.
//
// # Heap Layout
//
// The heap opens with an alignment pad and an 8-byte allocated prologue
// block, and is capped by a zero-size allocated epilogue header that moves
// up as the arena grows. All real blocks lie between the two sentinels, in
// address order, with no gaps. Adjacent free blocks are always merged, so
// no two neighbors are ever both free between public calls.
//
// # References
//
// Callers address blocks by Ref, the byte offset of the block's payload in
// the arena. NilRef plays the role of the null pointer: Alloc returns it on
// a zero-size request or exhaustion, Free(NilRef) is a no-op, and
// Realloc(NilRef, n) behaves as Alloc(n).
//
// # Usage Example
//
//	a, err := alloc.New(arena.NewSlice(1 << 20))
//	if err != nil {
//	    return err
//	}
//
//	ref, err := a.Alloc(256)
//	if err != nil {
//	    return err
//	}
//	copy(a.Bytes(ref), payload)
//
//	// Later, release the block for reuse.
//	a.Free(ref)
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must serialize access
// externally.
package alloc
