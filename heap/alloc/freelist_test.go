package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBucketForBoundaries(t *testing.T) {
	cases := []struct {
		size   int64
		bucket int
	}{
		{24, 0}, {32, 0},
		{33, 1}, {64, 1},
		{65, 2}, {128, 2},
		{129, 3}, {256, 3},
		{257, 4}, {512, 4},
		{513, 5}, {1024, 5},
		{1025, 6}, {2048, 6},
		{2049, 7}, {4096, 7},
		{4097, 8}, {8192, 8},
		{8193, 9}, {1 << 20, 9},
	}
	for _, tc := range cases {
		require.Equal(t, tc.bucket, bucketFor(tc.size), "bucketFor(%d)", tc.size)
	}
}

// TestClassBoundarySizesLandInTheirBucket frees blocks sized exactly at
// each class's upper bound and checks the index files them correctly.
// Off-by-one placement here would silently degrade the fit search.
func TestClassBoundarySizesLandInTheirBucket(t *testing.T) {
	for b, bound := range classBounds {
		a := newTestAllocator(t)

		// Guards on both sides keep the victim from coalescing away.
		_, err := a.Alloc(16)
		require.NoError(t, err)
		victim, err := a.Alloc(bound - 4) // block size exactly == bound
		require.NoError(t, err)
		_, err = a.Alloc(16)
		require.NoError(t, err)

		require.Equal(t, bound, a.header(victim).Size)
		a.Free(victim)

		found := false
		for ref := a.roots[b]; ref != NilRef; ref = a.listNext(ref) {
			if ref == victim {
				found = true
			}
		}
		require.True(t, found, "block of size %d missing from bucket %d", bound, b)
		require.Empty(t, a.Verify())
	}
}

// bucketSizes returns the block sizes in bucket b in list order.
func (a *Allocator) bucketSizes(b int) []int64 {
	var sizes []int64
	for ref := a.roots[b]; ref != NilRef; ref = a.listNext(ref) {
		sizes = append(sizes, a.header(ref).Size)
	}
	return sizes
}

// carveFreeBlocks allocates guard/victim pairs and frees the victims so the
// heap holds isolated free blocks of exactly the given sizes.
func carveFreeBlocks(t *testing.T, a *Allocator, sizes ...int64) []Ref {
	t.Helper()
	victims := make([]Ref, len(sizes))
	for i, size := range sizes {
		ref, err := a.Alloc(size - 4)
		require.NoError(t, err)
		require.Equal(t, size, a.header(ref).Size)
		victims[i] = ref
		_, err = a.Alloc(16) // guard against coalescing
		require.NoError(t, err)
	}
	for _, ref := range victims {
		a.Free(ref)
	}
	return victims
}

func TestBucketKeepsAscendingOrder(t *testing.T) {
	a := newTestAllocator(t)

	// All three sizes belong to bucket 2 (65..128); freeing order 72, 104,
	// 88 exercises the alone, tail, and interior insert cases.
	carveFreeBlocks(t, a, 72, 104, 88)
	require.Equal(t, []int64{72, 88, 104}, a.bucketSizes(2))
	require.Empty(t, a.Verify())
}

func TestBucketHeadInsert(t *testing.T) {
	a := newTestAllocator(t)

	// Freeing the largest first forces each later block in at the head.
	carveFreeBlocks(t, a, 104, 88, 72)
	require.Equal(t, []int64{72, 88, 104}, a.bucketSizes(2))
	require.Empty(t, a.Verify())
}

func TestFindFitTakesSmallestAdequate(t *testing.T) {
	a := newTestAllocator(t)

	victims := carveFreeBlocks(t, a, 72, 104)

	// An 88-byte block doesn't fit in 72, so the fit search must pass it
	// over and take the 104-byte block.
	ref, err := a.Alloc(84) // block size 88
	require.NoError(t, err)
	require.Equal(t, victims[1], ref)
	require.Empty(t, a.Verify())
}

func TestFindFitFallsThroughToLargerBuckets(t *testing.T) {
	a := newTestAllocator(t)

	victims := carveFreeBlocks(t, a, 72, 512)

	// Nothing in bucket 2 fits 200 bytes; the search must continue into
	// bucket 4 rather than give up or grow.
	grows := a.Stats().GrowCalls
	ref, err := a.Alloc(200)
	require.NoError(t, err)
	require.Equal(t, victims[1], ref)
	require.Equal(t, grows, a.Stats().GrowCalls)
}

func TestRemoveFreeIgnoresAllocatedBlock(t *testing.T) {
	a := newTestAllocator(t)

	ref, err := a.Alloc(100)
	require.NoError(t, err)

	// An allocated block is not on any list; removal must not touch the
	// buckets.
	before := a.freeBlocks()
	a.removeFree(ref)
	require.Equal(t, before, a.freeBlocks())
	require.Empty(t, a.Verify())
}
