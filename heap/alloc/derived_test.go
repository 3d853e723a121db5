package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/y-tongchen/heapkit/heap/arena"
)

func fillPattern(buf []byte, seed byte) {
	for i := range buf {
		buf[i] = seed + byte(i)
	}
}

func requirePattern(t *testing.T, buf []byte, seed byte) {
	t.Helper()
	for i, b := range buf {
		require.Equal(t, seed+byte(i), b, "payload byte %d", i)
	}
}

func TestReallocGrowPreservesPrefix(t *testing.T) {
	a := newTestAllocator(t)

	p, err := a.Alloc(64)
	require.NoError(t, err)
	fillPattern(a.Bytes(p)[:64], 0x10)

	q, err := a.Realloc(p, 256)
	require.NoError(t, err)
	require.GreaterOrEqual(t, a.UsableSize(q), int64(256))
	requirePattern(t, a.Bytes(q)[:64], 0x10)
	require.Empty(t, a.Verify())
}

func TestReallocShrinkPreservesPrefix(t *testing.T) {
	a := newTestAllocator(t)

	p, err := a.Alloc(256)
	require.NoError(t, err)
	fillPattern(a.Bytes(p)[:256], 0x40)

	q, err := a.Realloc(p, 16)
	require.NoError(t, err)
	require.GreaterOrEqual(t, a.UsableSize(q), int64(16))
	requirePattern(t, a.Bytes(q)[:16], 0x40)
	require.Empty(t, a.Verify())
}

func TestReallocNilBehavesAsAlloc(t *testing.T) {
	a := newTestAllocator(t)

	ref, err := a.Realloc(NilRef, 64)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, ref)
	require.GreaterOrEqual(t, a.UsableSize(ref), int64(64))
	require.Empty(t, a.Verify())
}

func TestReallocZeroBehavesAsFree(t *testing.T) {
	a := newTestAllocator(t)

	p, err := a.Alloc(64)
	require.NoError(t, err)

	ref, err := a.Realloc(p, 0)
	require.NoError(t, err)
	require.Equal(t, NilRef, ref)
	require.False(t, a.header(p).Allocated)
	require.Empty(t, a.Verify())
}

func TestReallocFailureLeavesOriginal(t *testing.T) {
	a, err := New(arena.NewSlice(4120))
	require.NoError(t, err)

	p, err := a.Alloc(100)
	require.NoError(t, err)
	fillPattern(a.Bytes(p)[:100], 0x70)

	// The arena cannot extend, so the move must fail — and leave the
	// original block allocated with its payload untouched.
	_, err = a.Realloc(p, 8000)
	require.ErrorIs(t, err, ErrNoSpace)
	require.True(t, a.header(p).Allocated)
	requirePattern(t, a.Bytes(p)[:100], 0x70)
	require.Empty(t, a.Verify())
}

func TestReallocRejectsBadRefs(t *testing.T) {
	a := newTestAllocator(t)

	p, err := a.Alloc(64)
	require.NoError(t, err)

	// Misaligned, out of bounds, and interior refs are all rejected.
	for _, bad := range []Ref{p + 1, -8, a.ar.Size() + 64, p + 8} {
		_, err := a.Realloc(bad, 32)
		require.ErrorIs(t, err, ErrBadRef, "ref %d", bad)
	}

	// A freed ref no longer names an allocated block.
	a.Free(p)
	_, err = a.Realloc(p, 32)
	require.ErrorIs(t, err, ErrBadRef)
	require.Empty(t, a.Verify())
}

func TestCallocZeroFillsRecycledMemory(t *testing.T) {
	a := newTestAllocator(t)

	// Dirty a block, free it, then calloc the same footprint so the dirty
	// bytes get recycled.
	p, err := a.Alloc(100)
	require.NoError(t, err)
	for i := range a.Bytes(p) {
		a.Bytes(p)[i] = 0xFF
	}
	a.Free(p)

	c, err := a.Calloc(10, 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, a.UsableSize(c), int64(100))
	for i, b := range a.Bytes(c) {
		require.Equal(t, byte(0), b, "byte %d not cleared", i)
	}
	require.Empty(t, a.Verify())
}

func TestAllocHugeRequestIsRejected(t *testing.T) {
	a := newTestAllocator(t)

	// Near MaxInt64 the header-and-alignment round-up would wrap negative;
	// the request must be reported as exhaustion, not satisfied with a
	// smaller block.
	for _, size := range []int64{math.MaxInt64, math.MaxInt64 - 4, math.MaxInt64 - 11} {
		ref, err := a.Alloc(size)
		require.ErrorIs(t, err, ErrNoSpace, "Alloc(%d)", size)
		require.Equal(t, NilRef, ref)
	}

	// The heap is untouched: a reasonable request still succeeds.
	ref, err := a.Alloc(64)
	require.NoError(t, err)
	require.GreaterOrEqual(t, a.UsableSize(ref), int64(64))
	require.Empty(t, a.Verify())
}

func TestCallocOverflowIsRejected(t *testing.T) {
	a := newTestAllocator(t)

	_, err := a.Calloc(math.MaxInt64/4+1, 4)
	require.ErrorIs(t, err, ErrNoSpace)

	_, err = a.Calloc(3, math.MaxInt64/2)
	require.ErrorIs(t, err, ErrNoSpace)
	require.Empty(t, a.Verify())
}

func TestCallocZeroElements(t *testing.T) {
	a := newTestAllocator(t)

	ref, err := a.Calloc(0, 8)
	require.NoError(t, err)
	require.Equal(t, NilRef, ref)

	ref, err = a.Calloc(8, 0)
	require.NoError(t, err)
	require.Equal(t, NilRef, ref)
}
