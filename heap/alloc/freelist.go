package alloc

// Segregated free-list index: numClasses buckets partitioned by block size,
// each an ascending-order doubly linked list threaded through the free
// blocks themselves. Ascending order makes the first fit within a bucket
// the best fit, so searches never need to scan past the first match.

// numClasses is the number of size-class buckets.
const numClasses = 10

// classBounds holds the inclusive upper size bound of each bucket except
// the last, which is unbounded.
var classBounds = [numClasses - 1]int64{32, 64, 128, 256, 512, 1024, 2048, 4096, 8192}

// bucketFor maps a block size to its bucket index.
func bucketFor(size int64) int {
	for i, bound := range classBounds {
		if size <= bound {
			return i
		}
	}
	return numClasses - 1
}

// spliceIn links ref into bucket b between prev and next, either of which
// may be NilRef. A NilRef prev makes ref the new bucket head. This is the
// one primitive behind all four structural insert cases (alone, head, tail,
// interior).
func (a *Allocator) spliceIn(b int, prev, next, ref Ref) {
	a.setListPrev(ref, prev)
	a.setListNext(ref, next)
	if prev == NilRef {
		a.roots[b] = ref
	} else {
		a.setListNext(prev, ref)
	}
	if next != NilRef {
		a.setListPrev(next, ref)
	}
}

// spliceOut unlinks ref from bucket b, joining its neighbors. The dual of
// spliceIn, covering the same four structural cases.
func (a *Allocator) spliceOut(b int, ref Ref) {
	prev := a.listPrev(ref)
	next := a.listNext(ref)
	if prev == NilRef {
		a.roots[b] = next
	} else {
		a.setListNext(prev, next)
	}
	if next != NilRef {
		a.setListPrev(next, prev)
	}
	a.clearLinks(ref)
}

// insertFree places a free block into its bucket, keeping the bucket in
// ascending size order: walk from the head to the first member at least as
// large and splice in before it.
func (a *Allocator) insertFree(ref Ref) {
	size := a.header(ref).Size
	b := bucketFor(size)

	var prev Ref = NilRef
	next := a.roots[b]
	for next != NilRef && a.header(next).Size < size {
		prev = next
		next = a.listNext(next)
	}
	a.spliceIn(b, prev, next, ref)
}

// removeFree unlinks a free block from its bucket. A block that is already
// marked allocated is left alone; the guard keeps internal misuse from
// corrupting an unrelated bucket.
func (a *Allocator) removeFree(ref Ref) {
	if ref == NilRef {
		return
	}
	h := a.header(ref)
	if h.Allocated {
		return
	}
	a.spliceOut(bucketFor(h.Size), ref)
}

// findFit returns the smallest free block of at least size bytes, or NilRef.
// Buckets are scanned from the size's own class upward; within a bucket the
// ascending order means the first block that fits is the best fit there.
func (a *Allocator) findFit(size int64) Ref {
	for b := bucketFor(size); b < numClasses; b++ {
		for ref := a.roots[b]; ref != NilRef; ref = a.listNext(ref) {
			if a.header(ref).Size >= size {
				return ref
			}
		}
	}
	return NilRef
}
