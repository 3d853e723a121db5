package alloc

import (
	"fmt"

	"github.com/y-tongchen/heapkit/heap/verify"
)

// Verify runs the full consistency check — the address-order heap walk plus
// every free-list bucket — and returns the violations found. Diagnostic
// only; it never modifies the heap.
func (a *Allocator) Verify() []verify.Violation {
	data := a.ar.Bytes()
	vs := verify.Heap(data, a.base, a.ar.Size())
	return append(vs, verify.Buckets(data, a.roots[:], classBounds[:])...)
}

// Check writes a human-readable report of any invariant violations to the
// diagnostic writer, prefixed with tag so call sites can be told apart.
// Violations are reported, not repaired. Safe to omit in production use.
func (a *Allocator) Check(tag string) {
	for _, v := range a.Verify() {
		fmt.Fprintf(a.diag, "heapcheck %s: %s\n", tag, v)
	}
}
