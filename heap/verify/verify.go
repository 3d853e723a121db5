package verify

import (
	"fmt"
	"math"

	"github.com/y-tongchen/heapkit/internal/format"
)

// Violation describes one invariant breach found during a check.
type Violation struct {
	Kind    string // invariant family, e.g. "Coalescing" or "BucketOrder"
	Ref     int64  // payload ref of the offending block, -1 if none
	Message string
}

// String renders the violation for a diagnostic report.
func (v Violation) String() string {
	if v.Ref >= 0 {
		return fmt.Sprintf("%s at ref 0x%X: %s", v.Kind, v.Ref, v.Message)
	}
	return fmt.Sprintf("%s: %s", v.Kind, v.Message)
}

// Heap walks every block in address order from the prologue (whose payload
// ref is base) to the epilogue just below hi, validating alignment, bounds,
// the predecessor-allocated mirror, exhaustive coalescing, header/footer
// agreement, and free-list link symmetry for free blocks.
func Heap(data []byte, base, hi int64) []Violation {
	var vs []Violation

	if base <= 0 || base+format.DWordSize > hi {
		return append(vs, Violation{
			Kind:    "HeapWalk",
			Ref:     -1,
			Message: fmt.Sprintf("heap bounds [0x%X, 0x%X) too small to walk", base, hi),
		})
	}

	prev := format.ReadHeader(data, base-format.WordSize) // prologue
	ref := base + prev.Size

	// The epilogue's payload ref coincides with the arena top, so the walk
	// runs up to and including hi.
	for ref <= hi {
		h := format.ReadHeader(data, ref-format.WordSize)
		if h.Size == 0 {
			// Epilogue. It must sit exactly at the top of the arena, and its
			// predecessor bit is subject to the same mirror rule as any block.
			if ref != hi {
				vs = append(vs, Violation{
					Kind:    "HeapWalk",
					Ref:     ref,
					Message: fmt.Sprintf("epilogue before arena top 0x%X", hi),
				})
			}
			if h.PrevAllocated != prev.Allocated {
				vs = append(vs, Violation{Kind: "PrevAllocated", Ref: ref,
					Message: "epilogue's predecessor-allocated bit disagrees with the last block"})
			}
			return vs
		}

		if !format.Aligned8(ref) {
			vs = append(vs, Violation{Kind: "Alignment", Ref: ref,
				Message: "payload ref not 8-byte aligned"})
		}
		if h.Size < format.MinBlockSize || !format.Aligned8(h.Size) {
			vs = append(vs, Violation{Kind: "HeapWalk", Ref: ref,
				Message: fmt.Sprintf("malformed block size %d, stopping walk", h.Size)})
			return vs
		}
		if ref+h.Size > hi {
			vs = append(vs, Violation{Kind: "Bounds", Ref: ref,
				Message: fmt.Sprintf("block end 0x%X past arena top 0x%X, stopping walk", ref+h.Size, hi)})
			return vs
		}

		if h.PrevAllocated != prev.Allocated {
			vs = append(vs, Violation{Kind: "PrevAllocated", Ref: ref,
				Message: "predecessor-allocated bit disagrees with the preceding block"})
		}
		if !h.Allocated && !prev.Allocated {
			vs = append(vs, Violation{Kind: "Coalescing", Ref: ref,
				Message: "block and its predecessor are both free"})
		}

		if !h.Allocated {
			vs = append(vs, checkFreeBlock(data, ref, h, hi)...)
		}

		prev = h
		ref += h.Size
	}

	return append(vs, Violation{Kind: "HeapWalk", Ref: -1,
		Message: "walk ran past the arena top without finding an epilogue"})
}

// checkFreeBlock validates the parts of a free block the address walk alone
// cannot see: the footer mirror and the symmetry of its bucket links.
func checkFreeBlock(data []byte, ref int64, h format.Header, hi int64) []Violation {
	var vs []Violation

	footer := format.ReadHeader(data, ref+h.Size-format.DWordSize)
	if footer != h {
		vs = append(vs, Violation{Kind: "HeaderFooter", Ref: ref,
			Message: fmt.Sprintf("footer %+v does not mirror header %+v", footer, h)})
	}

	back := int64(format.ReadU64(data, ref))
	fwd := int64(format.ReadU64(data, ref+format.DWordSize))
	for _, link := range []struct {
		name string
		to   int64
	}{{"back", back}, {"forward", fwd}} {
		if link.to == 0 {
			continue
		}
		if link.to < 0 || link.to+format.DWordSize > hi {
			vs = append(vs, Violation{Kind: "Links", Ref: ref,
				Message: fmt.Sprintf("%s reference 0x%X out of bounds", link.name, link.to)})
			continue
		}
	}
	if fwd != 0 && fwd+format.DWordSize <= hi {
		if got := int64(format.ReadU64(data, fwd)); got != ref {
			vs = append(vs, Violation{Kind: "Links", Ref: ref,
				Message: fmt.Sprintf("forward neighbor 0x%X points back to 0x%X", fwd, got)})
		}
	}
	if back != 0 && back+2*format.DWordSize <= hi {
		if got := int64(format.ReadU64(data, back+format.DWordSize)); got != ref {
			vs = append(vs, Violation{Kind: "Links", Ref: ref,
				Message: fmt.Sprintf("back neighbor 0x%X points forward to 0x%X", back, got)})
		}
	}

	return vs
}

// Buckets validates the free-list index: every member of bucket i must be a
// free block whose size falls inside the bucket's declared range, and each
// bucket must be in non-decreasing size order. uppers holds the inclusive
// upper bound of every bucket but the last, which is unbounded.
func Buckets(data []byte, roots []int64, uppers []int64) []Violation {
	var vs []Violation

	// A heap of n bytes cannot hold more free blocks than this; anything
	// longer is a cycle.
	maxSteps := len(data)/format.MinBlockSize + 1

	for b, root := range roots {
		lo := int64(0)
		if b > 0 {
			lo = uppers[b-1] + 1
		}
		hi := int64(math.MaxInt64)
		if b < len(uppers) {
			hi = uppers[b]
		}

		prevSize := int64(0)
		steps := 0
		for ref := root; ref != 0; ref = int64(format.ReadU64(data, ref+format.DWordSize)) {
			if steps++; steps > maxSteps {
				vs = append(vs, Violation{Kind: "BucketWalk", Ref: ref,
					Message: fmt.Sprintf("bucket %d list does not terminate", b)})
				break
			}
			if ref < 0 || ref+2*format.DWordSize > int64(len(data)) {
				vs = append(vs, Violation{Kind: "BucketWalk", Ref: ref,
					Message: fmt.Sprintf("bucket %d member out of bounds", b)})
				break
			}

			h := format.ReadHeader(data, ref-format.WordSize)
			if h.Allocated {
				vs = append(vs, Violation{Kind: "BucketMember", Ref: ref,
					Message: fmt.Sprintf("allocated block linked into bucket %d", b)})
			}
			if h.Size < lo || h.Size > hi {
				vs = append(vs, Violation{Kind: "BucketRange", Ref: ref,
					Message: fmt.Sprintf("size %d outside bucket %d range [%d, %d]", h.Size, b, lo, hi)})
			}
			if h.Size < prevSize {
				vs = append(vs, Violation{Kind: "BucketOrder", Ref: ref,
					Message: fmt.Sprintf("size %d after %d breaks ascending order in bucket %d", h.Size, prevSize, b)})
			}
			prevSize = h.Size
		}
	}

	return vs
}
