package alloc

import (
	"fmt"
	"os"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugAlloc = false

// debugLogf prints debug messages if debugAlloc is enabled.
func debugLogf(format string, args ...any) {
	if debugAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] "+format+"\n", args...)
	}
}

// dumpHeapState dumps the free-list index and counters for debugging.
func (a *Allocator) dumpHeapState(need int64) {
	if !debugAlloc {
		return
	}

	fmt.Fprintf(os.Stderr, "\n=== HEAP STATE DUMP (need=%d) ===\n", need)
	fmt.Fprintf(os.Stderr, "arena: %d of %d bytes\n", a.ar.Size(), a.ar.Cap())
	fmt.Fprintf(os.Stderr, "stats: %s\n", a.stats)

	for b := 0; b < numClasses; b++ {
		count := 0
		var bytes int64
		for ref := a.roots[b]; ref != NilRef; ref = a.listNext(ref) {
			count++
			bytes += a.header(ref).Size
		}
		if count > 0 {
			fmt.Fprintf(os.Stderr, "bucket %d: %d blocks, %d bytes\n", b, count, bytes)
		}
	}
	fmt.Fprintf(os.Stderr, "=== END DUMP ===\n\n")
}
