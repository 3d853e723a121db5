package alloc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats holds the allocator's operation counters. Byte totals include block
// headers.
type Stats struct {
	AllocCalls    int   // total Alloc calls that did work
	AllocFastPath int   // allocations satisfied from the free lists
	AllocSlowPath int   // allocations that required heap growth
	FreeCalls     int   // total Free calls that did work
	GrowCalls     int   // arena extensions performed
	GrowBytes     int64 // total bytes added to the arena
	GrowFailures  int   // extensions refused by the arena

	SplitCount       int // placements that split off a remainder
	CoalesceForward  int // merges with the successor block
	CoalesceBackward int // merges with the predecessor block

	BytesAllocated int64
	BytesFreed     int64
}

// statsPrinter groups digits for readability in diagnostics output.
var statsPrinter = message.NewPrinter(language.English)

// String renders the counters for diagnostics.
func (s Stats) String() string {
	return statsPrinter.Sprintf(
		"allocs=%d (fast=%d slow=%d) frees=%d splits=%d coalesces(fwd=%d bwd=%d) "+
			"grown %d bytes in %d calls (%d refused) allocated=%d bytes freed=%d bytes",
		s.AllocCalls, s.AllocFastPath, s.AllocSlowPath, s.FreeCalls,
		s.SplitCount, s.CoalesceForward, s.CoalesceBackward,
		s.GrowBytes, s.GrowCalls, s.GrowFailures,
		s.BytesAllocated, s.BytesFreed,
	)
}
