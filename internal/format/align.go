package format

// Alignment utilities for the heap layout. Every block size and payload
// offset must sit on an 8-byte boundary.

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
//	Align8(16) = 16
func Align8(n int64) int64 {
	return (n + AlignMask) & ^int64(AlignMask)
}

// Aligned8 reports whether n sits on an 8-byte boundary.
func Aligned8(n int64) bool {
	return n&AlignMask == 0
}
