package format

import "encoding/binary"

// Binary encoding utilities for little-endian words.
//
// Implementation: encoding/binary.LittleEndian. The standard library calls
// are inlined by the compiler; unsafe pointer variants measured no faster and
// lose the bounds checks.

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int64, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int64) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int64, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int64) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}
