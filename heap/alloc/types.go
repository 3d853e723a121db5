package alloc

// Ref is a block reference: the byte offset of the block's payload within
// the arena. The heap's layout guarantees no payload ever sits at offset
// zero, so NilRef doubles as the null reference.
type Ref = int64

// NilRef is the null block reference.
const NilRef Ref = 0
