// Package verify provides diagnostic validation of the heap's invariants.
// It walks the raw arena bytes, so it can inspect an allocator from the
// outside without disturbing it; violations are collected and reported,
// never corrected. Nothing here belongs on an allocation hot path.
package verify
