package sizeof

import "unsafe"

// Elem is the stride of one V in a contiguous region.
func Elem[T any]() uint64 {
	return uint64(unsafe.Sizeof(*new(T)))
}

// Slice is the header plus the reserved backing storage of v.
func Slice[T any](v []T) uint64 {
	return 24 + Elem[T]()*uint64(cap(v))
}
