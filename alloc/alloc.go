// Package alloc defines the allocator capability used by growable buffers
// and the allocators that ship with it.
//
// An allocator hands out regions of exactly the requested element count
// (len and cap both equal to n). A failing call reports an error and leaves
// any region passed to it untouched. None of the allocators here are safe for
// concurrent use.
package alloc

import (
	"math"
	"math/bits"
	"unsafe"

	"github.com/zeebo/errs/v2"
)

const (
	ErrNegative  = errs.Tag("negative element count")
	ErrOverflow  = errs.Tag("allocation size overflow")
	ErrExhausted = errs.Tag("allocation budget exhausted")
)

// T is the allocator capability.
type T[V any] interface {
	// Alloc returns a region of n elements with unspecified contents.
	Alloc(n int) ([]V, error)

	// AllocZeroed returns a region of n zero elements.
	AllocZeroed(n int) ([]V, error)

	// Realloc returns a region of n elements holding the first min(len(x), n)
	// elements of x. x must not be used after a successful call. On failure x
	// is unchanged and still owned by the caller.
	Realloc(x []V, n int) ([]V, error)

	// Free returns x to the allocator.
	Free(x []V)
}

// Stride is the size in bytes of one V.
func Stride[V any]() uintptr {
	return unsafe.Sizeof(*new(V))
}

// Bytes computes n * Stride[V]() and fails if it would not be addressable.
func Bytes[V any](n int) (uint64, error) {
	if n < 0 {
		return 0, ErrNegative.Errorf("count %d", n)
	}
	hi, lo := bits.Mul64(uint64(n), uint64(Stride[V]()))
	if hi != 0 || lo > math.MaxInt {
		return 0, ErrOverflow.Errorf("%d elements of %d bytes", n, Stride[V]())
	}
	return lo, nil
}

// Go allocates from the Go heap. Free is a no-op; the garbage collector
// reclaims regions once they are unreferenced.
type Go[V any] struct{}

func (Go[V]) Alloc(n int) ([]V, error) { return Go[V]{}.AllocZeroed(n) }

func (Go[V]) AllocZeroed(n int) ([]V, error) {
	if _, err := Bytes[V](n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return make([]V, n), nil
}

func (Go[V]) Realloc(x []V, n int) ([]V, error) {
	if _, err := Bytes[V](n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	nx := make([]V, n)
	copy(nx, x)
	return nx, nil
}

func (Go[V]) Free(x []V) {}
