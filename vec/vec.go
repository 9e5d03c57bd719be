// Package vec implements a growable contiguous array with independent length
// and capacity.
//
// Growth is exact-fit: growing to n elements reserves exactly n, never more.
// Shrinking through Resize keeps the capacity so a later grow under the old
// high-water mark does not reallocate; only Resize(0) and Release return
// storage to the allocator.
//
// Every operation reports failure as an error classified by one of
// InvalidArgument, InvalidState, OutOfBounds or AllocationFailure, and a
// failed operation leaves the buffer as it was.
//
// A T is not safe for concurrent use. Callers must serialize access.
package vec

import (
	"github.com/histdb/dynbuf/alloc"
	"github.com/histdb/dynbuf/sizeof"
)

type T[V any] struct {
	_ [0]func() // no equality

	data     []V // len(data) is the capacity
	n        int
	a        alloc.T[V]
	released bool
}

// New returns a buffer of n zero elements backed by the Go heap.
func New[V any](n int) (*T[V], error) {
	return NewWith[V](nil, n)
}

// NewWith returns a buffer of n zero elements whose storage comes from a.
// A nil a uses alloc.Go.
func NewWith[V any](a alloc.T[V], n int) (*T[V], error) {
	if alloc.Stride[V]() == 0 {
		return nil, report(InvalidArgument.Errorf("element stride is zero"))
	}
	if n < 0 {
		return nil, report(InvalidArgument.Errorf("negative length %d", n))
	}

	t := &T[V]{a: a}
	if n == 0 {
		return t, nil
	}

	data, err := t.alloc().AllocZeroed(n)
	if err != nil {
		return nil, report(AllocationFailure.Wrap(err))
	}
	t.data, t.n = data[:n:n], n
	return t, nil
}

func (t *T[V]) alloc() alloc.T[V] {
	if t.a == nil {
		return alloc.Go[V]{}
	}
	return t.a
}

func (t *T[V]) check() error {
	switch {
	case t == nil:
		return report(InvalidArgument.Errorf("nil buffer"))
	case t.released:
		return report(InvalidState.Errorf("buffer used after release"))
	case alloc.Stride[V]() == 0:
		return report(InvalidArgument.Errorf("element stride is zero"))
	}
	return nil
}

// Len is the number of live elements.
func (t *T[V]) Len() int {
	if t == nil {
		return 0
	}
	return t.n
}

// Cap is the number of elements the storage holds.
func (t *T[V]) Cap() int {
	if t == nil {
		return 0
	}
	return len(t.data)
}

// Stride is the size in bytes of one element.
func (t *T[V]) Stride() uintptr { return alloc.Stride[V]() }

// Released reports if Release was called. A released buffer rejects every
// operation with InvalidState and reports zero length and capacity.
func (t *T[V]) Released() bool { return t != nil && t.released }

// Size estimates the bytes held by t, including reserved storage.
func (t *T[V]) Size() uint64 {
	return 0 +
		/* data     */ sizeof.Slice(t.data) +
		/* n        */ 8 +
		/* a        */ 16 +
		/* released */ 8 +
		0
}

// Release returns the storage to the allocator. The buffer is unusable
// afterward: every operation but Release and the accessors fails with
// InvalidState. Releasing twice is a no-op.
func (t *T[V]) Release() {
	if t == nil || t.released {
		return
	}
	t.free()
	t.n = 0
	t.released = true
}

func (t *T[V]) free() {
	if t.data != nil {
		t.alloc().Free(t.data)
		t.data = nil
	}
}

// grow reallocates the storage to exactly c elements. On failure nothing
// changes.
func (t *T[V]) grow(c int) error {
	data, err := t.alloc().Realloc(t.data, c)
	if err != nil {
		return report(AllocationFailure.Wrap(err))
	}
	t.data = data[:c:c]
	return nil
}

// Reserve ensures room for c elements without changing the length. It fails
// with InvalidState if c is below the length and never shrinks the capacity.
func (t *T[V]) Reserve(c int) error {
	if err := t.check(); err != nil {
		return err
	}
	if c < t.n {
		return report(InvalidState.Errorf("reserve %d below length %d", c, t.n))
	}
	if c <= len(t.data) {
		return nil
	}
	return t.grow(c)
}

// Resize sets the length to n. Resize(0) frees the storage. Shrinking, or
// growing within the capacity, only moves the length. Growing past the
// capacity reallocates to exactly n.
//
// Elements exposed by growing are unspecified: they may hold stale values or
// whatever the allocator left there. Only New guarantees zeroed elements.
func (t *T[V]) Resize(n int) error {
	if err := t.check(); err != nil {
		return err
	}
	switch {
	case n < 0:
		return report(InvalidArgument.Errorf("negative length %d", n))

	case n == 0:
		t.free()

	case n > len(t.data):
		if err := t.grow(n); err != nil {
			return err
		}
	}
	t.n = n
	return nil
}

// Push appends v, growing the storage by exactly one element when full.
func (t *T[V]) Push(v V) error {
	if err := t.Resize(t.Len() + 1); err != nil {
		return err
	}
	t.data[t.n-1] = v
	return nil
}

// PushPtr appends *p. It fails with InvalidArgument if p is nil.
func (t *T[V]) PushPtr(p *V) error {
	if p == nil {
		return report(InvalidArgument.Errorf("nil element"))
	}
	return t.Push(*p)
}

// At returns a pointer to element i. The pointer is only valid until the
// next operation that changes the buffer.
func (t *T[V]) At(i int) (*V, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if uint(i) >= uint(t.n) {
		return nil, report(OutOfBounds.Errorf("index %d with length %d", i, t.n))
	}
	return &t.data[i], nil
}

// Get returns a copy of element i.
func (t *T[V]) Get(i int) (v V, err error) {
	p, err := t.At(i)
	if err != nil {
		return v, err
	}
	return *p, nil
}

// Set overwrites element i with v.
func (t *T[V]) Set(i int, v V) error {
	if err := t.check(); err != nil {
		return err
	}
	if uint(i) >= uint(t.n) {
		return report(OutOfBounds.Errorf("index %d with length %d", i, t.n))
	}
	if t.data == nil {
		return report(InvalidState.Errorf("set on empty storage"))
	}
	t.data[i] = v
	return nil
}

// Slice returns the live elements. Like At, the slice aliases the storage
// and is only valid until the next operation that changes the buffer.
func (t *T[V]) Slice() []V {
	if t == nil || t.released {
		return nil
	}
	return t.data[:t.n:t.n]
}

// CopyFrom makes t a deep copy of src: exactly src.Len() elements in storage
// from t's allocator that is never shared with src. The copy is built in a
// fresh region before t is touched, so on failure t is unchanged.
func (t *T[V]) CopyFrom(src *T[V]) error {
	if t == nil || src == nil {
		return report(InvalidArgument.Errorf("copy with nil buffer"))
	}
	if err := t.check(); err != nil {
		return err
	}
	if err := src.check(); err != nil {
		return err
	}
	if t == src {
		return nil
	}

	var data []V
	if src.n > 0 {
		var err error
		data, err = t.alloc().Alloc(src.n)
		if err != nil {
			return report(AllocationFailure.Wrap(err))
		}
		data = data[:src.n:src.n]
		copy(data, src.data[:src.n])
	}

	t.free()
	t.data, t.n = data, src.n
	return nil
}

// Copy is CopyFrom with the destination first.
func Copy[V any](dst, src *T[V]) error {
	if dst == nil {
		return report(InvalidArgument.Errorf("copy with nil buffer"))
	}
	return dst.CopyFrom(src)
}

// Equal reports whether a and b hold the same live elements. Capacity and
// allocator are not compared.
func Equal[V interface{ Equal(V) bool }](a, b *T[V]) bool {
	x, y := a.Slice(), b.Slice()
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !x[i].Equal(y[i]) {
			return false
		}
	}
	return true
}
