package testhelp

import (
	"github.com/zeebo/errs/v2"

	"github.com/histdb/dynbuf/alloc"
)

const ErrInjected = errs.Tag("injected allocation failure")

// FailAfter is an allocator that serves the first N allocating calls
// (Alloc, AllocZeroed, Realloc) from A and fails every call after that.
type FailAfter[V any] struct {
	A alloc.T[V] // nil means alloc.Go[V]
	N int

	Calls int
	Frees int
}

func (f *FailAfter[V]) base() alloc.T[V] {
	if f.A == nil {
		return alloc.Go[V]{}
	}
	return f.A
}

func (f *FailAfter[V]) fail() error {
	f.Calls++
	if f.Calls > f.N {
		return ErrInjected.Errorf("call %d of %d", f.Calls, f.N)
	}
	return nil
}

func (f *FailAfter[V]) Alloc(n int) ([]V, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.base().Alloc(n)
}

func (f *FailAfter[V]) AllocZeroed(n int) ([]V, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.base().AllocZeroed(n)
}

func (f *FailAfter[V]) Realloc(x []V, n int) ([]V, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.base().Realloc(x, n)
}

func (f *FailAfter[V]) Free(x []V) {
	f.Frees++
	f.base().Free(x)
}

// Dirty is an allocator whose Alloc and Realloc fill the unspecified part
// of a region with Fill, so tests can tell zeroed memory from reused memory.
type Dirty[V any] struct {
	Fill V
}

func (d Dirty[V]) Alloc(n int) ([]V, error) {
	x, err := alloc.Go[V]{}.Alloc(n)
	for i := range x {
		x[i] = d.Fill
	}
	return x, err
}

func (d Dirty[V]) AllocZeroed(n int) ([]V, error) {
	return alloc.Go[V]{}.AllocZeroed(n)
}

func (d Dirty[V]) Realloc(x []V, n int) ([]V, error) {
	nx, err := alloc.Go[V]{}.Realloc(x, n)
	for i := len(x); i < len(nx); i++ {
		nx[i] = d.Fill
	}
	return nx, err
}

func (d Dirty[V]) Free(x []V) {}
