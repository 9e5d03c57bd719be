package alloc

// Limit wraps an allocator with a byte budget. Requests that would push the
// bytes in use past Max fail with ErrExhausted.
type Limit[V any] struct {
	A   T[V] // nil means Go[V]
	Max uint64

	used uint64
}

func NewLimit[V any](a T[V], max uint64) *Limit[V] {
	return &Limit[V]{A: a, Max: max}
}

func (l *Limit[V]) InUse() uint64 { return l.used }

func (l *Limit[V]) base() T[V] {
	if l.A == nil {
		return Go[V]{}
	}
	return l.A
}

func (l *Limit[V]) reserve(held []V, n int) (uint64, error) {
	need, err := Bytes[V](n)
	if err != nil {
		return 0, err
	}
	have, _ := Bytes[V](cap(held))
	if used := l.release(have); need > l.Max || used > l.Max-need {
		return 0, ErrExhausted.Errorf("need %d bytes with %d of %d in use", need, used, l.Max)
	}
	return need, nil
}

func (l *Limit[V]) Alloc(n int) ([]V, error) {
	need, err := l.reserve(nil, n)
	if err != nil {
		return nil, err
	}
	x, err := l.base().Alloc(n)
	if err != nil {
		return nil, err
	}
	l.used += need
	return x, nil
}

func (l *Limit[V]) AllocZeroed(n int) ([]V, error) {
	need, err := l.reserve(nil, n)
	if err != nil {
		return nil, err
	}
	x, err := l.base().AllocZeroed(n)
	if err != nil {
		return nil, err
	}
	l.used += need
	return x, nil
}

func (l *Limit[V]) Realloc(x []V, n int) ([]V, error) {
	need, err := l.reserve(x, n)
	if err != nil {
		return nil, err
	}
	nx, err := l.base().Realloc(x, n)
	if err != nil {
		return nil, err
	}
	have, _ := Bytes[V](cap(x))
	l.used = l.release(have) + need
	return nx, nil
}

// Free returns x to the wrapped allocator. Regions that did not come from l,
// or are freed twice, can only bring the bytes in use down to zero.
func (l *Limit[V]) Free(x []V) {
	have, _ := Bytes[V](cap(x))
	l.used = l.release(have)
	l.base().Free(x)
}

func (l *Limit[V]) release(n uint64) uint64 {
	if n > l.used {
		return 0
	}
	return l.used - n
}
