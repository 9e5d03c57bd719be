package vec

import (
	"github.com/zeebo/xxh3"

	"github.com/histdb/dynbuf/rwutils"
)

// AppendTo writes the length of t followed by each live element.
func AppendTo[V any, RWV rwutils.RW[V]](t *T[V], w *rwutils.W) {
	elems := t.Slice()
	w.Uint64(uint64(len(elems)))
	for i := range elems {
		RWV(&elems[i]).AppendTo(w)
	}
}

// ReadFrom replaces the contents of t with elements read from r. Elements
// must serialize to at least one byte. On any error, which is recorded in r,
// t is unchanged.
func ReadFrom[V any, RWV rwutils.RW[V]](t *T[V], r *rwutils.R) {
	if err := t.check(); err != nil {
		r.Invalid(err)
		return
	}

	n := r.Uint64()
	if r.Err() != nil {
		return
	}
	if n > uint64(r.Remaining()) {
		r.Invalid(report(InvalidArgument.Errorf("%d elements with %d bytes left", n, r.Remaining())))
		return
	}

	tmp := T[V]{a: t.a}
	if err := tmp.Resize(int(n)); err != nil {
		r.Invalid(err)
		return
	}
	for i := range tmp.data {
		RWV(&tmp.data[i]).ReadFrom(r)
	}
	if r.Err() != nil {
		tmp.Release()
		return
	}

	t.free()
	t.data, t.n = tmp.data, tmp.n
}

// Digest hashes the serialized live elements of t. Buffers with equal
// elements have equal digests whatever their capacity.
func Digest[V any, RWV rwutils.RW[V]](t *T[V]) uint64 {
	var w rwutils.W
	h := xxh3.New()
	w.Init(h, make([]byte, 0, 256))
	AppendTo[V, RWV](t, &w)
	if err := w.Done(); err != nil {
		panic(err) // xxh3 writes never fail
	}
	return h.Sum64()
}
