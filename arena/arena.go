// Package arena is a chunked allocator for element regions. Regions are
// carved from fixed size chunks and are only reclaimed in bulk by Reset,
// except that freeing or resizing the most recently carved region happens in
// place. It implements alloc.T and is not safe for concurrent use.
package arena

import (
	"unsafe"

	"github.com/histdb/dynbuf/alloc"
	"github.com/histdb/dynbuf/sizeof"
)

const lBatch = 1024

var _ alloc.T[int] = (*T[int])(nil)

type T[V any] struct {
	_ [0]func() // no equality

	batch  int
	gen    uint64
	chunks [][]V      // current is chunks[len(chunks)-1]
	off    int        // next free element of the current chunk
	big    map[*V]int // oversized regions of this generation
	nbig   uint64
	live   int
}

// New returns an arena whose chunks hold batch elements. A batch <= 0 uses
// the default.
func New[V any](batch int) *T[V] {
	return &T[V]{batch: batch}
}

func (a *T[V]) Size() uint64 {
	return 0 +
		/* batch  */ 8 +
		/* gen    */ 8 +
		/* chunks */ 24 + uint64(len(a.chunks))*(24+uint64(a.batchSize())*sizeof.Elem[V]()) +
		/* off    */ 8 +
		/* big    */ 8 + uint64(len(a.big))*16 + a.nbig*sizeof.Elem[V]() +
		/* nbig   */ 8 +
		/* live   */ 8 +
		0
}

// Allocated is the number of elements in regions that have not been freed.
func (a *T[V]) Allocated() int { return a.live }

// Chunks is the number of chunks in the current generation.
func (a *T[V]) Chunks() int { return len(a.chunks) }

// Generation counts the calls to Reset.
func (a *T[V]) Generation() uint64 { return a.gen }

func (a *T[V]) batchSize() int {
	if a.batch <= 0 {
		return lBatch
	}
	return a.batch
}

// Reset starts a new generation. Chunks of the old generation are retired,
// not reused, so regions handed out before the Reset never alias later ones.
// Freeing or resizing an old region is ignored by the accounting.
func (a *T[V]) Reset() {
	a.gen++
	a.chunks, a.off = nil, 0
	a.big, a.nbig = nil, 0
	a.live = 0
}

func (a *T[V]) Alloc(n int) ([]V, error) {
	return a.carve(n)
}

func (a *T[V]) AllocZeroed(n int) ([]V, error) {
	// chunks come from make, so carved regions are already zero
	return a.carve(n)
}

func (a *T[V]) Realloc(x []V, n int) ([]V, error) {
	if _, err := alloc.Bytes[V](n); err != nil {
		return nil, err
	}
	if n == 0 {
		a.Free(x)
		return nil, nil
	}

	if start, ok := a.tail(x); ok && start+n <= a.batchSize() {
		chunk := a.chunks[len(a.chunks)-1]
		a.live += n - cap(x)
		a.off = start + n
		return chunk[start:a.off:a.off], nil
	}

	nx, err := a.carve(n)
	if err != nil {
		return nil, err
	}
	copy(nx, x)
	a.Free(x)
	return nx, nil
}

// Free returns x to the arena. Regions from an earlier generation, or from
// another allocator, are ignored.
func (a *T[V]) Free(x []V) {
	if cap(x) == 0 {
		return
	}
	if n, ok := a.big[unsafe.SliceData(x)]; ok {
		delete(a.big, unsafe.SliceData(x))
		a.live -= n
		return
	}
	i, start, ok := a.find(x)
	if !ok {
		return
	}
	a.live -= cap(x)
	if i == len(a.chunks)-1 && start+cap(x) == a.off {
		a.off = start
	}
}

func (a *T[V]) carve(n int) ([]V, error) {
	if _, err := alloc.Bytes[V](n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	b := a.batchSize()
	if n > b {
		x := make([]V, n)
		if a.big == nil {
			a.big = make(map[*V]int)
		}
		a.big[unsafe.SliceData(x)] = n
		a.nbig += uint64(n)
		a.live += n
		return x, nil
	}
	if len(a.chunks) == 0 || a.off+n > b {
		a.next()
	}

	x := a.chunks[len(a.chunks)-1][a.off : a.off+n : a.off+n]
	a.off += n
	a.live += n
	return x, nil
}

//go:noinline
func (a *T[V]) next() {
	a.chunks = append(a.chunks, make([]V, a.batchSize()))
	a.off = 0
}

// find locates x in a chunk of the current generation, searching from the
// newest chunk.
func (a *T[V]) find(x []V) (i, start int, ok bool) {
	size := unsafe.Sizeof(*new(V))
	if size == 0 || cap(x) == 0 {
		return 0, 0, false
	}
	p := uintptr(unsafe.Pointer(unsafe.SliceData(x)))
	for i = len(a.chunks) - 1; i >= 0; i-- {
		base := uintptr(unsafe.Pointer(unsafe.SliceData(a.chunks[i])))
		if p >= base && p < base+uintptr(len(a.chunks[i]))*size {
			return i, int((p - base) / size), true
		}
	}
	return 0, 0, false
}

// tail reports if x is the most recently carved region of the current chunk
// and where it starts.
func (a *T[V]) tail(x []V) (int, bool) {
	i, start, ok := a.find(x)
	if !ok || i != len(a.chunks)-1 || start+cap(x) != a.off {
		return 0, false
	}
	return start, true
}
