package vec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/mwc"

	"github.com/histdb/dynbuf/num"
	"github.com/histdb/dynbuf/rwutils"
	"github.com/histdb/dynbuf/testhelp"
)

func serialize[V any, RWV rwutils.RW[V]](t *testing.T, v *T[V]) []byte {
	var out bytes.Buffer
	var w rwutils.W
	w.Init(&out, make([]byte, 0, 64))
	AppendTo[V, RWV](v, &w)
	assert.NoError(t, w.Done())
	return out.Bytes()
}

func TestSerialize(t *testing.T) {
	rng := mwc.Rand()

	v := mustNew[num.U32](t, nil, 0)
	for _, x := range testhelp.U32s(rng, 100) {
		assert.NoError(t, v.Push(x))
	}
	data := append(serialize(t, v), 1, 2, 3)

	var r rwutils.R
	r.Init(data)

	v2 := mustNew[num.U32](t, nil, 5)
	ReadFrom(v2, &r)

	rem, err := r.Done()
	assert.NoError(t, err)
	assert.Equal(t, rem, []byte{1, 2, 3})
	assert.That(t, Equal(v2, v))
	assert.Equal(t, v2.Cap(), 100)
}

func TestSerializeEmpty(t *testing.T) {
	v := mustNew[num.U64](t, nil, 0)
	data := serialize(t, v)
	assert.Equal(t, len(data), 8)

	var r rwutils.R
	r.Init(data)
	v2 := mustNew[num.U64](t, nil, 3)
	ReadFrom(v2, &r)
	_, err := r.Done()
	assert.NoError(t, err)
	assert.Equal(t, v2.Len(), 0)
	assert.Equal(t, v2.Cap(), 0)
}

func TestReadFromInvalid(t *testing.T) {
	v := mustNew[num.U16](t, nil, 0)
	for i := 0; i < 10; i++ {
		assert.NoError(t, v.Push(num.U16(i)))
	}
	data := serialize(t, v)

	t.Run("Truncated", func(t *testing.T) {
		dst := mustNew[num.U16](t, nil, 2)
		assert.NoError(t, dst.Set(1, 9))

		var r rwutils.R
		r.Init(data[:len(data)-1])
		ReadFrom(dst, &r)

		_, err := r.Done()
		assert.Error(t, err)
		assert.Equal(t, dst.Slice(), []num.U16{0, 9})
	})

	t.Run("TooLong", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[7] = 0x7f

		dst := mustNew[num.U16](t, nil, 0)
		var r rwutils.R
		r.Init(bad)
		ReadFrom(dst, &r)

		_, err := r.Done()
		assert.That(t, errors.Is(err, InvalidArgument))
		assert.Equal(t, dst.Len(), 0)
	})

	t.Run("AllocationFailure", func(t *testing.T) {
		f := &testhelp.FailAfter[num.U16]{N: 1}
		dst := mustNew[num.U16](t, f, 1)

		var r rwutils.R
		r.Init(data)
		ReadFrom(dst, &r)

		_, err := r.Done()
		assert.That(t, errors.Is(err, AllocationFailure))
		assert.Equal(t, dst.Len(), 1)
	})

	t.Run("Released", func(t *testing.T) {
		dst := mustNew[num.U16](t, nil, 1)
		dst.Release()

		var r rwutils.R
		r.Init(data)
		ReadFrom(dst, &r)

		_, err := r.Done()
		assert.That(t, errors.Is(err, InvalidState))
	})
}

func TestDigest(t *testing.T) {
	rng := mwc.Rand()
	vals := testhelp.U32s(rng, 50)

	a := mustNew[num.U32](t, nil, 0)
	b := mustNew[num.U32](t, nil, 0)
	assert.NoError(t, b.Reserve(200))
	for _, x := range vals {
		assert.NoError(t, a.Push(x))
		assert.NoError(t, b.Push(x))
	}

	// capacity does not matter
	assert.Equal(t, Digest(a), Digest(b))

	c := mustNew[num.U32](t, nil, 0)
	assert.NoError(t, c.CopyFrom(a))
	assert.Equal(t, Digest(c), Digest(a))

	assert.NoError(t, c.Set(0, vals[0]+1))
	assert.That(t, Digest(c) != Digest(a))

	// a shorter prefix is a different buffer
	assert.NoError(t, b.Resize(49))
	assert.That(t, Digest(b) != Digest(a))
}
