package alloc

import (
	"errors"
	"math"
	"testing"

	"github.com/zeebo/assert"
)

func TestBytes(t *testing.T) {
	n, err := Bytes[uint32](10)
	assert.NoError(t, err)
	assert.Equal(t, n, uint64(40))

	_, err = Bytes[uint32](-1)
	assert.That(t, errors.Is(err, ErrNegative))

	_, err = Bytes[uint64](math.MaxInt/4)
	assert.That(t, errors.Is(err, ErrOverflow))

	n, err = Bytes[[2]uint64](0)
	assert.NoError(t, err)
	assert.Equal(t, n, uint64(0))
}

func TestGo(t *testing.T) {
	var a Go[int]

	x, err := a.AllocZeroed(4)
	assert.NoError(t, err)
	assert.Equal(t, len(x), 4)
	assert.Equal(t, cap(x), 4)
	assert.Equal(t, x, []int{0, 0, 0, 0})

	x[0], x[3] = 1, 4
	y, err := a.Realloc(x, 6)
	assert.NoError(t, err)
	assert.Equal(t, len(y), 6)
	assert.Equal(t, y[:4], []int{1, 0, 0, 4})

	y, err = a.Realloc(y, 2)
	assert.NoError(t, err)
	assert.Equal(t, y, []int{1, 0})

	y, err = a.Realloc(y, 0)
	assert.NoError(t, err)
	assert.That(t, y == nil)

	_, err = a.Alloc(math.MaxInt / 2)
	assert.That(t, errors.Is(err, ErrOverflow))
}

func TestLimit(t *testing.T) {
	l := NewLimit[uint32](nil, 40)

	x, err := l.Alloc(5)
	assert.NoError(t, err)
	assert.Equal(t, l.InUse(), uint64(20))

	_, err = l.AllocZeroed(6)
	assert.That(t, errors.Is(err, ErrExhausted))
	assert.Equal(t, l.InUse(), uint64(20))

	// growing in place of x only needs the difference
	x, err = l.Realloc(x, 10)
	assert.NoError(t, err)
	assert.Equal(t, l.InUse(), uint64(40))

	_, err = l.Realloc(x, 11)
	assert.That(t, errors.Is(err, ErrExhausted))
	assert.Equal(t, len(x), 10)

	l.Free(x)
	assert.Equal(t, l.InUse(), uint64(0))

	_, err = l.Alloc(11)
	assert.That(t, errors.Is(err, ErrExhausted))
}

func TestLimitForeignFree(t *testing.T) {
	l := NewLimit[uint32](nil, 40)

	x, err := l.Alloc(2)
	assert.NoError(t, err)

	l.Free(make([]uint32, 10))
	assert.Equal(t, l.InUse(), uint64(0))

	l.Free(x)
	l.Free(x)
	assert.Equal(t, l.InUse(), uint64(0))

	// the budget is still usable
	_, err = l.Alloc(10)
	assert.NoError(t, err)
	assert.Equal(t, l.InUse(), uint64(40))

	_, err = l.Realloc(make([]uint32, 20), 1)
	assert.NoError(t, err)
	assert.Equal(t, l.InUse(), uint64(4))
}
