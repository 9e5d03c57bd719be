package rwutils

import (
	"encoding/binary"
	"io"

	"github.com/zeebo/errs/v2"

	"github.com/histdb/dynbuf/buffer"
)

var le = binary.LittleEndian

// RW is satisfied by pointers to values that know how to serialize
// themselves.
type RW[V any] interface {
	*V
	AppendTo(w *W)
	ReadFrom(r *R)
}

type W struct {
	buf []byte
	err error
	w   io.Writer
}

func (w *W) Init(wr io.Writer, buf []byte) {
	*w = W{
		buf: buf[:0],
		w:   wr,
	}
}

func (w *W) Done() error {
	w.flush()
	return w.err
}

func (w *W) Uint64(x uint64) {
	if len(w.buf)+8 > cap(w.buf) {
		w.flush()
	}
	w.buf = le.AppendUint64(w.buf, x)
}

func (w *W) Uint32(x uint32) {
	if len(w.buf)+4 > cap(w.buf) {
		w.flush()
	}
	w.buf = le.AppendUint32(w.buf, x)
}

func (w *W) Uint16(x uint16) {
	if len(w.buf)+2 > cap(w.buf) {
		w.flush()
	}
	w.buf = le.AppendUint16(w.buf, x)
}

func (w *W) Uint8(x uint8) {
	if len(w.buf)+1 > cap(w.buf) {
		w.flush()
	}
	w.buf = append(w.buf, x)
}

func (w *W) Bytes(buf []byte) {
	if len(w.buf)+len(buf) > cap(w.buf) {
		w.flush()
		if len(buf) > cap(w.buf) {
			if w.err == nil {
				_, w.err = w.w.Write(buf)
			}
			return
		}
	}
	w.buf = append(w.buf, buf...)
}

//go:noinline
func (w *W) flush() {
	if w.err == nil && len(w.buf) > 0 {
		_, w.err = w.w.Write(w.buf)
	}
	w.buf = w.buf[:0]
}

type R struct {
	buf buffer.T
	err error
}

func (r *R) Init(buf []byte) {
	*r = R{
		buf: buffer.OfLen(buf),
	}
}

func (r *R) Done() ([]byte, error) {
	return r.buf.Suffix(), r.err
}

func (r *R) Err() error { return r.err }

func (r *R) Remaining() int { return r.buf.Remaining() }

// Invalid marks the reader as failed with err. Only the first error is kept.
func (r *R) Invalid(err error) {
	if r.err == nil {
		r.err = err
	}
	r.buf = r.buf.Advance(r.buf.Remaining())
}

func (r *R) Uint64() (x uint64) {
	if r.err == nil {
		if r.buf.Remaining() >= 8 {
			x = le.Uint64(r.buf.Front8()[:])
			r.buf = r.buf.Advance(8)
		} else {
			r.bad(8)
		}
	}
	return
}

func (r *R) Uint32() (x uint32) {
	if r.err == nil {
		if r.buf.Remaining() >= 4 {
			x = le.Uint32(r.buf.Front4()[:])
			r.buf = r.buf.Advance(4)
		} else {
			r.bad(4)
		}
	}
	return
}

func (r *R) Uint16() (x uint16) {
	if r.err == nil {
		if r.buf.Remaining() >= 2 {
			x = le.Uint16(r.buf.Front2()[:])
			r.buf = r.buf.Advance(2)
		} else {
			r.bad(2)
		}
	}
	return
}

func (r *R) Uint8() (x uint8) {
	if r.err == nil {
		if r.buf.Remaining() >= 1 {
			x = r.buf.Front()
			r.buf = r.buf.Advance(1)
		} else {
			r.bad(1)
		}
	}
	return
}

func (r *R) Bytes(n int) (x []byte) {
	if r.err == nil {
		if n >= 0 && r.buf.Remaining() >= n {
			x = r.buf.FrontN(n)
			r.buf = r.buf.Advance(n)
		} else {
			r.bad(n)
		}
	}
	return
}

func (r *R) bad(n int) {
	r.Invalid(errs.Errorf("short buffer: needed %d bytes", n))
}
