package buffer

//
// read cursor over a byte slice
//

type T struct {
	base []byte
	pos  int
}

func OfLen(n []byte) T {
	return T{base: n[:len(n):len(n)]}
}

func (buf T) Valid() bool {
	return buf.pos < len(buf.base)
}

func (buf T) Pos() int {
	return buf.pos
}

func (buf T) Cap() int {
	return len(buf.base)
}

func (buf T) Reset() T {
	buf.pos = 0
	return buf
}

func (buf T) Prefix() []byte {
	return buf.base[:buf.pos]
}

func (buf T) Suffix() []byte {
	return buf.base[buf.pos:]
}

func (buf T) Remaining() int {
	return len(buf.base) - buf.pos
}

func (buf T) Front() byte {
	return buf.base[buf.pos]
}

func (buf T) Front2() *[2]byte {
	return (*[2]byte)(buf.base[buf.pos:])
}

func (buf T) Front4() *[4]byte {
	return (*[4]byte)(buf.base[buf.pos:])
}

func (buf T) Front8() *[8]byte {
	return (*[8]byte)(buf.base[buf.pos:])
}

func (buf T) FrontN(n int) []byte {
	return buf.base[buf.pos : buf.pos+n : buf.pos+n]
}

func (buf T) Advance(n int) T {
	buf.pos += n
	return buf
}
