package testhelp

import (
	"github.com/zeebo/mwc"

	"github.com/histdb/dynbuf/num"
)

// U32s returns n random values.
func U32s(rng *mwc.T, n int) []num.U32 {
	out := make([]num.U32, n)
	for i := range out {
		out[i] = num.U32(rng.Uint32())
	}
	return out
}

// Len returns a random length in [0, max).
func Len(rng *mwc.T, max int) int {
	return int(rng.Uint64n(uint64(max)))
}
