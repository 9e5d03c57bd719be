package vec

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/zeebo/errs/v2"
)

// Error classes. Match them with errors.Is.
const (
	InvalidArgument   = errs.Tag("invalid argument")
	InvalidState      = errs.Tag("invalid state")
	OutOfBounds       = errs.Tag("out of bounds")
	AllocationFailure = errs.Tag("allocation failure")
)

var callback atomic.Pointer[func(msg string)]

// SetErrorCallback installs fn as the process-wide error callback and
// returns the previous one. The callback runs synchronously with the message
// of every error before the failing operation returns. A nil fn disables it.
func SetErrorCallback(fn func(msg string)) (prev func(msg string)) {
	var p *func(msg string)
	if fn != nil {
		p = &fn
	}
	if old := callback.Swap(p); old != nil {
		prev = *old
	}
	return prev
}

// WriterSink returns an error callback that writes one line per error to w.
func WriterSink(w io.Writer) func(msg string) {
	return func(msg string) {
		_, _ = fmt.Fprintf(w, "vec error: %s\n", msg)
	}
}

func report(err error) error {
	if fn := callback.Load(); fn != nil {
		(*fn)(err.Error())
	}
	return err
}
