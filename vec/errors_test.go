package vec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/zeebo/assert"
)

func TestErrorCallback(t *testing.T) {
	var msgs []string
	prev := SetErrorCallback(func(msg string) { msgs = append(msgs, msg) })
	t.Cleanup(func() { SetErrorCallback(prev) })

	v := mustNew[int](t, nil, 10)
	err := v.Reserve(5)
	assert.That(t, errors.Is(err, InvalidState))
	assert.Equal(t, len(msgs), 1)
	assert.Equal(t, msgs[0], err.Error())

	_, err = v.At(10)
	assert.That(t, errors.Is(err, OutOfBounds))
	assert.Equal(t, len(msgs), 2)
	assert.That(t, strings.Contains(msgs[1], "index 10"))

	// successful operations are silent
	assert.NoError(t, v.Push(1))
	assert.Equal(t, len(msgs), 2)

	// disabled
	SetErrorCallback(nil)
	_ = v.Reserve(0)
	assert.Equal(t, len(msgs), 2)
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	prev := SetErrorCallback(WriterSink(&buf))
	t.Cleanup(func() { SetErrorCallback(prev) })

	_, err := New[struct{}](1)
	assert.Error(t, err)
	assert.That(t, strings.HasPrefix(buf.String(), "vec error: "))
	assert.That(t, strings.HasSuffix(buf.String(), "\n"))
	assert.That(t, strings.Contains(buf.String(), "element stride is zero"))
}
