package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Flush(test *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"empty", []byte{}, ""},
		{"line", []byte("hi\n"), "hi"},
		{"crlf", []byte("hello\r\n"), "hello"},
		{"coalesced lines", []byte("one\ntwo\n\n"), "one two"},
		{"tabs", []byte("a\tb"), "a b"},
		{"control", []byte("be\x07ll\x00"), "bell"},
		{"invalid utf-8", []byte{'o', 0xff, 'k'}, "ok"},
		{"unicode", []byte("Hello, 世界!"), "Hello, 世界!"},
		{"only eol", []byte("\r\n"), ""},
	}

	for _, c := range cases {
		builder := Builder{}
		n, err := builder.Write(c.data)
		assert.NoError(test, err, c.name)
		assert.Equal(test, len(c.data), n, c.name)
		assert.Equal(test, c.expected, builder.Flush(), c.name)
		assert.Zero(test, builder.Len(), c.name)
	}
}

func TestBuilder_SplitRune(test *testing.T) {
	builder := Builder{}
	cpoint := []byte("⌘") // []byte{226, 140, 152}
	builder.Write(append([]byte("cmd "), cpoint[:2]...))
	assert.Equal(test, 2, builder.Pending())
	assert.Equal(test, "cmd", builder.Flush())

	// Builder remembers previous bytes
	builder.Write(cpoint[2:])
	assert.Zero(test, builder.Pending())
	assert.Equal(test, "⌘", builder.Flush())
}
