// Package message cleans raw chunks read from a client connection
// into single-line chat payloads.
package message

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Builder - implements io.Writer interface to build message body from byte parts.
// An incomplete UTF-8 sequence at the end of written data is held until the next Write.
type Builder struct {
	tail []byte
	str  strings.Builder
	prev rune
}

func (b *Builder) Write(p []byte) (n int, err error) {
	data := p
	if len(b.tail) > 0 {
		data = append(b.tail, p...)
		b.tail = nil
	}
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(data) {
				b.tail = append([]byte(nil), data...)
				break
			}
			// drop invalid byte
			data = data[1:]
			continue
		}
		data = data[size:]
		switch {
		default:
			b.str.WriteRune(r)
		case isEOL(r):
			// replace continuous EOL with single space
			if !isEOL(b.prev) {
				b.str.WriteByte(' ')
			}
		case unicode.IsSpace(r):
			b.str.WriteByte(' ')
		case unicode.IsControl(r):
			// drop
		}
		b.prev = r
	}
	return len(p), nil
}

func isEOL(r rune) bool {
	return r == '\n' || r == '\r'
}

// Len - returns length (in bytes) of ready string.
func (b *Builder) Len() int {
	return b.str.Len()
}

// Pending - returns number of bytes held back as an incomplete rune.
func (b *Builder) Pending() int {
	return len(b.tail)
}

// Flush - returns built string without surrounding spaces and resets it.
// Pending bytes are kept for the next Write.
func (b *Builder) Flush() string {
	defer func() {
		b.str.Reset()
		b.prev = 0
	}()
	return strings.TrimSpace(b.str.String())
}
