package chat

import (
	"io"
	"sync"
)

// Display - operator console output. Every line is written under the lock,
// so lines of concurrent clients are never mixed.
type Display struct {
	mu sync.Mutex
	w  io.Writer
}

// NewDisplay - builds display over w.
func NewDisplay(w io.Writer) *Display {
	if w == nil {
		w = io.Discard
	}
	return &Display{w: w}
}

// Println - writes line and EOL in one call.
func (d *Display) Println(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	io.WriteString(d.w, line+"\n")
}
