package tmpl

import (
	"bytes"
	"io"
)

// Printer is a stack of output targets. The bottom of the stack is the
// writer it was created with; Capture pushes a buffer on top for the
// duration of a callback.
type Printer struct {
	base  io.Writer
	stack []*bytes.Buffer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = io.Discard
	}

	return &Printer{base: w}
}

// Write writes to the current target.
func (p *Printer) Write(b []byte) (int, error) {
	if n := len(p.stack); n > 0 {
		return p.stack[n-1].Write(b)
	}

	return p.base.Write(b)
}

// WriteString writes s to the current target.
func (p *Printer) WriteString(s string) error {
	_, err := io.WriteString(p, s)

	return err
}

// Depth returns the number of active capture regions.
func (p *Printer) Depth() int {
	return len(p.stack)
}

// Capture runs fn with a fresh buffer as the current target and returns
// what fn wrote. The previous target is restored on every exit path,
// including a panic in fn.
func (p *Printer) Capture(fn func() error) (string, error) {
	buf := &bytes.Buffer{}
	depth := len(p.stack)

	p.stack = append(p.stack, buf)
	defer func() {
		p.stack = p.stack[:depth]
	}()

	err := fn()

	return buf.String(), err
}
