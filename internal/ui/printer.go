package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer writes user-visible progress and failure messages. It satisfies
// both install.UI and browse.Printer.
type Printer struct {
	Out io.Writer
}

// NewPrinter creates a Printer writing to stderr, where the menus render.
func NewPrinter() *Printer {
	return &Printer{Out: os.Stderr}
}

// Print formats and writes one message.
func (p *Printer) Print(format string, args ...any) {
	out := p.Out
	if out == nil {
		out = os.Stderr
	}
	_, _ = fmt.Fprintf(out, format, args...)
}
