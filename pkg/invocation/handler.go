// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"fmt"
	"io"
	"sync"
)

type (
	// OutputHandler consumes process output one line at a time, in the order
	// the lines were received on its stream. Line terminators are stripped.
	OutputHandler interface {
		ConsumeLine(line string)
	}

	// OutputHandlerFunc adapts a function to the OutputHandler interface.
	OutputHandlerFunc func(line string)

	writerHandler struct {
		mu sync.Mutex
		w  io.Writer
	}

	nopHandler struct{}
)

// ConsumeLine calls f(line).
func (f OutputHandlerFunc) ConsumeLine(line string) { f(line) }

// WriterHandler returns a handler that prints every line, newline-terminated, to w.
// Writes are serialized so one writer can back both the output and error handler.
func WriterHandler(w io.Writer) OutputHandler {
	return &writerHandler{w: w}
}

func (h *writerHandler) ConsumeLine(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = fmt.Fprintln(h.w, line)
}

// NopHandler returns a handler that discards every line.
func NopHandler() OutputHandler { return nopHandler{} }

func (nopHandler) ConsumeLine(string) {}
