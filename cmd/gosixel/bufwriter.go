package main

import (
	"bufio"
	"io"
)

// bufWriter wraps the output sink in a bufio.Writer, per spec.md §5: the
// core pipeline issues many small writes and buffering is the caller's job.
type bufWriter struct {
	*bufio.Writer
}

func newBufWriter(w io.Writer) *bufWriter {
	return &bufWriter{Writer: bufio.NewWriter(w)}
}

func (b *bufWriter) flush() {
	b.Writer.Flush()
}
