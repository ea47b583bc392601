package mdterm

import "io"

// Sink is the byte-stream writer the renderer writes to. The renderer
// never reads from it and never closes it (spec §6).
type Sink interface {
	io.Writer
	Flush() error
}

// flushableWriter adapts a plain io.Writer into a Sink whose Flush is a
// no-op, for callers that hand the renderer an os.File or bytes.Buffer
// directly instead of something with its own buffering to flush.
type flushableWriter struct {
	io.Writer
}

func (flushableWriter) Flush() error { return nil }

// asSink adapts w to a Sink, using w's own Flush method when it has one
// (e.g. *bufio.Writer) and otherwise treating flush as a no-op.
func asSink(w io.Writer) Sink {
	if s, ok := w.(Sink); ok {
		return s
	}
	return flushableWriter{w}
}
