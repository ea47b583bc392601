package mdterm

import (
	"bytes"
	"io"
	"log/slog"
)

// RenderString renders a complete Markdown string to ANSI, per spec §1's
// note that batch use is just the streaming core fed all at once. It is a
// convenience wrapper, not a separate code path.
func RenderString(input string, roOpts ...RenderOption) (string, error) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, DefaultOptions(), nil, roOpts...)
	if err := r.WriteString(input); err != nil {
		return "", err
	}
	if err := r.Complete(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderBytes is RenderString for a byte slice. Since the whole input is
// already in memory, it is checked with ValidateInput first, per that
// function's documented role as the up-front guard a batch caller uses
// before handing untrusted bytes to a Renderer.
func RenderBytes(input []byte, roOpts ...RenderOption) ([]byte, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	r := NewRenderer(&buf, DefaultOptions(), nil, roOpts...)
	if _, err := r.Write(input); err != nil {
		return nil, err
	}
	if err := r.Complete(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderReader streams src through a Renderer writing to dst, returning
// once src is exhausted and the renderer has completed.
func RenderReader(dst io.Writer, src io.Reader, logger *slog.Logger, roOpts ...RenderOption) error {
	r := NewRenderer(dst, DefaultOptions(), logger, roOpts...)
	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := r.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return r.Complete()
}

// Write implements io.Writer over WriteString, so a Renderer can be used
// as the target of io.Copy and similar stdlib plumbing.
func (r *Renderer) Write(p []byte) (int, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if err := r.WriteString(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ChunkedReader wraps an io.Reader and returns at most chunkSize bytes per
// Read call, splitting a single buffer into many small reads. It exists so
// tests (and the CLI's --simulate-delay-ms mode) can exercise the renderer
// against input arriving in arbitrary fragments rather than whole lines,
// grounded on the teacher's slowReader (cmd/mdf/main.go).
type ChunkedReader struct {
	data      []byte
	pos       int
	chunkSize int
}

// NewChunkedReader returns a ChunkedReader over data that yields at most
// chunkSize bytes per Read. A non-positive chunkSize is treated as 1.
func NewChunkedReader(data []byte, chunkSize int) *ChunkedReader {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	return &ChunkedReader{data: data, chunkSize: chunkSize}
}

func (c *ChunkedReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	n := c.chunkSize
	if n > len(p) {
		n = len(p)
	}
	remaining := len(c.data) - c.pos
	if n > remaining {
		n = remaining
	}
	copy(p, c.data[c.pos:c.pos+n])
	c.pos += n
	return n, nil
}
