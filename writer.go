package mdterm

import "unicode/utf8"

// Writer is the external interface of spec §6: callers push input as it
// arrives and the Renderer emits formatted output as early as the grammar
// permits.
type Writer interface {
	WriteChar(c rune) error
	WriteString(s string) error
	WriteLine(s string) error
	WriteNewline() error
	Flush() error
	Complete() error
}

var _ Writer = (*Renderer)(nil)

// WriteChar implements component D (the line buffer) one rune at a time.
// \n ends a logical line — the buffered content, with any trailing \r
// already dropped, is forwarded to the block state machine and the buffer
// is cleared. \r alone is never stored; if it is not immediately followed
// by \n it still terminates the line it closes (CR-only line endings),
// matching spec §8's CRLF/LF/CR-only equivalence while honoring §4.D's
// literal "\r alone is discarded" rule for what lands in the buffer.
func (r *Renderer) WriteChar(c rune) error {
	if r.closed {
		return ErrClosed
	}
	return r.writeCharLocked(c)
}

func (r *Renderer) writeCharLocked(c rune) error {
	if r.pendingCR() {
		r.clearPendingCR()
		if c != '\n' {
			if err := r.flushLine(); err != nil {
				return err
			}
		}
	}
	switch c {
	case '\n':
		return r.flushLine()
	case '\r':
		r.setPendingCR()
		return nil
	default:
		if isControlRune(c) {
			return nil
		}
		r.rawLine.WriteRune(c)
		return nil
	}
}

func (r *Renderer) pendingCR() bool  { return r.pendingCRFlag }
func (r *Renderer) setPendingCR()    { r.pendingCRFlag = true }
func (r *Renderer) clearPendingCR()  { r.pendingCRFlag = false }

func (r *Renderer) flushLine() error {
	line := r.rawLine.String()
	r.rawLine.Reset()
	return r.processLine(line)
}

// WriteString implements write_string(s).
func (r *Renderer) WriteString(s string) error {
	if r.closed {
		return ErrClosed
	}
	for _, c := range s {
		if err := r.writeCharLocked(c); err != nil {
			return err
		}
	}
	return nil
}

// WriteLine implements write_line(s): write_string(s) followed by a
// newline.
func (r *Renderer) WriteLine(s string) error {
	if err := r.WriteString(s); err != nil {
		return err
	}
	return r.WriteChar('\n')
}

// WriteNewline implements the zero-argument write_line().
func (r *Renderer) WriteNewline() error {
	return r.WriteChar('\n')
}

// Flush forces any output already written to the sink's own buffering out
// to its underlying destination. It never alters the in-progress block
// state and never changes the eventual byte-for-byte output (spec §8
// round-trip property).
func (r *Renderer) Flush() error {
	if r.closed {
		return ErrClosed
	}
	return r.sink.Flush()
}

// Complete flushes any residual partial line, finalizes the current
// block, and flushes the sink. It is idempotent: a second call is a
// no-op, matching spec §8's "invoking complete() twice is equivalent to
// invoking it once."
func (r *Renderer) Complete() error {
	if r.closed {
		return nil
	}
	if r.rawLine.Len() > 0 || r.pendingCRFlag {
		line := r.rawLine.String()
		r.rawLine.Reset()
		r.pendingCRFlag = false
		if err := r.processLine(line); err != nil {
			r.closed = true
			return err
		}
	}
	if r.pendingTableHeader != nil {
		header := r.pendingTableHeader
		r.pendingTableHeader = nil
		if err := r.dispatch(lineClass{kind: blockParagraph, text: joinTableCells(header)}); err != nil {
			r.closed = true
			return err
		}
	}
	if err := r.finalizeCurrentBlock(); err != nil {
		r.closed = true
		return err
	}
	r.closed = true
	return r.sink.Flush()
}

// runeLen reports the byte length of the first rune in s, or 0 for an
// empty string. Nothing in the package calls it.
func runeLen(s string) int {
	if s == "" {
		return 0
	}
	_, size := utf8.DecodeRuneInString(s)
	return size
}
