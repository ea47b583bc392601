package mdterm

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

// wrapStyled splits a fully inline-formatted text fragment (which may
// contain ANSI SGR/OSC-8 escape sequences) into lines of visible width at
// most width, per spec §4.H. ANSI escapes advance the scan position but
// never the visible column count.
func wrapStyled(text string, width int) []string {
	if width <= 0 {
		width = 80
	}
	if text == "" {
		return []string{""}
	}

	var lines []string
	lineStart := 0
	col := 0
	lastSpaceIdx := -1
	lastSpaceCol := 0

	i := 0
	n := len(text)
	for i < n {
		if text[i] == 0x1b {
			j := scanEscapeSequence(text, i)
			i = j
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			col++
			continue
		}
		rw := runewidth.RuneWidth(r)
		if col+rw > width {
			if lastSpaceIdx >= 0 {
				lines = append(lines, text[lineStart:lastSpaceIdx])
				lineStart = lastSpaceIdx + 1
				col -= lastSpaceCol
				lastSpaceIdx = -1
			} else if i > lineStart {
				lines = append(lines, text[lineStart:i])
				lineStart = i
				col = 0
			}
		}
		if r == ' ' {
			lastSpaceIdx = i
			lastSpaceCol = col + 1
		}
		col += rw
		i += size
	}
	lines = append(lines, text[lineStart:])
	return lines
}

// scanEscapeSequence returns the index just past the ANSI escape sequence
// beginning at text[i] (which must be ESC, 0x1b). It recognizes CSI (SGR)
// sequences "ESC [ params letter" and OSC-8 hyperlink sequences terminated
// by BEL or "ESC \".
func scanEscapeSequence(text string, i int) int {
	n := len(text)
	if i+1 >= n {
		return i + 1
	}
	switch text[i+1] {
	case '[':
		j := i + 2
		for j < n {
			c := text[j]
			if c >= 0x40 && c <= 0x7e {
				return j + 1
			}
			j++
		}
		return j
	case ']':
		j := i + 2
		for j < n {
			if text[j] == '\x07' {
				return j + 1
			}
			if text[j] == 0x1b && j+1 < n && text[j+1] == '\\' {
				return j + 2
			}
			j++
		}
		return j
	default:
		return i + 2
	}
}

// visibleWidth reports the printable column width of s. OSC-8 hyperlink
// wrapping (which reflow/ansi does not know about) is stripped first;
// the teacher's own printable-width accounting, github.com/muesli/
// reflow/ansi.PrintableRuneWidth, handles the remaining SGR sequences.
func visibleWidth(s string) int {
	return ansi.PrintableRuneWidth(stripOSC8(s))
}

// stripOSC8 removes OSC-8 hyperlink wrapping ("ESC ] 8 ;; url BEL ... ESC
// ] 8 ;; BEL") from s, leaving any CSI/SGR sequences untouched.
func stripOSC8(s string) string {
	if !strings.Contains(s, osc8Start) {
		return s
	}
	var b strings.Builder
	i := 0
	n := len(s)
	for i < n {
		if s[i] == 0x1b && i+1 < n && s[i+1] == ']' {
			j := scanEscapeSequence(s, i)
			// Keep OSC-8's payload (the visible link text between the
			// two OSC sequences), drop only the wrapping escapes.
			i = j
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// wrapParagraph joins the wrapped lines of a styled fragment with newlines,
// matching the teacher's ansi.PrintableRuneWidth-based width accounting but
// applied to the spec's discrete paragraph-finalization step rather than a
// continuous token stream.
func wrapParagraph(text string, width int) string {
	return strings.Join(wrapStyled(text, width), "\n")
}
