package mdterm

import (
	"bytes"
	"strings"
	"testing"
)

func TestSimpleParagraphWraps(t *testing.T) {
	input := "one two three four five six seven eight nine ten eleven twelve\n"
	got := renderPlain(t, input, WithWidth(20))
	for _, line := range strings.Split(strings.TrimRight(got, "\n"), "\n") {
		if visibleWidth(line) > 20 {
			t.Fatalf("line exceeds width 20: %q", line)
		}
	}
	if strings.Contains(got, "  ") {
		t.Fatalf("unexpected double space in wrapped output: %q", got)
	}
}

func TestParagraphBlankParagraph(t *testing.T) {
	input := "first paragraph\n\nsecond paragraph\n"
	got := renderPlain(t, input, WithWidth(80))
	want := "first paragraph\n\nsecond paragraph\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestIndentedCodeAfterParagraph(t *testing.T) {
	input := "a paragraph\n\n    code line one\n    code line two\n"
	got := renderPlain(t, input, WithWidth(80))
	if !strings.Contains(got, "code line one\ncode line two") {
		t.Fatalf("code lines not preserved verbatim: %q", got)
	}
}

func TestUnorderedTaskList(t *testing.T) {
	input := "- [ ] todo item\n- [x] done item\n- plain item\n"
	got := renderPlain(t, input)
	if !strings.Contains(got, "[ ] todo item") {
		t.Fatalf("unchecked marker missing: %q", got)
	}
	if !strings.Contains(got, "[x] done item") {
		t.Fatalf("checked marker missing: %q", got)
	}
	if !strings.Contains(got, "- plain item") {
		t.Fatalf("plain bullet missing: %q", got)
	}
}

func TestReferenceLinkResolutionHasNoBackPatching(t *testing.T) {
	// The definition arrives in a later block than the usage: since
	// resolution only ever consults definitions seen so far, this must
	// fall back to the literal source text, not a resolved link.
	usageFirst := "see [my site][ref] for more\n\n[ref]: https://example.com\n"
	got := renderPlain(t, usageFirst)
	if strings.Contains(got, "https://example.com") {
		t.Fatalf("reference link resolved against a definition that had not been seen yet: %q", got)
	}

	// The definition arrives before the usage, so it is in scope.
	definitionFirst := "[ref]: https://example.com\n\nsee [my site][ref] for more\n"
	got2 := renderPlain(t, definitionFirst)
	if !strings.Contains(got2, "my site (https://example.com)") {
		t.Fatalf("reference link not resolved when its definition precedes usage: %q", got2)
	}
}

func TestSimpleGFMTable(t *testing.T) {
	input := strings.Join([]string{
		"| Name | Count |",
		"| ---- | ----: |",
		"| a | 1 |",
		"| bb | 22 |",
		"",
	}, "\n")
	got := renderPlain(t, input)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header+separator+2 rows, got %d lines: %q", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "|") || !strings.HasSuffix(lines[0], "|") {
		t.Fatalf("header row not pipe-delimited: %q", lines[0])
	}
	if !strings.Contains(lines[1], "-") {
		t.Fatalf("separator row missing dashes: %q", lines[1])
	}
}

func TestNonSeparatorSecondLineRendersAsParagraph(t *testing.T) {
	// The second line holds letters, so it is not a separator row: no
	// table starts and both lines fall back to paragraph text.
	input := "| a | b |\n| not-a-separator |\n"
	got := renderPlain(t, input)
	if strings.Contains(got, tableRenderErrorPlaceholder) {
		t.Fatalf("a non-separator second line should not be treated as a table: %q", got)
	}
	if !strings.Contains(got, "a | b") || !strings.Contains(got, "not-a-separator") {
		t.Fatalf("expected both lines preserved as paragraph text, got %q", got)
	}
}

func TestBlockBoundaryClosesOpenStyles(t *testing.T) {
	input := "**unterminated bold\n\nnext paragraph\n"
	var buf bytes.Buffer
	r := NewRenderer(&buf, DefaultOptions(), nil, WithColors(true))
	if err := r.WriteString(input); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := r.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(r.styleStack) != 0 {
		t.Fatalf("style stack not empty at block boundary: %v", r.styleStack)
	}
}

func TestFlushIsIdempotentToOutput(t *testing.T) {
	input := "a paragraph of text\n\n- a list item\n"
	var withFlush, withoutFlush bytes.Buffer

	r1 := NewRenderer(&withFlush, DefaultOptions(), nil, WithColors(false))
	_ = r1.WriteString(input[:10])
	_ = r1.Flush()
	_ = r1.WriteString(input[10:])
	_ = r1.Flush()
	_ = r1.Complete()

	r2 := NewRenderer(&withoutFlush, DefaultOptions(), nil, WithColors(false))
	_ = r2.WriteString(input)
	_ = r2.Complete()

	if withFlush.String() != withoutFlush.String() {
		t.Fatalf("flush altered output:\nwith:    %q\nwithout: %q", withFlush.String(), withoutFlush.String())
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, DefaultOptions(), nil, WithColors(false))
	_ = r.WriteString("hello world\n")
	if err := r.Complete(); err != nil {
		t.Fatalf("first Complete: %v", err)
	}
	first := buf.String()
	if err := r.Complete(); err != nil {
		t.Fatalf("second Complete should not error: %v", err)
	}
	if buf.String() != first {
		t.Fatalf("second Complete changed output: %q -> %q", first, buf.String())
	}
}

func TestWriteAfterCompleteFails(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, DefaultOptions(), nil)
	_ = r.Complete()
	if err := r.WriteString("more"); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestCRLFAndLFEquivalence(t *testing.T) {
	lf := renderPlain(t, "line one\n\nline two\n")
	crlf := renderPlain(t, "line one\r\n\r\nline two\r\n")
	crOnly := renderPlain(t, "line one\r\rline two\r")
	if lf != crlf {
		t.Fatalf("CRLF output differs from LF: %q vs %q", crlf, lf)
	}
	if lf != crOnly {
		t.Fatalf("CR-only output differs from LF: %q vs %q", crOnly, lf)
	}
}

func TestOrderedListCounterResetsOnNewList(t *testing.T) {
	input := "5. five\n6. six\n\npara\n\n1. one\n2. two\n"
	got := renderPlain(t, input)
	if !strings.Contains(got, "5. five") || !strings.Contains(got, "6. six") {
		t.Fatalf("first list did not preserve/increment from its starting number: %q", got)
	}
	if !strings.Contains(got, "1. one") || !strings.Contains(got, "2. two") {
		t.Fatalf("second list did not reset its counter: %q", got)
	}
}

func TestMonochromeThemeProducesNoEscapes(t *testing.T) {
	input := "# Heading\n\n**bold** and _italic_ and [a link](https://example.com)\n\n- item\n"
	got := renderPlain(t, input)
	if strings.ContainsRune(got, 0x1b) {
		t.Fatalf("monochrome output contains an escape byte: %q", got)
	}
}

func TestTrailingNewlineNotRequired(t *testing.T) {
	got := renderPlain(t, "no trailing newline")
	if !strings.Contains(got, "no trailing newline") {
		t.Fatalf("residual line without trailing newline was dropped: %q", got)
	}
}

func TestConsecutiveListItemsHaveNoSeparatingBlankLine(t *testing.T) {
	input := "- one\n- two\n- three\n"
	got := renderPlain(t, input)
	want := "- one\n- two\n- three\n"
	if got != want {
		t.Fatalf("consecutive list items got separated: got %q want %q", got, want)
	}
}

func TestConsecutiveBlockquoteLinesHaveNoSeparatingBlankLine(t *testing.T) {
	input := "> line one\n> line two\n> line three\n"
	got := renderPlain(t, input)
	if strings.Contains(got, "\n\n") {
		t.Fatalf("consecutive blockquote lines got separated by a blank line: %q", got)
	}
	if strings.Count(got, "line") != 3 {
		t.Fatalf("expected all three blockquote lines preserved: %q", got)
	}
}

func TestConsecutiveCodeLinesHaveNoSeparatingBlankLine(t *testing.T) {
	input := "    line one\n    line two\n    line three\n"
	got := renderPlain(t, input)
	want := "line one\nline two\nline three\n"
	if got != want {
		t.Fatalf("consecutive code lines got separated: got %q want %q", got, want)
	}
}

func TestDefaultThemeTaskMarkerIsLiteralASCII(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, DefaultOptions(), nil, WithColors(true))
	if err := r.WriteString("- [ ] Task one\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := r.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	got := buf.String()
	if !strings.Contains(stripANSI(got), "[ ] Task one") {
		t.Fatalf("default theme did not use literal ASCII task marker: %q", got)
	}
}

func TestMultiLineParagraphJoinsWithSingleSpace(t *testing.T) {
	input := "Para one \n  Para two\n"
	got := renderPlain(t, input, WithWidth(80))
	if !strings.Contains(got, "one Para") {
		t.Fatalf("continuation lines did not join with a single space: %q", got)
	}
	if strings.Contains(got, "one  Para") {
		t.Fatalf("continuation lines joined with more than one space: %q", got)
	}
}

func TestTableCellsAreNotInlineFormatted(t *testing.T) {
	input := strings.Join([]string{
		"| Name | Note |",
		"| ---- | ---- |",
		"| a | **bold** |",
		"",
	}, "\n")
	got := renderPlain(t, input)
	if !strings.Contains(got, "**bold**") {
		t.Fatalf("table cell markup was interpreted instead of left literal: %q", got)
	}
}

func TestBoldItalicCloseRestoresItalicOff(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, DefaultOptions(), nil, WithColors(true))
	if err := r.WriteString("***both*** after\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := r.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, ansiItalicOff) {
		t.Fatalf("closing a bold+italic span did not turn italic back off: %q", got)
	}
}

func TestDanglingTableHeaderFlushesOnComplete(t *testing.T) {
	got := renderPlain(t, "a | b")
	if !strings.Contains(got, "a | b") {
		t.Fatalf("dangling pending table header was swallowed instead of flushed as a paragraph: %q", got)
	}
}

func TestHeadingLevelFourFallsBackToParagraph(t *testing.T) {
	got := renderPlain(t, "#### not a heading\n")
	if !strings.Contains(got, "#### not a heading") {
		t.Fatalf("level-4+ ATX marker should render as a literal paragraph: %q", got)
	}
}

func TestShortSeparatorRowIsPaddedNotMalformed(t *testing.T) {
	input := strings.Join([]string{
		"| Name | Count | Note |",
		"| ---- | ----- |",
		"| a | 1 | x |",
		"",
	}, "\n")
	got := renderPlain(t, input)
	if strings.Contains(got, tableRenderErrorPlaceholder) {
		t.Fatalf("short separator row should be padded, not treated as malformed: %q", got)
	}
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header+separator+1 row, got %d lines: %q", len(lines), got)
	}
}

func TestLongSeparatorRowIsMalformed(t *testing.T) {
	input := strings.Join([]string{
		"| Name | Count |",
		"| ---- | ----- | ----- |",
		"| a | 1 |",
		"",
	}, "\n")
	got := renderPlain(t, input)
	if !strings.Contains(got, tableRenderErrorPlaceholder) {
		t.Fatalf("separator longer than header should be malformed: %q", got)
	}
}

func TestRenderBytesRejectsInvalidUTF8(t *testing.T) {
	_, err := RenderBytes([]byte{0xff, 0xfe, 0xfd})
	if err != ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestInlineBacktickIsLiteral(t *testing.T) {
	got := renderPlain(t, "a `code` span\n")
	if !strings.Contains(got, "a `code` span") {
		t.Fatalf("bare backtick should be emitted literally: %q", got)
	}
}

func TestArbitraryBytesNeverError(t *testing.T) {
	weird := []byte{0x00, 0x01, 0xff, '#', ' ', 'h', 'i', '\n'}
	var buf bytes.Buffer
	r := NewRenderer(&buf, DefaultOptions(), nil)
	if _, err := r.Write(weird); err != nil {
		t.Fatalf("Write on arbitrary bytes returned an error: %v", err)
	}
	if err := r.Complete(); err != nil {
		t.Fatalf("Complete after arbitrary bytes returned an error: %v", err)
	}
}
