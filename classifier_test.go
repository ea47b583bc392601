package mdterm

import "testing"

func TestClassifyLinePrecedence(t *testing.T) {
	cases := []struct {
		name string
		line string
		kind blockKind
	}{
		{"blank", "   ", blockNone},
		{"link def", "[foo]: https://example.com", blockLinkDefinition},
		{"heading", "## Title", blockHeading},
		{"unordered", "- item", blockUnorderedList},
		{"ordered", "12. item", blockOrderedList},
		{"blockquote", "> quoted", blockBlockquote},
		{"indented code", "    code", blockCodeBlock},
		{"table row", "| a | b |", blockTable},
		{"paragraph", "just text", blockParagraph},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := classifyLine(c.line)
			if got.kind != c.kind {
				t.Fatalf("classifyLine(%q).kind = %v, want %v", c.line, got.kind, c.kind)
			}
		})
	}
}

func TestNormalizeLinkLabelCaseAndWhitespace(t *testing.T) {
	if normalizeLinkLabel("  Foo   Bar ") != normalizeLinkLabel("foo bar") {
		t.Fatalf("label normalization is not case/whitespace insensitive")
	}
}

func TestATXHeadingRequiresSpaceAfterHashes(t *testing.T) {
	if _, _, ok := parseATXHeading("#no-space"); ok {
		t.Fatalf("expected #no-space to not classify as a heading")
	}
	level, text, ok := parseATXHeading("### Title ###")
	if !ok || level != 3 || text != "Title" {
		t.Fatalf("got level=%d text=%q ok=%v, want 3, %q, true", level, text, ok, "Title")
	}
}

func TestOrderedListItemParsesNumberAndText(t *testing.T) {
	indent, num, text, ok := parseOrderedListItem("3) three")
	if !ok || indent != 0 || num != 3 || text != "three" {
		t.Fatalf("got indent=%d num=%d text=%q ok=%v", indent, num, text, ok)
	}
}

func TestTableSeparatorAlignment(t *testing.T) {
	cells := []string{":---", ":---:", "---:", "---"}
	if !isTableSeparatorRow(cells) {
		t.Fatalf("expected valid separator row")
	}
	want := []cellAlign{alignLeft, alignCenter, alignRight, alignLeft}
	for i, c := range cells {
		if got := alignmentOf(c); got != want[i] {
			t.Fatalf("alignmentOf(%q) = %v, want %v", c, got, want[i])
		}
	}
}
