package mdterm

import "testing"

func TestWrapStyledRespectsWidth(t *testing.T) {
	lines := wrapStyled("the quick brown fox jumps over the lazy dog", 10)
	for _, l := range lines {
		if visibleWidth(l) > 10 {
			t.Fatalf("line %q exceeds width 10", l)
		}
	}
}

func TestWrapStyledHardBreaksLongWord(t *testing.T) {
	lines := wrapStyled("supercalifragilisticexpialidocious", 10)
	if len(lines) < 2 {
		t.Fatalf("expected a long unbreakable word to be hard-split, got %v", lines)
	}
}

func TestWrapStyledIgnoresEscapeWidth(t *testing.T) {
	styled := ansiBold + "hello" + ansiBoldOff
	lines := wrapStyled(styled, 80)
	if len(lines) != 1 {
		t.Fatalf("expected escape-bearing short text to stay on one line, got %v", lines)
	}
	if visibleWidth(lines[0]) != 5 {
		t.Fatalf("visibleWidth should ignore escape bytes, got %d", visibleWidth(lines[0]))
	}
}

func TestVisibleWidthSkipsOSC8(t *testing.T) {
	link := osc8Hyperlink("https://example.com", "click")
	if visibleWidth(link) != 5 {
		t.Fatalf("visibleWidth(osc8 link) = %d, want 5", visibleWidth(link))
	}
}
