package mdterm

import (
	"bytes"
	"regexp"
)

var ansiSequence = regexp.MustCompile("\x1b\\[[0-9;]*[a-zA-Z]|\x1b\\][^\x07]*(\x07|\x1b\\\\)")

func stripANSI(s string) string {
	return ansiSequence.ReplaceAllString(s, "")
}

// renderPlain renders input with the monochrome theme and colors disabled,
// the way the teacher's tests isolate structural output from styling.
func renderPlain(t interface{ Fatalf(string, ...any) }, input string, opts ...RenderOption) string {
	var buf bytes.Buffer
	base := append([]RenderOption{WithColors(false), WithTheme(MonochromeTheme())}, opts...)
	r := NewRenderer(&buf, DefaultOptions(), nil, base...)
	if err := r.WriteString(input); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := r.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	return buf.String()
}
