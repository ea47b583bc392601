package mdterm

import (
	"os"
	"strconv"
	"strings"
)

// SGR and OSC-8 byte sequences used by the theme and renderer. Grouped here
// the way a static constant table would be, rather than scattered as
// string literals through the block/inline code.
const (
	ansiReset = "\x1b[0m"

	ansiBold      = "\x1b[1m"
	ansiBoldOff   = "\x1b[22m"
	ansiItalic    = "\x1b[3m"
	ansiItalicOff = "\x1b[23m"
	ansiStrikeOn  = "\x1b[9m"
	ansiStrikeOff = "\x1b[29m"
	ansiUnderline = "\x1b[4m"

	osc8Start = "\x1b]8;;"
	osc8End   = "\x1b]8;;\x1b\\"
	oscBell   = "\x07"
)

// sgrFg256 returns the SGR prefix for an indexed (256-color) foreground.
func sgrFg256(idx int) string {
	return "\x1b[38;5;" + strconv.Itoa(idx) + "m"
}

// sgrFgRGB returns the SGR prefix for a true-color foreground.
func sgrFgRGB(r, g, b int) string {
	return "\x1b[38;2;" + strconv.Itoa(r) + ";" + strconv.Itoa(g) + ";" + strconv.Itoa(b) + "m"
}

// sgrFgStandard returns the SGR prefix for one of the 16 standard colors.
func sgrFgStandard(code int) string {
	return "\x1b[" + strconv.Itoa(code) + "m"
}

// osc8Hyperlink wraps text in an OSC-8 hyperlink escape sequence.
func osc8Hyperlink(url, text string) string {
	var b strings.Builder
	b.WriteString(osc8Start)
	b.WriteString(url)
	b.WriteString(oscBell)
	b.WriteString(text)
	b.WriteString(osc8End)
	return b.String()
}

// emphasisOffCode returns the specific "off" SGR for an open style tag,
// rather than a generic reset, per the spec's style-stack discipline.
func emphasisOffCode(tag styleTag) string {
	switch tag {
	case styleBold:
		return ansiBoldOff
	case styleItalic:
		return ansiItalicOff
	case styleBoldItalic:
		return ansiBoldOff + ansiItalicOff
	case styleStrikethrough:
		return ansiStrikeOff
	default:
		return ansiReset
	}
}

// DetectOSC8Support reports whether the current environment likely
// supports OSC-8 hyperlinks, grounded on the same terminal/env sniffing the
// teacher renderer uses for the same purpose.
func DetectOSC8Support() bool {
	if os.Getenv("OSC8") == "0" {
		return false
	}
	if os.Getenv("DOMTERM") != "" {
		return true
	}
	if os.Getenv("WT_SESSION") != "" {
		return true
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "vscode":
		return true
	}
	if strings.Contains(strings.ToLower(os.Getenv("TERM")), "kitty") {
		return true
	}
	if vte := os.Getenv("VTE_VERSION"); vte != "" {
		if n, err := strconv.Atoi(vte); err == nil && n >= 5000 {
			return true
		}
	}
	return false
}
