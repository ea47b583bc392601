package mdterm

import "strings"

const escapableChars = "*_~[]()\\!"

// formatInline implements component G: it turns one line (or one fully
// joined paragraph) of raw Markdown text into a styled fragment ready for
// component H or direct emission. It never spans block boundaries — every
// open emphasis span is force-closed before it returns (spec §3 invariant
// 3).
func (r *Renderer) formatInline(text string) (string, error) {
	var out strings.Builder
	i := 0
	n := len(text)
	for i < n {
		c := text[i]

		if c == '\\' && i+1 < n && strings.IndexByte(escapableChars, text[i+1]) >= 0 {
			out.WriteByte(text[i+1])
			i += 2
			continue
		}

		if c == '!' && i+1 < n && text[i+1] == '[' {
			if consumed, rendered, ok := r.renderImage(text[i:]); ok {
				out.WriteString(rendered)
				i += consumed
				continue
			}
		}

		if c == '<' && r.opts.StripHTML {
			if consumed, ok := scanInlineHTML(text[i:]); ok {
				i += consumed
				continue
			}
		}

		if c == '[' {
			if consumed, rendered, ok := r.renderLink(text[i:]); ok {
				out.WriteString(rendered)
				i += consumed
				continue
			}
		}

		if c == '*' || c == '_' || c == '~' {
			if consumed, rendered, ok := r.toggleEmphasis(text[i:]); ok {
				out.WriteString(rendered)
				i += consumed
				continue
			}
		}

		out.WriteByte(c)
		i++
	}

	out.WriteString(r.closeAllStyles())
	return out.String(), nil
}

// runLength counts a run of the byte at s[0].
func runLength(s string, b byte) int {
	n := 0
	for n < len(s) && s[n] == b {
		n++
	}
	return n
}

// toggleEmphasis handles a run of 1-3 '*'/'_' characters or a run of '~'
// characters (strikethrough uses exactly two). It toggles the
// corresponding span using a simple open/close-by-tag model: the first
// occurrence of a tag opens it, the next occurrence — wherever it sits in
// the stack — closes it. This trades strict stack-discipline nesting for
// tolerance of the loose emphasis markup real Markdown documents contain.
func (r *Renderer) toggleEmphasis(s string) (consumed int, rendered string, ok bool) {
	b := s[0]
	if b == '~' {
		run := runLength(s, '~')
		if run < 2 {
			return 0, "", false
		}
		return 2, r.toggleTag(styleStrikethrough, r.opts.Theme.Styles.Strikethrough), true
	}
	run := runLength(s, b)
	if run > 3 {
		run = 3
	}
	switch run {
	case 3:
		return 3, r.toggleTag(styleBoldItalic, r.opts.Theme.Styles.BoldItalic), true
	case 2:
		return 2, r.toggleTag(styleBold, r.opts.Theme.Styles.Bold), true
	case 1:
		return 1, r.toggleTag(styleItalic, r.opts.Theme.Styles.Italic), true
	default:
		return 0, "", false
	}
}

func (r *Renderer) toggleTag(tag styleTag, on Style) string {
	if r.closeStyleTagAnywhere(tag) {
		if !r.opts.EnableColors {
			return ""
		}
		return emphasisOffCode(tag)
	}
	r.styleStack = append(r.styleStack, tag)
	return r.styleOf(on)
}

// closeStyleTagAnywhere removes tag from the style stack wherever it sits,
// returning whether it was found open. It emits nothing itself; toggleTag
// returns the off code.
func (r *Renderer) closeStyleTagAnywhere(tag styleTag) bool {
	for idx := len(r.styleStack) - 1; idx >= 0; idx-- {
		if r.styleStack[idx] == tag {
			r.styleStack = append(r.styleStack[:idx], r.styleStack[idx+1:]...)
			return true
		}
	}
	return false
}

// renderImage handles "![alt](url)", displaying the alt text between the
// theme's image prefix and suffix; the URL is dropped (no terminal can show
// the referenced image).
func (r *Renderer) renderImage(s string) (consumed int, rendered string, ok bool) {
	if len(s) < 2 || s[0] != '!' || s[1] != '[' {
		return 0, "", false
	}
	altEnd := strings.IndexByte(s[2:], ']')
	if altEnd < 0 {
		return 0, "", false
	}
	altEnd += 2
	rest := s[altEnd+1:]
	if rest == "" || rest[0] != '(' {
		return 0, "", false
	}
	closeParen := strings.IndexByte(rest, ')')
	if closeParen < 0 {
		return 0, "", false
	}
	alt := s[2:altEnd]
	theme := r.opts.Theme
	out := theme.ImagePrefix + r.styleOf(theme.Styles.ImageAlt) + alt
	if r.opts.EnableColors && theme.Styles.ImageAlt.Prefix != "" {
		out += ansiReset
	}
	out += theme.ImageSuffix
	return altEnd + 1 + closeParen + 1, out, true
}

// renderLink handles inline links "[text](url \"title\")", images already
// having been intercepted by renderImage, and the three reference-link
// forms: "[text][label]", "[label][]", and "[label]".
func (r *Renderer) renderLink(s string) (consumed int, rendered string, ok bool) {
	textEnd := findMatchingBracket(s)
	if textEnd < 0 {
		return 0, "", false
	}
	linkText := s[1:textEnd]
	rest := s[textEnd+1:]

	if strings.HasPrefix(rest, "(") {
		closeParen := strings.IndexByte(rest, ')')
		if closeParen < 0 {
			return 0, "", false
		}
		inner := strings.TrimSpace(rest[1:closeParen])
		url, _ := splitURLAndTitle(inner)
		return textEnd + 1 + closeParen + 1, r.styledLink(linkText, url), true
	}

	if strings.HasPrefix(rest, "[") {
		labelEnd := strings.IndexByte(rest, ']')
		if labelEnd < 0 {
			return 0, "", false
		}
		label := rest[1:labelEnd]
		if label == "" {
			label = linkText
		}
		def, found := r.linkDefs[normalizeLinkLabel(label)]
		total := textEnd + 1 + labelEnd + 1
		if !found {
			r.logger.Debug("unresolved reference link", "label", label)
			return total, s[0:total], true
		}
		return total, r.styledLink(linkText, def.url), true
	}

	def, found := r.linkDefs[normalizeLinkLabel(linkText)]
	if !found {
		r.logger.Debug("unresolved reference link", "label", linkText)
		return textEnd + 1, s[0 : textEnd+1], true
	}
	return textEnd + 1, r.styledLink(linkText, def.url), true
}

func (r *Renderer) styledLink(text, url string) string {
	styled := r.styleOf(r.opts.Theme.Styles.LinkText) + text
	if r.opts.EnableColors && r.opts.Theme.Styles.LinkText.Prefix != "" {
		styled += ansiReset
	}
	if r.opts.UseHyperlinks {
		return osc8Hyperlink(url, styled)
	}
	urlStyled := r.styleOf(r.opts.Theme.Styles.LinkURL) + url
	if r.opts.EnableColors && r.opts.Theme.Styles.LinkURL.Prefix != "" {
		urlStyled += ansiReset
	}
	return styled + " (" + urlStyled + ")"
}

// findMatchingBracket returns the index of the ']' matching the '[' at
// s[0], or -1 if none exists on this line.
func findMatchingBracket(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// scanInlineHTML recognizes "<tag ...>", "</tag>", "<!--...-->" and
// similar constructs starting at s[0] == '<', returning the byte length to
// drop. Used only when StripHTML is enabled.
func scanInlineHTML(s string) (consumed int, ok bool) {
	if len(s) < 2 {
		return 0, false
	}
	next := s[1]
	if !(next == '/' || next == '!' || isASCIILetter(next)) {
		return 0, false
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return 0, false
	}
	return end + 1, true
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
