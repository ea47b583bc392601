package mdterm

import "strings"

// lineClass is the result of classifying one physical line per spec §4.E.
type lineClass struct {
	kind blockKind

	blank bool

	headingLevel int
	headingText  string

	listMarker string // literal bullet ("-", "*", "+") for unordered items
	listIndent int     // leading spaces before the marker
	listText   string

	orderedNum  int
	orderedText string

	blockquoteText string

	codeText string

	linkLabel string
	linkURL   string
	linkTitle string

	tableRow []string

	text string // paragraph / fallback text, and raw text for other kinds
}

// classifyLine implements spec §4.E's classification precedence: blank,
// link definition, ATX heading, unordered list item, ordered list item,
// blockquote, indented code, table row, paragraph default.
func classifyLine(line string) lineClass {
	if strings.TrimSpace(line) == "" {
		return lineClass{kind: blockNone, blank: true}
	}

	if label, url, title, ok := parseLinkDefinition(line); ok {
		return lineClass{kind: blockLinkDefinition, linkLabel: normalizeLinkLabel(label), linkURL: url, linkTitle: title}
	}

	if level, text, ok := parseATXHeading(line); ok {
		return lineClass{kind: blockHeading, headingLevel: level, headingText: text}
	}

	if indent, marker, text, ok := parseUnorderedListItem(line); ok {
		return lineClass{kind: blockUnorderedList, listIndent: indent, listMarker: marker, listText: text}
	}

	if indent, num, text, ok := parseOrderedListItem(line); ok {
		return lineClass{kind: blockOrderedList, listIndent: indent, orderedNum: num, orderedText: text}
	}

	if text, ok := parseBlockquote(line); ok {
		return lineClass{kind: blockBlockquote, blockquoteText: text}
	}

	if text, ok := parseIndentedCode(line); ok {
		return lineClass{kind: blockCodeBlock, codeText: text}
	}

	if cells, ok := parseTableRow(line); ok {
		return lineClass{kind: blockTable, tableRow: cells}
	}

	return lineClass{kind: blockParagraph, text: strings.TrimSpace(line)}
}

// parseLinkDefinition recognizes "[label]: url" and "[label]: url \"title\"",
// optionally indented by up to three spaces.
func parseLinkDefinition(line string) (label, url, title string, ok bool) {
	s := stripLeadingIndent(line, 3)
	if s == "" || s[0] != '[' {
		return "", "", "", false
	}
	end := strings.IndexByte(s, ']')
	if end < 1 {
		return "", "", "", false
	}
	label = s[1:end]
	rest := s[end+1:]
	if !strings.HasPrefix(rest, ":") {
		return "", "", "", false
	}
	rest = strings.TrimSpace(rest[1:])
	if rest == "" {
		return "", "", "", false
	}
	url, title = splitURLAndTitle(rest)
	if url == "" {
		return "", "", "", false
	}
	return label, url, title, true
}

func splitURLAndTitle(rest string) (url, title string) {
	fields := strings.SplitN(rest, " ", 2)
	url = fields[0]
	if len(fields) == 2 {
		t := strings.TrimSpace(fields[1])
		t = strings.Trim(t, "\"'")
		title = t
	}
	return url, title
}

// normalizeLinkLabel implements spec's case-insensitive, whitespace-
// collapsed label matching.
func normalizeLinkLabel(label string) string {
	fields := strings.Fields(label)
	return strings.ToLower(strings.Join(fields, " "))
}

func parseATXHeading(line string) (level int, text string, ok bool) {
	s := stripLeadingIndent(line, 3)
	level = 0
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level == 0 || level > 3 {
		return 0, "", false
	}
	if level == len(s) {
		return level, "", true
	}
	if s[level] != ' ' && s[level] != '\t' {
		return 0, "", false
	}
	text = strings.TrimSpace(s[level:])
	text = strings.TrimRight(text, "#")
	text = strings.TrimSpace(text)
	return level, text, true
}

func parseUnorderedListItem(line string) (indent int, marker, text string, ok bool) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i > 3 || i >= len(line) {
		return 0, "", "", false
	}
	c := line[i]
	if c != '-' && c != '*' && c != '+' {
		return 0, "", "", false
	}
	if i+1 >= len(line) || (line[i+1] != ' ' && line[i+1] != '\t') {
		return 0, "", "", false
	}
	return i, string(c), strings.TrimLeft(line[i+1:], " \t"), true
}

func parseOrderedListItem(line string) (indent, num int, text string, ok bool) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i > 3 {
		return 0, 0, "", false
	}
	start := i
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == start || i-start > 9 {
		return 0, 0, "", false
	}
	if i >= len(line) || (line[i] != '.' && line[i] != ')') {
		return 0, 0, "", false
	}
	i++
	if i >= len(line) || (line[i] != ' ' && line[i] != '\t') {
		return 0, 0, "", false
	}
	n := 0
	for _, c := range line[start : i-1] {
		n = n*10 + int(c-'0')
	}
	return start, n, strings.TrimLeft(line[i+1:], " \t"), true
}

func parseBlockquote(line string) (text string, ok bool) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i > 3 || i >= len(line) || line[i] != '>' {
		return "", false
	}
	rest := line[i+1:]
	rest = strings.TrimPrefix(rest, " ")
	return rest, true
}

// parseIndentedCode recognizes a line indented by four or more spaces (or
// a leading tab), stripping exactly one indent level of four spaces.
func parseIndentedCode(line string) (text string, ok bool) {
	if strings.HasPrefix(line, "\t") {
		return line[1:], true
	}
	if strings.HasPrefix(line, "    ") {
		return line[4:], true
	}
	return "", false
}

// parseTableRow recognizes any line containing a "|" (escaped or not), per spec
// §4.E table-row detection; separator-vs-header/data distinction happens in
// component I.
func parseTableRow(line string) ([]string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "|") {
		return nil, false
	}
	return splitTableCells(trimmed), true
}

func splitTableCells(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	parts := strings.Split(row, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func stripLeadingIndent(line string, max int) string {
	i := 0
	for i < len(line) && i < max && line[i] == ' ' {
		i++
	}
	return line[i:]
}

// isTableSeparatorRow reports whether every cell matches
// ":?-+:?" (at least one hyphen, optional leading/trailing colon).
func isTableSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			return false
		}
		body := c
		if strings.HasPrefix(body, ":") {
			body = body[1:]
		}
		if strings.HasSuffix(body, ":") {
			body = body[:len(body)-1]
		}
		if body == "" {
			return false
		}
		for _, r := range body {
			if r != '-' {
				return false
			}
		}
	}
	return true
}

func alignmentOf(cell string) cellAlign {
	c := strings.TrimSpace(cell)
	left := strings.HasPrefix(c, ":")
	right := strings.HasSuffix(c, ":")
	switch {
	case left && right:
		return alignCenter
	case right:
		return alignRight
	default:
		return alignLeft
	}
}
