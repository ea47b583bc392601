package mdterm

import "strings"

// processLine implements the per-line side of spec §4.F: classify the
// line, resolve the pending table lookahead if one is outstanding, then
// dispatch to the block-specific start/continue handler.
func (r *Renderer) processLine(raw string) error {
	if r.pendingTableHeader != nil {
		return r.resolvePendingTable(raw)
	}

	cls := classifyLine(raw)

	if cls.kind == blockTable && r.currentBlock != blockTable {
		r.pendingTableHeader = cls.tableRow
		return nil
	}

	return r.dispatch(cls)
}

// resolvePendingTable decides, using one line of lookahead, whether the
// buffered candidate header line was really the start of a table.
func (r *Renderer) resolvePendingTable(raw string) error {
	header := r.pendingTableHeader
	r.pendingTableHeader = nil

	cells, isRow := parseTableRow(raw)
	if isRow && isTableSeparatorRow(cells) {
		if err := r.ensureSeparation(blockTable); err != nil {
			return err
		}
		return r.startTable(header, cells)
	}

	if err := r.dispatch(lineClass{kind: blockParagraph, text: joinTableCells(header)}); err != nil {
		return err
	}
	return r.processLine(raw)
}

func joinTableCells(cells []string) string {
	return strings.Join(cells, " | ")
}

func (r *Renderer) dispatch(cls lineClass) error {
	if cls.blank {
		return r.finalizeCurrentBlock()
	}

	switch cls.kind {
	case blockLinkDefinition:
		return r.handleLinkDefinition(cls)
	case blockHeading:
		return r.handleHeading(cls)
	case blockUnorderedList:
		return r.handleUnorderedListItem(cls)
	case blockOrderedList:
		return r.handleOrderedListItem(cls)
	case blockBlockquote:
		return r.handleBlockquoteLine(cls)
	case blockCodeBlock:
		return r.handleCodeLine(cls)
	case blockTable:
		return r.handleTableDataRow(cls)
	default:
		return r.handleParagraphLine(cls)
	}
}

// finalizeCurrentBlock flushes whichever block is buffering (paragraph or
// table); every other block kind already emitted its output line by line
// and only needs its state reset.
func (r *Renderer) finalizeCurrentBlock() error {
	switch r.currentBlock {
	case blockParagraph:
		return r.finalizeParagraph()
	case blockTable:
		return r.finalizeTable()
	default:
		r.currentBlock = blockNone
		return nil
	}
}

// ensureSeparation writes the single blank line spec §3's separation
// protocol requires between two distinct visible blocks. It is a no-op
// when there is nothing before this block, when the previous block
// produced no output (e.g. a link definition), or when newKind continues
// the block already open.
func (r *Renderer) ensureSeparation(newKind blockKind) error {
	if r.currentBlock == newKind {
		return nil
	}
	if r.lastFinalizedBlock == blockNone || !r.lastFinalizedProducedOutput {
		return nil
	}
	return r.write("\n")
}

func (r *Renderer) handleLinkDefinition(cls lineClass) error {
	if err := r.finalizeCurrentBlock(); err != nil {
		return err
	}
	r.linkDefs[cls.linkLabel] = linkDef{url: cls.linkURL, title: cls.linkTitle}
	r.lastFinalizedBlock = blockLinkDefinition
	r.lastFinalizedProducedOutput = false
	r.lastFinalizedWasList = false
	return nil
}

func (r *Renderer) handleHeading(cls lineClass) error {
	if err := r.finalizeCurrentBlock(); err != nil {
		return err
	}
	if err := r.ensureSeparation(blockHeading); err != nil {
		return err
	}
	styled, err := r.formatInline(cls.headingText)
	if err != nil {
		return err
	}
	level := cls.headingLevel
	style := r.opts.Theme.Styles.Heading[level-1]
	prefix := strings.Repeat("#", level) + " "
	line := r.styleOf(style) + prefix + styled
	if r.opts.EnableColors && style.Prefix != "" {
		line += ansiReset
	}
	if err := r.write(line + "\n"); err != nil {
		return err
	}
	r.currentBlock = blockNone
	r.lastFinalizedBlock = blockHeading
	r.lastFinalizedProducedOutput = true
	r.lastFinalizedWasList = false
	return nil
}

func (r *Renderer) handleUnorderedListItem(cls lineClass) error {
	if r.currentBlock != blockUnorderedList {
		if err := r.finalizeCurrentBlock(); err != nil {
			return err
		}
		if err := r.ensureSeparation(blockUnorderedList); err != nil {
			return err
		}
	}
	text, marker := taskListMarker(r.opts.Theme, cls.listText)
	styled, err := r.formatInline(text)
	if err != nil {
		return err
	}
	bullet := marker
	if bullet == "" {
		bullet = r.opts.Theme.ListBulletUnordered
	}
	line := r.styleOf(r.opts.Theme.Styles.ListBullet) + bullet
	if r.opts.EnableColors && r.opts.Theme.Styles.ListBullet.Prefix != "" {
		line += ansiReset
	}
	line += " " + styled
	if err := r.write(line + "\n"); err != nil {
		return err
	}
	r.currentBlock = blockUnorderedList
	r.lastFinalizedBlock = blockUnorderedList
	r.lastFinalizedProducedOutput = true
	r.lastFinalizedWasList = true
	r.listIndent = cls.listIndent
	return nil
}

func (r *Renderer) handleOrderedListItem(cls lineClass) error {
	starting := r.currentBlock != blockOrderedList
	if starting {
		if err := r.finalizeCurrentBlock(); err != nil {
			return err
		}
		if err := r.ensureSeparation(blockOrderedList); err != nil {
			return err
		}
		r.orderedCounter = cls.orderedNum
	} else {
		r.orderedCounter++
	}
	text, marker := taskListMarker(r.opts.Theme, cls.orderedText)
	styled, err := r.formatInline(text)
	if err != nil {
		return err
	}
	bullet := marker
	if bullet == "" {
		bullet = numberedBullet(r.opts.Theme.ListOrderedFormat, r.orderedCounter)
	}
	line := r.styleOf(r.opts.Theme.Styles.ListBullet) + bullet
	if r.opts.EnableColors && r.opts.Theme.Styles.ListBullet.Prefix != "" {
		line += ansiReset
	}
	line += " " + styled
	if err := r.write(line + "\n"); err != nil {
		return err
	}
	r.currentBlock = blockOrderedList
	r.lastFinalizedBlock = blockOrderedList
	r.lastFinalizedProducedOutput = true
	r.lastFinalizedWasList = true
	r.listIndent = cls.listIndent
	return nil
}

func numberedBullet(format string, n int) string {
	if !strings.Contains(format, "%d") {
		return format
	}
	return strings.Replace(format, "%d", itoa(n), 1)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// taskListMarker recognizes a leading "[ ] ", "[x] " or "[X] " task
// checkbox and returns the remaining text plus the themed marker glyph to
// use as the bullet; ok text with an empty marker means "use the normal
// bullet".
func taskListMarker(theme Theme, text string) (remaining, marker string) {
	switch {
	case strings.HasPrefix(text, "[ ] "):
		return text[4:], theme.TaskUnchecked
	case strings.HasPrefix(text, "[x] "), strings.HasPrefix(text, "[X] "):
		return text[4:], theme.TaskChecked
	default:
		return text, ""
	}
}

func (r *Renderer) handleBlockquoteLine(cls lineClass) error {
	if r.currentBlock != blockBlockquote {
		if err := r.finalizeCurrentBlock(); err != nil {
			return err
		}
		if err := r.ensureSeparation(blockBlockquote); err != nil {
			return err
		}
	}
	styled, err := r.formatInline(cls.blockquoteText)
	if err != nil {
		return err
	}
	line := r.styleOf(r.opts.Theme.Styles.Blockquote) + r.opts.Theme.BlockquotePrefix
	if r.opts.EnableColors && r.opts.Theme.Styles.Blockquote.Prefix != "" {
		line += styled + ansiReset
	} else {
		line += styled
	}
	if err := r.write(line + "\n"); err != nil {
		return err
	}
	r.currentBlock = blockBlockquote
	r.lastFinalizedBlock = blockBlockquote
	r.lastFinalizedProducedOutput = true
	r.lastFinalizedWasList = false
	return nil
}

func (r *Renderer) handleCodeLine(cls lineClass) error {
	starting := r.currentBlock != blockCodeBlock
	text := cls.codeText
	if starting {
		wasList := r.lastFinalizedWasList
		listIndent := r.listIndent
		if err := r.finalizeCurrentBlock(); err != nil {
			return err
		}
		if wasList {
			text = stripExtraListIndent(text, listIndent)
		}
		if err := r.ensureSeparation(blockCodeBlock); err != nil {
			return err
		}
	}
	line := r.styleOf(r.opts.Theme.Styles.CodeBlock) + text
	if r.opts.EnableColors && r.opts.Theme.Styles.CodeBlock.Prefix != "" {
		line += ansiReset
	}
	if err := r.write(line + "\n"); err != nil {
		return err
	}
	r.currentBlock = blockCodeBlock
	r.lastFinalizedBlock = blockCodeBlock
	r.lastFinalizedProducedOutput = true
	r.lastFinalizedWasList = false
	return nil
}

// stripExtraListIndent removes up to listIndent+2 further leading spaces
// from code continuing a list item, matching the extra indent a code
// block nested under a list marker carries beyond the plain four-space
// rule.
func stripExtraListIndent(text string, listIndent int) string {
	extra := listIndent + 2
	i := 0
	for i < len(text) && i < extra && text[i] == ' ' {
		i++
	}
	return text[i:]
}

func (r *Renderer) handleParagraphLine(cls lineClass) error {
	if r.currentBlock == blockParagraph {
		buf := r.paragraphBuf.String()
		needsSpace := buf != "" && cls.text != "" &&
			!isASCIISpace(buf[len(buf)-1]) && !isASCIISpace(cls.text[0])
		if needsSpace {
			r.paragraphBuf.WriteByte(' ')
		}
		r.paragraphBuf.WriteString(cls.text)
		return nil
	}
	if err := r.finalizeCurrentBlock(); err != nil {
		return err
	}
	if err := r.ensureSeparation(blockParagraph); err != nil {
		return err
	}
	r.currentBlock = blockParagraph
	r.paragraphBuf.Reset()
	r.paragraphBuf.WriteString(cls.text)
	return nil
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func (r *Renderer) finalizeParagraph() error {
	text := r.paragraphBuf.String()
	r.paragraphBuf.Reset()
	r.currentBlock = blockNone
	if text == "" {
		return nil
	}
	styled, err := r.formatInline(text)
	if err != nil {
		return err
	}
	wrapped := wrapParagraph(styled, r.maxWidth)
	if err := r.write(wrapped + "\n"); err != nil {
		return err
	}
	r.lastFinalizedBlock = blockParagraph
	r.lastFinalizedProducedOutput = true
	r.lastFinalizedWasList = false
	return nil
}

func (r *Renderer) handleTableDataRow(cls lineClass) error {
	if r.currentBlock == blockTable {
		r.addTableRow(cls.tableRow)
		return nil
	}
	// A "|"-bearing line with no active table and no pending header (the
	// lookahead already failed once) is just paragraph text.
	return r.handleParagraphLine(lineClass{kind: blockParagraph, text: joinTableCells(cls.tableRow)})
}
