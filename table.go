package mdterm

import "strings"

const minColumnWidth = 3

// startTable commits the buffered header/separator pair as a real table. A
// separator shorter than the header is padded with default-aligned "---"
// cells per spec §4.I before the table is committed; a separator that does
// not parse as one at all, or that is longer than the header, is malformed
// per spec §4.J category 3 and emits the visible error placeholder instead
// of a Go error.
func (r *Renderer) startTable(header, separator []string) error {
	if len(header) == 0 || !isTableSeparatorRow(separator) || len(separator) > len(header) {
		r.logger.Debug("malformed table, emitting placeholder", "header_cells", len(header), "separator_cells", len(separator))
		if err := r.write(tableRenderErrorPlaceholder + "\n"); err != nil {
			return err
		}
		r.currentBlock = blockNone
		r.lastFinalizedBlock = blockTable
		r.lastFinalizedProducedOutput = true
		r.lastFinalizedWasList = false
		return nil
	}
	for len(separator) < len(header) {
		separator = append(separator, "---")
	}
	aligns := make([]cellAlign, len(separator))
	for i, c := range separator {
		aligns[i] = alignmentOf(c)
	}
	r.table = &tableState{headerCells: header, separatorCells: separator, alignments: aligns}
	r.currentBlock = blockTable
	return nil
}

// addTableRow appends a data row, padding short rows and truncating long
// ones to the header's column count so every row lines up regardless of
// how many cells the source line actually had.
func (r *Renderer) addTableRow(cells []string) {
	if r.table == nil {
		return
	}
	n := len(r.table.headerCells)
	row := make([]string, n)
	for i := 0; i < n; i++ {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	r.table.rows = append(r.table.rows, row)
}

// finalizeTable computes column widths from the raw cell text and writes
// the full aligned layout: header row, colon-annotated separator row, then
// data rows. Cells are emitted literally, not run through component G —
// an acknowledged limitation of this version.
func (r *Renderer) finalizeTable() error {
	t := r.table
	r.table = nil
	r.currentBlock = blockNone
	if t == nil {
		return nil
	}

	widths := make([]int, len(t.headerCells))
	for i, c := range t.headerCells {
		widths[i] = visibleWidth(c)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if w := visibleWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < minColumnWidth {
			widths[i] = minColumnWidth
		}
	}

	if err := r.writeTableRow(t.headerCells, widths, t.alignments); err != nil {
		return err
	}
	if err := r.writeSeparatorRow(widths, t.alignments); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := r.writeTableRow(row, widths, t.alignments); err != nil {
			return err
		}
	}

	r.lastFinalizedBlock = blockTable
	r.lastFinalizedProducedOutput = true
	r.lastFinalizedWasList = false
	return nil
}

func (r *Renderer) writeTableRow(cells []string, widths []int, aligns []cellAlign) error {
	var b strings.Builder
	b.WriteString("|")
	for i, c := range cells {
		b.WriteString(" ")
		b.WriteString(padCell(c, widths[i], aligns[i]))
		b.WriteString(" |")
	}
	b.WriteString("\n")
	return r.write(b.String())
}

func (r *Renderer) writeSeparatorRow(widths []int, aligns []cellAlign) error {
	var b strings.Builder
	b.WriteString("|")
	for i, w := range widths {
		b.WriteString(" ")
		b.WriteString(separatorCell(w, aligns[i]))
		b.WriteString(" |")
	}
	b.WriteString("\n")
	return r.write(b.String())
}

func separatorCell(width int, align cellAlign) string {
	switch align {
	case alignCenter:
		return ":" + strings.Repeat("-", max(width-2, 1)) + ":"
	case alignRight:
		return strings.Repeat("-", max(width-1, 1)) + ":"
	default:
		return strings.Repeat("-", width)
	}
}

func padCell(s string, width int, align cellAlign) string {
	pad := width - visibleWidth(s)
	if pad < 0 {
		pad = 0
	}
	switch align {
	case alignRight:
		return strings.Repeat(" ", pad) + s
	case alignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
