// Package table pads rows of cells into aligned columns for terminal views.
package table

import (
	"strings"
	"unicode/utf8"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const columnGap = "  "

// Format pads every cell to the widest entry in its column. Columns are
// separated by two spaces; missing alignments default to left.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			pad := widths[c] - utf8.RuneCountInString(cell)
			if pad < 0 {
				pad = 0
			}
			if c < len(alignments) && alignments[c] == AlignRight {
				cells[c] = strings.Repeat(" ", pad) + cell
			} else {
				cells[c] = cell + strings.Repeat(" ", pad)
			}
		}
		out[i] = strings.TrimRight(strings.Join(cells, columnGap), " ")
	}
	return out
}
