// Package table pads rows of cells into aligned columns for fixed-width
// screens such as the about view.
package table

import "strings"

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const columnGap = "  "

// Format returns the rows padded according to the widest entry in each
// column. Alignments apply per column; missing entries default to left.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			align := AlignLeft
			if c < len(alignments) {
				align = alignments[c]
			}
			cells[c] = pad(cell, widths[c], align)
		}
		out[i] = strings.TrimRight(strings.Join(cells, columnGap), " ")
	}
	return out
}

// Pairs formats label/value pairs as two left-aligned columns.
func Pairs(pairs [][2]string) []string {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	return Format(rows, nil)
}

func columnWidths(rows [][]string) []int {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if w := len([]rune(cell)); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func pad(cell string, width int, align Alignment) string {
	fill := width - len([]rune(cell))
	if fill <= 0 {
		return cell
	}
	if align == AlignRight {
		return strings.Repeat(" ", fill) + cell
	}
	return cell + strings.Repeat(" ", fill)
}
