package booking

import "fmt"

// DefaultRowWidth matches the hall layouts the server seeds.
const DefaultRowWidth = 10

const rowLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Layout is the derived visual arrangement of a hall: full rows of rowWidth
// seats labeled A1..A10, B1.. and so on, with one short row at the END when
// the total is not a multiple of the width. The short-row-last policy is
// fixed; callers must not assume any other seat-id convention.
type Layout struct {
	Rows [][]string
}

// NewLayout generates the layout for total seats. total 0 yields an empty
// layout; a total beyond 26*rowWidth fails with LayoutOverflowError.
func NewLayout(total int, rowWidth int) (Layout, error) {
	if rowWidth <= 0 {
		rowWidth = DefaultRowWidth
	}
	if total < 0 {
		return Layout{}, fmt.Errorf("negative seat count %d", total)
	}
	capacity := len(rowLetters) * rowWidth
	if total > capacity {
		return Layout{}, &LayoutOverflowError{Total: total, Capacity: capacity}
	}

	var rows [][]string
	for offset := 0; offset < total; offset += rowWidth {
		letter := rowLetters[offset/rowWidth]
		width := rowWidth
		if remaining := total - offset; remaining < width {
			width = remaining
		}
		row := make([]string, 0, width)
		for n := 1; n <= width; n++ {
			row = append(row, fmt.Sprintf("%c%d", letter, n))
		}
		rows = append(rows, row)
	}
	return Layout{Rows: rows}, nil
}

// SeatIDs returns every seat identifier in row-major order.
func (l Layout) SeatIDs() []string {
	var ids []string
	for _, row := range l.Rows {
		ids = append(ids, row...)
	}
	return ids
}

// Size returns the number of seats in the layout.
func (l Layout) Size() int {
	n := 0
	for _, row := range l.Rows {
		n += len(row)
	}
	return n
}
