package table

// Table is an in-memory table with an ordered column list. Cell values are
// untyped until normalized; after Normalize every cell is a string.
type Table struct {
	Columns []string
	Rows    [][]any
}

func (t Table) NumRows() int {
	return len(t.Rows)
}

func (t Table) NumColumns() int {
	return len(t.Columns)
}

func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Slice returns a view over the contiguous row range [start, start+length).
// The backing rows are shared with the receiver.
func (t Table) Slice(start, length int) Table {
	if start < 0 {
		start = 0
	}
	if start > len(t.Rows) {
		start = len(t.Rows)
	}
	end := start + length
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	return Table{
		Columns: t.Columns,
		Rows:    t.Rows[start:end],
	}
}
