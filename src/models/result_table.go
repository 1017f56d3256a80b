package models

// MResultTable is the generic shape returned by the warehouse executor:
// column names plus all rows, in the order the server returned them.
type MResultTable struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// -----------------------------------------------------------------------------

// Empty reports whether the result contains no rows.
func (t *MResultTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// -----------------------------------------------------------------------------

// ColumnIndex returns the position of a column by name, or -1 when absent.
func (t *MResultTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// -----------------------------------------------------------------------------

// Value returns the cell at (row, column name), or nil when out of range.
func (t *MResultTable) Value(row int, column string) any {
	if t == nil || row < 0 || row >= len(t.Rows) {
		return nil
	}
	idx := t.ColumnIndex(column)
	if idx < 0 || idx >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][idx]
}
