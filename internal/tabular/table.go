package tabular

// Table is a parsed dataset file: a header row plus data rows. Every row has
// exactly len(Columns) cells; short rows are padded and long rows truncated
// during parsing.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Sample returns the first n rows (all rows when n <= 0 or n >= len).
func (t *Table) Sample(n int) *Table {
	if n <= 0 || n >= len(t.Rows) {
		return t
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// ColumnIndex returns the position of a column name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// MapRow converts one row into placeholder values using a column -> token
// mapping. Columns without a mapping entry are skipped.
func (t *Table) MapRow(row []string, mapping map[string]string) map[string]string {
	values := make(map[string]string)
	for i, col := range t.Columns {
		token, ok := mapping[col]
		if !ok || token == "" {
			continue
		}
		if i < len(row) {
			values[token] = row[i]
		} else {
			values[token] = ""
		}
	}
	return values
}

func normalize(rows [][]string, width int) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == width {
			out = append(out, row)
			continue
		}
		fixed := make([]string, width)
		copy(fixed, row)
		out = append(out, fixed)
	}
	return out
}
