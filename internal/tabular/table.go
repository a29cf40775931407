package tabular

// Row holds one record's values keyed by column name. Columns absent
// from a row read as the empty string.
type Row map[string]string

// Table is an ordered-column, in-memory table. The column list is the
// schema; rows may omit columns, in which case the value is empty.
type Table struct {
	Columns []string
	Rows    []Row
}

func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column filled with the given value for every
// existing row. Adding a column that already exists is a no-op.
func (t *Table) AddColumn(name, fill string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
	for _, r := range t.Rows {
		r[name] = fill
	}
}

// RenameColumn renames a column in the schema and in every row.
func (t *Table) RenameColumn(from, to string) {
	for i, c := range t.Columns {
		if c == from {
			t.Columns[i] = to
		}
	}
	for _, r := range t.Rows {
		if v, ok := r[from]; ok {
			r[to] = v
			delete(r, from)
		}
	}
}

// Select returns a new table restricted to the given columns, in the
// given order. Requested columns missing from a row come out empty.
func (t *Table) Select(columns ...string) *Table {
	out := New(columns...)
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make(Row, len(columns))
		for _, c := range columns {
			row[c] = r[c]
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}
