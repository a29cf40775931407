package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"catmerge/internal/tabular"
)

// Write mirrors a table into the SQLite database at path, replacing
// any table of the same name. All columns are TEXT; a sku column, if
// present, gets an index.
func Write(path, name string, t *tabular.Table) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		defs = append(defs, fmt.Sprintf("%q TEXT", c))
	}
	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %q", name)); err != nil {
		return err
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE TABLE %q (%s)", name, strings.Join(defs, ","))); err != nil {
		return err
	}

	qCols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		qCols = append(qCols, fmt.Sprintf("%q", c))
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(t.Columns)), ",")
	stmt, err := db.Prepare(fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)", name, strings.Join(qCols, ","), ph))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for _, r := range t.Rows {
		for i, c := range t.Columns {
			args[i] = r[c]
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}

	if t.HasColumn("sku") {
		idx := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %q ON %q (sku)", "idx_"+name+"_sku", name)
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}
	return nil
}
