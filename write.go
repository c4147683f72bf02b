package pivotchart

import (
	"context"
	"fmt"
	"strings"
)

// WriteRepository common write interface.
type WriteRepository interface {
	// AddRows creates table if needed and appends the rows of ds.
	AddRows(ctx context.Context, table string, ds *Dataset) error
}

// AddRows writes ds using sqlite-compatible DDL. It is used to seed a
// local database from flat files.
func (r *SQLRepository) AddRows(ctx context.Context, table string, ds *Dataset) (err error) {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("failed to add rows: invalid table name %q", table)
	}

	columns := ds.Columns()
	defs := make([]string, len(columns))
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
		defs[i] = quoted[i] + " " + r.columnType(col, ds)
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	create := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s)`, table, strings.Join(defs, ", "))
	if _, err = tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create table `%s`: %w", table, err)
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table, strings.Join(quoted, ", "), strings.TrimRight(strings.Repeat("?,", len(columns)), ","))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert into `%s`: %w", table, err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(columns))
	for _, row := range ds.rows {
		for i, col := range columns {
			args[i] = row[col]
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to execute query insert `%s`: %w", table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit `%s`: %w", table, err)
	}

	return nil
}

// columnType picks INTEGER, REAL or TEXT from the values of col.
func (r *SQLRepository) columnType(col string, ds *Dataset) string {
	if _, ok := r.textColumns[col]; ok {
		return "TEXT"
	}

	kind := ""
	for _, row := range ds.rows {
		switch row[col].(type) {
		case nil:
			continue
		case int64:
			if kind == "" {
				kind = "INTEGER"
			}
		case float64:
			kind = "REAL"
		default:
			return "TEXT"
		}
	}
	if kind == "" {
		return "TEXT"
	}

	return kind
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// DropTable removes table if it exists.
func (r *SQLRepository) DropTable(ctx context.Context, table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("failed to drop: invalid table name %q", table)
	}
	if _, err := r.conn.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
		return fmt.Errorf("failed to drop table `%s`: %w", table, err)
	}

	return nil
}
