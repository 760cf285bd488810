package samplers

import (
	"context"
	"database/sql"
	"fmt"

	"tabimport/internal/infer"
	"tabimport/internal/source"
)

// sqliteSampler implements Sampler for SQLite.
type sqliteSampler struct{}

// This is the sampler for SQLite
func (sqliteSampler) Tables(ctx context.Context, dbConn *sql.DB) ([]string, error) {
	rows, err := dbConn.QueryContext(ctx, `
        SELECT name FROM sqlite_master
        WHERE type = 'table'
          AND name NOT LIKE 'sqlite_%'
        ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (sqliteSampler) Sample(ctx context.Context, dbConn *sql.DB, table string, limit int) ([]infer.Row, error) {
	q := fmt.Sprintf(`SELECT * FROM "%s" LIMIT %d`, table, limit)
	rs, err := dbConn.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query sample for %s: %w", table, err)
	}
	defer rs.Close()
	return source.RowsFromSQL(rs, limit)
}

func init() {
	source.Register("sqlite3", sqliteSampler{})
	source.Register("sqlite", sqliteSampler{})
}
