package samplers

import (
	"context"
	"database/sql"
	"fmt"

	"tabimport/internal/infer"
	"tabimport/internal/source"
)

// mySampler implements Sampler for MySQL and MariaDB.
type mySampler struct{}

// This is the sampler for MySQL
func (mySampler) Tables(ctx context.Context, dbConn *sql.DB) ([]string, error) {
	rows, err := dbConn.QueryContext(ctx, `
        SELECT table_name
        FROM information_schema.tables
        WHERE table_schema = DATABASE()
          AND table_type = 'BASE TABLE'
        ORDER BY table_name`)
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

func (mySampler) Sample(ctx context.Context, dbConn *sql.DB, table string, limit int) ([]infer.Row, error) {
	q := fmt.Sprintf("SELECT * FROM `%s` LIMIT %d", table, limit)
	rs, err := dbConn.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query sample for %s: %w", table, err)
	}
	defer rs.Close()
	return source.RowsFromSQL(rs, limit)
}

func init() {
	source.Register("mysql", mySampler{})
	source.Register("mariadb", mySampler{})
}
