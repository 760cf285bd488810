package samplers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"tabimport/internal/infer"
	"tabimport/internal/source"
)

// pgSampler implements Sampler using information_schema for discovery and
// pq identifier quoting for the sample query.
type pgSampler struct{}

// This is the sampler for PostgreSQL
func (pgSampler) Tables(ctx context.Context, dbConn *sql.DB) ([]string, error) {
	rows, err := dbConn.QueryContext(ctx, `
        SELECT table_name
        FROM information_schema.tables
        WHERE table_type = 'BASE TABLE'
          AND table_schema NOT IN ('pg_catalog','information_schema','pg_toast')
        ORDER BY table_schema, table_name`)
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

func (pgSampler) Sample(ctx context.Context, dbConn *sql.DB, table string, limit int) ([]infer.Row, error) {
	q := fmt.Sprintf(`SELECT * FROM %s LIMIT %d`, pq.QuoteIdentifier(table), limit)
	rs, err := dbConn.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query sample for %s: %w", table, err)
	}
	defer rs.Close()
	return source.RowsFromSQL(rs, limit)
}

func init() {
	source.Register("postgres", pgSampler{})
	source.Register("postgresql", pgSampler{})
}
