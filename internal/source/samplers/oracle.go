package samplers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/godror/godror"

	"tabimport/internal/infer"
	"tabimport/internal/source"
)

// oracleSampler implements Sampler for Oracle via godror.
type oracleSampler struct{}

// This is the sampler for Oracle
func (oracleSampler) Tables(ctx context.Context, dbConn *sql.DB) ([]string, error) {
	rows, err := dbConn.QueryContext(ctx, `
        SELECT table_name
        FROM user_tables
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

func (oracleSampler) Sample(ctx context.Context, dbConn *sql.DB, table string, limit int) ([]infer.Row, error) {
	// Unquoted Oracle identifiers are stored upper-case.
	q := fmt.Sprintf(`SELECT * FROM "%s" FETCH FIRST %d ROWS ONLY`, strings.ToUpper(table), limit)
	rs, err := dbConn.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query sample for %s: %w", table, err)
	}
	defer rs.Close()
	return source.RowsFromSQL(rs, limit)
}

func init() {
	source.Register("godror", oracleSampler{})
	source.Register("oracle", oracleSampler{})
}
