package samplers

import (
	"context"
	"database/sql"
	"fmt"

	"tabimport/internal/infer"
	"tabimport/internal/source"
)

// mssqlSampler implements Sampler for SQL Server.
type mssqlSampler struct{}

// This is the sampler for SQL Server
func (mssqlSampler) Tables(ctx context.Context, dbConn *sql.DB) ([]string, error) {
	rows, err := dbConn.QueryContext(ctx, `
        SELECT TABLE_NAME
        FROM INFORMATION_SCHEMA.TABLES
        WHERE TABLE_TYPE = 'BASE TABLE'
        ORDER BY TABLE_SCHEMA, TABLE_NAME`)
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

func (mssqlSampler) Sample(ctx context.Context, dbConn *sql.DB, table string, limit int) ([]infer.Row, error) {
	q := fmt.Sprintf("SELECT TOP (%d) * FROM [%s]", limit, table)
	rs, err := dbConn.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query sample for %s: %w", table, err)
	}
	defer rs.Close()
	return source.RowsFromSQL(rs, limit)
}

func init() {
	source.Register("sqlserver", mssqlSampler{})
	source.Register("mssql", mssqlSampler{})
}
