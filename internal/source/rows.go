package source

import (
	"database/sql"
	"fmt"
	"time"

	"tabimport/internal/infer"
)

// RowsFromSQL scans every column of rs into row-records, up to limit rows
// as a guard for dialects whose limit clause was ignored. Driver values
// keep their scalar kind where possible; times render in a layout the
// date predicate recognizes.
func RowsFromSQL(rs *sql.Rows, limit int) ([]infer.Row, error) {
	cols, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	var rows []infer.Row
	for rs.Next() {
		if limit > 0 && len(rows) >= limit {
			break
		}
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(infer.Row, len(cols))
		for i, name := range cols {
			row[name] = cellFromValue(vals[i])
		}
		rows = append(rows, row)
	}
	return rows, rs.Err()
}

func cellFromValue(v any) infer.Cell {
	switch t := v.(type) {
	case nil:
		return infer.NullCell()
	case []byte:
		return infer.StringCell(string(t))
	case string:
		return infer.StringCell(t)
	case int64:
		return infer.IntCell(t)
	case float64:
		return infer.FloatCell(t)
	case bool:
		return infer.BoolCell(t)
	case time.Time:
		return infer.StringCell(t.Format("2006-01-02 15:04:05"))
	default:
		return infer.StringCell(fmt.Sprint(t))
	}
}
