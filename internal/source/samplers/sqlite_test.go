package samplers

import (
	"context"
	"database/sql"
	"testing"

	"tabimport/internal/infer"
)

// openTestDB seeds an in-memory SQLite database with a small orders table.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbConn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// one pooled connection, or each new connection sees a fresh memory db
	dbConn.SetMaxOpenConns(1)
	t.Cleanup(func() { dbConn.Close() })

	stmts := []string{
		`CREATE TABLE orders (id INTEGER, ref TEXT, total REAL, shipped TEXT, note TEXT)`,
		`INSERT INTO orders VALUES (1, 'A-100', 19.99, '2024-01-05', NULL)`,
		`INSERT INTO orders VALUES (2, 'A-101', 5.00, '2024-01-06', 'rush')`,
		`INSERT INTO orders VALUES (3, 'A-102', 12.50, '2024-01-07', NULL)`,
	}
	for _, s := range stmts {
		if _, err := dbConn.Exec(s); err != nil {
			t.Fatalf("seed db: %v", err)
		}
	}
	return dbConn
}

func TestSqliteTables(t *testing.T) {
	dbConn := openTestDB(t)

	tables, err := sqliteSampler{}.Tables(context.Background(), dbConn)
	if err != nil {
		t.Fatalf("\ngot unexpected error: \"%v\"", err)
	}
	if !(len(tables) == 1 && tables[0] == "orders") {
		t.Errorf("\nTables returned unexpected result %v", tables)
	}
}

func TestSqliteSample(t *testing.T) {
	dbConn := openTestDB(t)

	rows, err := sqliteSampler{}.Sample(context.Background(), dbConn, "orders", 2)
	if err != nil {
		t.Fatalf("\ngot unexpected error: \"%v\"", err)
	}
	if len(rows) != 2 {
		t.Fatalf("\ngot %d rows, wanted 2", len(rows))
	}
	if rows[0]["ref"] != infer.StringCell("A-100") {
		t.Errorf("\ngot ref cell %v, wanted A-100", rows[0]["ref"])
	}
	if rows[0]["note"].Kind != infer.KindNull {
		t.Errorf("\ngot note kind %v, wanted null", rows[0]["note"].Kind)
	}
}

func TestSqliteSampleInference(t *testing.T) {
	dbConn := openTestDB(t)

	rows, err := sqliteSampler{}.Sample(context.Background(), dbConn, "orders", 10)
	if err != nil {
		t.Fatalf("\ngot unexpected error: \"%v\"", err)
	}

	schema := infer.InferSchema(rows, 0)
	byName := make(map[string]infer.Column, len(schema))
	for _, col := range schema {
		byName[col.Name] = col
	}

	var tests = []struct {
		column   string
		typ      string
		nullable bool
	}{
		{"id", infer.TypeInteger, false},
		{"total", infer.TypeNumber, false},
		{"shipped", infer.TypeDate, false},
		{"note", infer.TypeCategorical, true},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			col, ok := byName[tt.column]
			if !ok {
				t.Fatalf("\nno descriptor for column %q in %v", tt.column, schema)
			}
			if col.Type != tt.typ {
				t.Errorf("\ngot type %v, wanted %v", col.Type, tt.typ)
			}
			if col.Nullable != tt.nullable {
				t.Errorf("\ngot nullable %v, wanted %v", col.Nullable, tt.nullable)
			}
		})
	}
}
