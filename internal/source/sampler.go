// Package source samples rows from live SQL databases as row-records, so
// a table's declared schema can be compared with what inference sees in
// its data. Dialect implementations live in source/samplers and register
// themselves at init time.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"tabimport/internal/infer"
	"tabimport/pkg/config"
)

type Sampler interface {

	// Tables lists the user tables visible on the connection.
	Tables(ctx context.Context, db *sql.DB) ([]string, error)

	// Sample reads up to limit rows from table as row-records.
	Sample(ctx context.Context, db *sql.DB, table string, limit int) ([]infer.Row, error)
}

var dialects = map[string]Sampler{}

// Register makes a Sampler available under name.
func Register(name string, s Sampler) {
	dialects[strings.ToLower(name)] = s
}

// listRegistered returns the registered dialect keys (for diagnostics).
func listRegistered() []string {
	keys := make([]string, 0, len(dialects))
	for k := range dialects {
		keys = append(keys, k)
	}
	return keys
}

// RegisteredDialects is a helper that allows main to print registered dialects
func RegisteredDialects() []string {
	return listRegistered()
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdent reports whether name is safe to interpolate as a quoted
// identifier. Samplers build their queries by interpolation, so anything
// else is rejected before a query is formed.
func ValidIdent(name string) bool {
	return identRe.MatchString(name)
}

func connect(driver, dsn string, timeoutSec int) (Sampler, *sql.DB, context.Context, context.CancelFunc, error) {
	driver = config.NormalizeDriver(driver)
	sampler, ok := dialects[driver]
	if !ok {
		return nil, nil, nil, nil, fmt.Errorf("dialect not registered: %q (available: %v)", driver, listRegistered())
	}
	dbConn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	if err := dbConn.PingContext(ctx); err != nil {
		cancel()
		dbConn.Close()
		return nil, nil, nil, nil, err
	}
	return sampler, dbConn, ctx, cancel, nil
}

// ConnectAndListTables connects to the database and lists its user tables.
func ConnectAndListTables(driver, dsn string, timeoutSec int) ([]string, error) {
	sampler, dbConn, ctx, cancel, err := connect(driver, dsn, timeoutSec)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer dbConn.Close()
	return sampler.Tables(ctx, dbConn)
}

// ConnectAndSample connects to the database and samples up to limit rows
// from table.
func ConnectAndSample(driver, dsn, table string, limit, timeoutSec int) ([]infer.Row, error) {
	if !ValidIdent(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}
	if limit <= 0 {
		limit = infer.DefaultSampleSize
	}
	sampler, dbConn, ctx, cancel, err := connect(driver, dsn, timeoutSec)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer dbConn.Close()
	return sampler.Sample(ctx, dbConn, table, limit)
}
