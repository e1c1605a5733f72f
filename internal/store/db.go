package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	driverDuckDB   = "duckdb"
	driverPostgres = "pgx"
)

// NewDB opens the backing store. A postgres:// or postgresql:// DSN selects PostgreSQL,
// anything else is a DuckDB path (":memory:" for an in-memory database).
func NewDB(dsn string) (*sql.DB, error) {
	driver := driverDuckDB
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = driverPostgres
	}
	if driver == driverDuckDB && dsn == ":memory:" {
		dsn = ""
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}
