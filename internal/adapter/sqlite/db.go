// Package sqlite stores cached dictionary lookups in a local SQLite file.
package sqlite

import (
	"context"
	"embed"
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/schema.sql
var sqlFiles embed.FS

// NewPool opens a connection pool on dbPath, creating the file if needed.
// Connections are opened in WAL mode with a busy timeout so that concurrent
// writers wait instead of failing.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool("file:"+dbPath, sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
		PrepareConn: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteTransient(conn, "PRAGMA busy_timeout = 5000;", nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: open pool at %s: %w", dbPath, err)
	}
	return pool, nil
}

// CreateSchema runs the embedded schema script.
func CreateSchema(ctx context.Context, pool *sqlitex.Pool) error {
	script, err := sqlFiles.ReadFile("sql/schema.sql")
	if err != nil {
		return fmt.Errorf("sqlite: read schema: %w", err)
	}

	conn, err := pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("sqlite: take conn: %w", err)
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
		return fmt.Errorf("sqlite: create schema: %w", err)
	}
	return nil
}
