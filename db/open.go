// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the database of the given type and verifies the
// connection.
func Open(dbType, url string) (*sql.DB, error) {
	var driver, dsn string
	switch dbType {
	case TypePostgres:
		driver, dsn = "postgres", url
	case TypeSQLite:
		driver, dsn = "sqlite", SQLiteDSN(url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbType == TypeSQLite {
		// SQLite allows one writer; a single connection queues writers in
		// the pool instead of failing them with SQLITE_BUSY.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// SQLiteDSN adds the connection options every SQLite connection needs:
// foreign keys (for ON DELETE CASCADE), a busy timeout for concurrent
// writers, and a sortable time format so timestamp comparisons in SQL
// order correctly.
func SQLiteDSN(path string) string {
	opts := []string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
		"_time_format=sqlite",
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(opts, "&")
}
