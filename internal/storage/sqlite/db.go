// Package sqlite implements storage.Repository on a local SQLite file via
// the CGo-free modernc.org/sqlite driver. It is the development fallback
// selected when DATABASE_URL is unset.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens (and creates if needed) the SQLite database file at path.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY
	// churn under concurrent requests.
	db.SetMaxOpenConns(1)
	return db, nil
}
