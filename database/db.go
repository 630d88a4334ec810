package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite application database (render cache, jobs, logs)
type DB struct {
	App *sql.DB
}

// Initialize opens the SQLite database at appPath, creating its directory.
// ":memory:" is accepted for tests.
func Initialize(appPath string) (*DB, error) {
	if appPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(appPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", appPath, err)
		}
	}

	appDB, err := sql.Open("sqlite3", appPath)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; one connection also keeps :memory: shared
	appDB.SetMaxOpenConns(1)

	if appPath != ":memory:" {
		if _, err := appDB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			log.Printf("Warning: Failed to set WAL mode: %v", err)
		}
	}
	if err := appDB.Ping(); err != nil {
		appDB.Close()
		return nil, err
	}

	return &DB{App: appDB}, nil
}

func (db *DB) Close() {
	if db.App != nil {
		db.App.Close()
	}
}
