package database

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DefaultPath returns ~/.config/baitwatch/baitwatch.db, creating the directory if needed.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(homeDir, ".config", "baitwatch")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "baitwatch.db"), nil
}

func InitDBWithSchema(schemaSQL string) (*sql.DB, *Queries, error) {
	dbPath, err := DefaultPath()
	if err != nil {
		return nil, nil, err
	}
	return OpenDB(dbPath, schemaSQL)
}

// OpenDB opens the sqlite database at dbPath and applies schemaSQL when non-empty.
func OpenDB(dbPath string, schemaSQL string) (*sql.DB, *Queries, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, nil, err
	}

	// single writer, no SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if schemaSQL != "" {
		if err := createTables(db, schemaSQL); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}

	queries := New(db)
	return db, queries, nil
}

func createTables(db *sql.DB, schemaSQL string) error {
	_, err := db.Exec(schemaSQL)
	return err
}
