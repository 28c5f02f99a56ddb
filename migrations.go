package main

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed sql/migrations/*.sql
var migrationsFS embed.FS

type migration struct {
	version int
	name    string
	file    string
}

// RunMigrations applies all pending embedded migrations and returns the
// versions it applied.
func RunMigrations(db *sql.DB) ([]int, error) {
	return runMigrationsFrom(db, migrationsFS, "sql/migrations")
}

func runMigrationsFrom(db *sql.DB, fsys fs.FS, dir string) ([]int, error) {
	migrations, err := listMigrations(fsys, dir)
	if err != nil {
		return nil, err
	}

	appliedVersions, err := getAppliedMigrations(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	var applied []int
	for _, m := range migrations {
		if appliedVersions[m.version] {
			continue
		}

		body, err := fs.ReadFile(fsys, path.Join(dir, m.file))
		if err != nil {
			return applied, fmt.Errorf("failed to read migration %s: %w", m.file, err)
		}
		if err := applyMigration(db, m.version, string(body)); err != nil {
			return applied, fmt.Errorf("failed to apply migration %s: %w", m.file, err)
		}
		applied = append(applied, m.version)
	}

	return applied, nil
}

// listMigrations returns the XXXXXX_name.sql files in dir ordered by version.
func listMigrations(fsys fs.FS, dir string) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []migration
	seen := make(map[int]string)
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(fileName, ".sql") {
			continue
		}

		prefix, rest, ok := strings.Cut(fileName, "_")
		if !ok {
			return nil, fmt.Errorf("invalid migration filename format: %s", fileName)
		}

		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version in %s: %w", fileName, err)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, other, fileName)
		}
		seen[version] = fileName

		migrations = append(migrations, migration{
			version: version,
			name:    strings.TrimSuffix(rest, ".sql"),
			file:    fileName,
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})
	return migrations, nil
}

func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func applyMigration(db *sql.DB, version int, body string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(body); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version) VALUES (?)",
		version,
	); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}
