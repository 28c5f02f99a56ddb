package main

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/baitwatch/baitwatch/internal/database"
)

func TestRunMigrationsOnFreshDatabase(t *testing.T) {
	db, queries, err := database.OpenDB(filepath.Join(t.TempDir(), "test.db"), schemaSQL)
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer func() { _ = db.Close() }()

	applied, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	if len(applied) == 0 || applied[0] != 1 {
		t.Fatalf("expected migration 1 to be applied, got %v", applied)
	}

	// read_articles gained the source column
	ctx := context.Background()
	if err := queries.MarkArticleRead(ctx, database.MarkArticleReadParams{
		ArticleID: "a1",
		Source:    "onet",
		ReadAt:    time.Now(),
	}); err != nil {
		t.Fatalf("MarkArticleRead after migration: %v", err)
	}

	again, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("second RunMigrations: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("expected no migrations on second run, got %v", again)
	}
}

func TestRunMigrationsOrdersByVersion(t *testing.T) {
	db, _, err := database.OpenDB(filepath.Join(t.TempDir(), "test.db"), "")
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer func() { _ = db.Close() }()

	fsys := fstest.MapFS{
		"m/000010_second.sql": {Data: []byte("ALTER TABLE t ADD COLUMN b TEXT;")},
		"m/000002_first.sql":  {Data: []byte("CREATE TABLE t (a TEXT);")},
		"m/README.md":         {Data: []byte("ignored")},
	}

	applied, err := runMigrationsFrom(db, fsys, "m")
	if err != nil {
		t.Fatalf("runMigrationsFrom: %v", err)
	}
	if len(applied) != 2 || applied[0] != 2 || applied[1] != 10 {
		t.Errorf("expected [2 10], got %v", applied)
	}
}

func TestListMigrationsRejectsBadNames(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"no underscore": {"m/000001.sql": {Data: []byte("")}},
		"bad version":   {"m/abc_thing.sql": {Data: []byte("")}},
		"duplicate": {
			"m/000001_a.sql": {Data: []byte("")},
			"m/1_b.sql":      {Data: []byte("")},
		},
	}
	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := listMigrations(fsys, "m"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestFailedMigrationIsNotRecorded(t *testing.T) {
	db, _, err := database.OpenDB(filepath.Join(t.TempDir(), "test.db"), "")
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer func() { _ = db.Close() }()

	fsys := fstest.MapFS{
		"m/000001_broken.sql": {Data: []byte("THIS IS NOT SQL;")},
	}
	if _, err := runMigrationsFrom(db, fsys, "m"); err == nil {
		t.Fatal("expected an error")
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		t.Fatalf("getAppliedMigrations: %v", err)
	}
	if applied[1] {
		t.Error("failed migration should not be recorded")
	}
}
