package logging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/baitwatch/baitwatch/internal/database"
)

func openTestQueries(t *testing.T) *database.Queries {
	t.Helper()
	schema, err := os.ReadFile(filepath.Join("..", "..", "sql", "schema.sql"))
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	db, queries, err := database.OpenDB(filepath.Join(t.TempDir(), "test.db"), string(schema))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return queries
}

func TestDatabaseHandlerStoresRecords(t *testing.T) {
	queries := openTestQueries(t)
	l := slog.New(NewDatabaseHandler(queries))

	l.Info("fetched page", "offset", 20, "error", errors.New("boom"))
	l.Debug("hidden without debug")

	logs, err := queries.GetLogMessages(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetLogMessages failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log message, got %d", len(logs))
	}
	if logs[0].Message != "fetched page" || logs[0].Level != "INFO" {
		t.Errorf("Unexpected log message: %+v", logs[0])
	}

	var attrs map[string]interface{}
	if err := json.Unmarshal([]byte(logs[0].Attributes.String), &attrs); err != nil {
		t.Fatalf("Attributes are not JSON: %v", err)
	}
	if attrs["error"] != "boom" {
		t.Errorf("Expected error attribute to be stringified, got %v", attrs["error"])
	}
	if attrs["offset"] != float64(20) {
		t.Errorf("Expected offset 20, got %v", attrs["offset"])
	}
}

func TestDatabaseHandlerDebugAndAttrs(t *testing.T) {
	queries := openTestQueries(t)
	l := slog.New(NewDatabaseHandlerWithDebug(queries, true)).With("component", "api")

	l.Debug("request sent")

	logs, err := queries.GetLogMessages(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetLogMessages failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("Expected debug message to be stored, got %d messages", len(logs))
	}

	var attrs map[string]interface{}
	if err := json.Unmarshal([]byte(logs[0].Attributes.String), &attrs); err != nil {
		t.Fatalf("Attributes are not JSON: %v", err)
	}
	if attrs["component"] != "api" {
		t.Errorf("Expected component attribute from With, got %v", attrs["component"])
	}
}

func TestHelpersWithoutLogger(t *testing.T) {
	SetLogger(nil)
	// must not panic
	Info("x")
	Warn("x")
	Error("x")
	Debug("x")
}
