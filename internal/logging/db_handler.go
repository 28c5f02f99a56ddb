package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"runtime"

	"github.com/baitwatch/baitwatch/internal/database"
)

// DatabaseHandler is a slog.Handler that stores every record in the log_messages table.
type DatabaseHandler struct {
	queries      *database.Queries
	debugEnabled bool
	attrs        []slog.Attr
	group        string
}

func NewDatabaseHandler(queries *database.Queries) *DatabaseHandler {
	return NewDatabaseHandlerWithDebug(queries, false)
}

func NewDatabaseHandlerWithDebug(queries *database.Queries, debug bool) *DatabaseHandler {
	return &DatabaseHandler{
		queries:      queries,
		debugEnabled: debug,
	}
}

func (h *DatabaseHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug && !h.debugEnabled {
		return false
	}
	return true
}

func (h *DatabaseHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := make(map[string]interface{})
	add := func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		// error values marshal to {} otherwise
		if err, ok := a.Value.Any().(error); ok {
			attrs[key] = err.Error()
		} else {
			attrs[key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(add)

	if r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		frame, _ := frames.Next()
		if frame.File != "" {
			attrs["source_file"] = frame.File
			attrs["source_line"] = frame.Line
		}
	}

	var attributesJSON sql.NullString
	if len(attrs) > 0 {
		jsonData, err := json.Marshal(attrs)
		if err != nil {
			return err
		}
		attributesJSON = sql.NullString{String: string(jsonData), Valid: true}
	}

	return h.queries.CreateLogMessage(ctx, database.CreateLogMessageParams{
		Level:      r.Level.String(),
		Message:    r.Message,
		Timestamp:  sql.NullTime{Time: r.Time, Valid: true},
		Attributes: attributesJSON,
	})
}

func (h *DatabaseHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *DatabaseHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}
