package store

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestSqlWriterFeedsLogStore(t *testing.T) {
	db := setupTestDB(t)
	logger := zerolog.Nop()
	logs := NewLogStore(&logger, db)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to unwrap db handle: %v", err)
	}

	w := NewSqlWriter(sqlDB)
	event := `{"level":"info","time":1756400000,"caller":"app.go:42","message":"hello","request_id":"abc"}`
	if _, err := w.Write([]byte(event)); err != nil {
		t.Fatalf("failed to write log event: %v", err)
	}

	result, err := logs.GetPaginatedLogs(context.Background(), uuid.New(), 1, 10, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCount != 1 || len(result.Result) != 1 {
		t.Fatalf("expected 1 log entry, got %d", result.TotalCount)
	}

	entry := result.Result[0]
	if entry.Level != "info" || entry.Message != "hello" || entry.Timestamp != 1756400000 {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if string(entry.Fields) == "" {
		t.Fatal("expected extra fields to be retained")
	}
}

func TestGetPaginatedLogsLevelFilter(t *testing.T) {
	db := setupTestDB(t)
	logger := zerolog.Nop()
	logs := NewLogStore(&logger, db)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to unwrap db handle: %v", err)
	}

	w := NewSqlWriter(sqlDB)
	for _, event := range []string{
		`{"level":"info","time":1,"message":"a"}`,
		`{"level":"warn","time":2,"message":"b"}`,
		`{"level":"warn","time":3,"message":"c"}`,
	} {
		if _, err := w.Write([]byte(event)); err != nil {
			t.Fatalf("failed to write log event: %v", err)
		}
	}

	result, err := logs.GetPaginatedLogs(context.Background(), uuid.New(), 1, 10, "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCount != 2 {
		t.Fatalf("expected 2 warn entries, got %d", result.TotalCount)
	}
	// Newest first
	if result.Result[0].Message != "c" {
		t.Fatalf("expected newest entry first, got %+v", result.Result[0])
	}
}

func TestDeleteBefore(t *testing.T) {
	db := setupTestDB(t)
	logger := zerolog.Nop()
	logs := NewLogStore(&logger, db)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to unwrap db handle: %v", err)
	}

	old := time.Now().Add(-48 * time.Hour).Unix()
	fresh := time.Now().Unix()

	w := NewSqlWriter(sqlDB)
	for _, event := range []string{
		`{"level":"info","time":` + strconv.FormatInt(old, 10) + `,"message":"old"}`,
		`{"level":"info","time":` + strconv.FormatInt(fresh, 10) + `,"message":"fresh"}`,
	} {
		if _, err := w.Write([]byte(event)); err != nil {
			t.Fatalf("failed to write log event: %v", err)
		}
	}

	deleted, err := logs.DeleteBefore(context.Background(), uuid.New(), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 row pruned, got %d", deleted)
	}

	result, err := logs.GetPaginatedLogs(context.Background(), uuid.New(), 1, 10, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCount != 1 || result.Result[0].Message != "fresh" {
		t.Fatalf("expected only the fresh entry to remain, got %+v", result.Result)
	}
}
