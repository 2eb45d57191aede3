package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-qa-backend/internal/config"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

func TestClassify(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).With().Str("request_id", "rid-1").Logger().WithContext(context.Background())

	if err := classify(ctx, "op", nil); err != nil {
		t.Fatalf("nil should stay nil, got %v", err)
	}
	if err := classify(ctx, "op", domain.ErrOutOfBounds); !errors.Is(err, domain.ErrOutOfBounds) {
		t.Fatalf("domain errors pass through, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be logged yet, got %s", buf.String())
	}

	cause := errors.New("disk I/O error")
	err := classify(ctx, "add_question", cause)
	if !errors.Is(err, domain.ErrDatabaseQuery) || !errors.Is(err, cause) {
		t.Fatalf("want DatabaseQueryError wrapping cause, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"request_id":"rid-1"`) || !strings.Contains(out, "disk I/O error") ||
		!strings.Contains(out, `"op":"add_question"`) || !strings.Contains(out, `"level":"error"`) {
		t.Fatalf("unexpected log line: %s", out)
	}
}

func TestSQLStore_ClosedPoolIsDatabaseQueryError(t *testing.T) {
	s := newSQL(t).(*SQLStore)
	sqlDB, _ := s.DB().DB()
	_ = sqlDB.Close()

	_, err := s.AddQuestion(context.Background(), domain.NewQuestion{Title: "t", Content: "c"})
	if !errors.Is(err, domain.ErrDatabaseQuery) {
		t.Fatalf("want ErrDatabaseQuery, got %v", err)
	}
	if _, err := s.GetQuestions(context.Background(), nil, 0); !errors.Is(err, domain.ErrDatabaseQuery) {
		t.Fatalf("want ErrDatabaseQuery, got %v", err)
	}
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()

	mem, err := Open(ctx, config.Config{StoreBackend: config.StoreMemory})
	if err != nil {
		t.Fatalf("Open memory: %v", err)
	}
	if _, ok := mem.(*MemoryStore); !ok {
		t.Fatalf("want *MemoryStore, got %T", mem)
	}

	cfg := config.Config{
		StoreBackend: config.StoreSQL,
		DB: config.DBConfig{
			Driver:   config.DriverSQLite,
			Path:     t.TempDir() + "/qa.db",
			MaxConns: 5,
		},
	}
	sqlStore, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open sql: %v", err)
	}
	t.Cleanup(func() { _ = sqlStore.Close() })
	if _, err := sqlStore.AddQuestion(ctx, domain.NewQuestion{Title: "t", Content: "c"}); err != nil {
		t.Fatalf("AddQuestion on opened store: %v", err)
	}

	if _, err := Open(ctx, config.Config{StoreBackend: "redis"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}

	bad := cfg
	bad.DB.Path = t.TempDir() + "/missing/qa.db"
	if _, err := Open(ctx, bad); err == nil {
		t.Fatalf("expected error for unreachable database")
	}
}
