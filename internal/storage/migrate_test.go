package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/todocal/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	id, err := repo.CreateTodo(context.Background(), model.NewTodo{Title: "Roundtrip todo", DueDate: "2026-02-09"})
	if err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetTodo(context.Background(), id)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.DisplayTitle() != "Roundtrip todo" {
		t.Fatalf("unexpected title after roundtrip: %q", got.DisplayTitle())
	}
}

func TestOpenSQLiteMigratesSchema(t *testing.T) {
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "open.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer repo.Close()

	list, err := repo.ListTodos(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("list on fresh db: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}
