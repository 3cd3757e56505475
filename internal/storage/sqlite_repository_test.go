package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/todocal/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todocal-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

// withClock makes creation times deterministic, one second apart.
func withClock(repo *SQLiteRepository, start time.Time) {
	next := start
	repo.now = func() time.Time {
		out := next
		next = next.Add(time.Second)
		return out
	}
}

func TestTodoCreateListToggleDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	withClock(repo, time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC))

	firstID, err := repo.CreateTodo(ctx, model.NewTodo{Title: "pay rent", DueDate: "2026-02-09"})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	secondID, err := repo.CreateTodo(ctx, model.NewTodo{Title: "gym", DueDate: "2026-02-10"})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if firstID == "" || firstID == secondID {
		t.Fatalf("expected distinct ids, got %q and %q", firstID, secondID)
	}

	list, err := repo.ListTodos(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(list) != 2 || list[0].ID != secondID || list[1].ID != firstID {
		t.Fatalf("expected newest first, got %#v", list)
	}
	if list[1].DisplayTitle() != "pay rent" || list[1].Done() || list[1].CreatedAt == nil {
		t.Fatalf("unexpected stored record: %#v", list[1])
	}

	if err := repo.SetCompleted(ctx, firstID, true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	got, err := repo.GetTodo(ctx, firstID)
	if err != nil {
		t.Fatalf("get todo: %v", err)
	}
	if !got.Done() || got.DisplayTitle() != "pay rent" || got.DisplayDueDate() != "2026-02-09" {
		t.Fatalf("expected only completion to change, got %#v", got)
	}

	if err := repo.DeleteTodo(ctx, firstID); err != nil {
		t.Fatalf("delete todo: %v", err)
	}
	if _, err := repo.GetTodo(ctx, firstID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestTodoMissingIDReturnsNotFound(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	if err := repo.SetCompleted(ctx, "missing", true); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if _, err := repo.GetTodo(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on get, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id, err := repo.CreateTodo(ctx, model.NewTodo{Title: "gone", DueDate: "2026-02-09"})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if err := repo.DeleteTodo(ctx, id); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := repo.DeleteTodo(ctx, id); err != nil {
		t.Fatalf("expected second delete to succeed, got %v", err)
	}
	if err := repo.DeleteTodo(ctx, "never-existed"); err != nil {
		t.Fatalf("expected delete of unknown id to succeed, got %v", err)
	}
}

func TestListTodosAppliesLimit(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	withClock(repo, time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC))
	for i := 0; i < 5; i++ {
		if _, err := repo.CreateTodo(ctx, model.NewTodo{Title: fmt.Sprintf("todo %d", i), DueDate: "2026-02-09"}); err != nil {
			t.Fatalf("create todo %d: %v", i, err)
		}
	}

	list, err := repo.ListTodos(ctx, ListFilter{Limit: 3})
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	if list[0].DisplayTitle() != "todo 4" {
		t.Fatalf("expected newest first, got %q", list[0].DisplayTitle())
	}
}

func TestListTodosToleratesMissingFields(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	if _, err := repo.db.ExecContext(ctx, `INSERT INTO todos (id) VALUES ('bare')`); err != nil {
		t.Fatalf("insert bare row: %v", err)
	}

	list, err := repo.ListTodos(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 record, got %d", len(list))
	}
	bare := list[0]
	if bare.Title != nil || bare.DueDate != nil || bare.IsCompleted != nil || bare.CreatedAt != nil {
		t.Fatalf("expected all optional fields absent, got %#v", bare)
	}
}

func TestCreationTimesSortChronologically(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	times := []time.Time{
		time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 9, 12, 0, 0, 500_000_000, time.UTC),
	}
	i := 0
	repo.now = func() time.Time {
		out := times[i]
		i++
		return out
	}
	whole, _ := repo.CreateTodo(ctx, model.NewTodo{Title: "whole second", DueDate: "2026-02-09"})
	frac, _ := repo.CreateTodo(ctx, model.NewTodo{Title: "half second", DueDate: "2026-02-09"})

	list, err := repo.ListTodos(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if list[0].ID != frac || list[1].ID != whole {
		t.Fatalf("expected fractional second to sort newest, got %#v", list)
	}
}
