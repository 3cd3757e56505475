package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sandeepkv93/todocal/internal/model"
)

func TestDecodeTodoFullDocument(t *testing.T) {
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	got := decodeTodo("doc-1", map[string]interface{}{
		FieldTitle:       "pay rent",
		FieldDueDate:     "2026-02-09",
		FieldIsCompleted: true,
		FieldCreatedAt:   created,
	})
	if got.ID != "doc-1" || got.DisplayTitle() != "pay rent" || got.DisplayDueDate() != "2026-02-09" || !got.Done() {
		t.Fatalf("unexpected decode: %#v", got)
	}
	if got.CreatedAt == nil || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created at: %v", got.CreatedAt)
	}
}

func TestDecodeTodoMissingAndMistypedFields(t *testing.T) {
	got := decodeTodo("doc-2", map[string]interface{}{
		FieldTitle:       42,
		FieldIsCompleted: "yes",
		"unrelated":      "ignored",
	})
	if got.ID != "doc-2" {
		t.Fatalf("unexpected id: %q", got.ID)
	}
	if got.Title != nil || got.DueDate != nil || got.IsCompleted != nil || got.CreatedAt != nil {
		t.Fatalf("expected absent fields, got %#v", got)
	}
}

func TestMapFirestoreErr(t *testing.T) {
	if err := mapFirestoreErr("update todo", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := mapFirestoreErr("update todo", status.Error(codes.NotFound, "no doc")); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	base := status.Error(codes.PermissionDenied, "denied")
	err := mapFirestoreErr("update todo", base)
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestOpenFirestoreRequiresProject(t *testing.T) {
	if _, err := OpenFirestore(context.Background(), FirestoreConfig{}); err == nil {
		t.Fatal("expected error for missing project id")
	}
}

// Runs against the Firestore emulator only.
func TestFirestoreRepositoryAgainstEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	repo, err := OpenFirestore(ctx, FirestoreConfig{
		ProjectID:  "todocal-test",
		Collection: fmt.Sprintf("todos-%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("open firestore: %v", err)
	}
	defer repo.Close()

	id, err := repo.CreateTodo(ctx, model.NewTodo{Title: "emulated", DueDate: "2026-02-09"})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	list, err := repo.ListTodos(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(list) != 1 || list[0].ID != id || list[0].CreatedAt == nil {
		t.Fatalf("unexpected list: %#v", list)
	}
	if err := repo.SetCompleted(ctx, id, true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	got, err := repo.GetTodo(ctx, id)
	if err != nil || !got.Done() {
		t.Fatalf("expected completed record, got %#v err=%v", got, err)
	}
	if err := repo.DeleteTodo(ctx, id); err != nil {
		t.Fatalf("delete todo: %v", err)
	}
	if err := repo.DeleteTodo(ctx, id); err != nil {
		t.Fatalf("expected second delete to succeed, got %v", err)
	}
}
