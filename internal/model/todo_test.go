package model

import (
	"errors"
	"testing"
	"time"
)

func sampleTodos() []Todo {
	return []Todo{
		{ID: "a", Title: StringPtr("pay rent"), DueDate: StringPtr("2026-02-09"), IsCompleted: BoolPtr(false)},
		{ID: "b", Title: StringPtr("gym"), DueDate: StringPtr("2026-02-10")},
		{ID: "c", DueDate: StringPtr("2026-02-09"), IsCompleted: BoolPtr(true)},
		{ID: "d", Title: StringPtr("no date")},
	}
}

func TestNewTodoValidate(t *testing.T) {
	if err := (NewTodo{Title: "write docs", DueDate: "2026-02-09"}).Validate(); err != nil {
		t.Fatalf("expected valid payload, got error: %v", err)
	}

	err := (NewTodo{Title: "   ", DueDate: "2026-02-09"}).Validate()
	if !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}

	err = (NewTodo{Title: "x", DueDate: "09/02/2026"}).Validate()
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestNewTodoNormalizeTrims(t *testing.T) {
	got := NewTodo{Title: "  buy milk \t", DueDate: " 2026-02-09 "}.Normalize()
	if got.Title != "buy milk" || got.DueDate != "2026-02-09" {
		t.Fatalf("unexpected normalized payload: %#v", got)
	}
}

func TestFilterByDateMatchesExactly(t *testing.T) {
	got := FilterByDate(sampleTodos(), "2026-02-09")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected filter result: %#v", got)
	}

	empty := FilterByDate(sampleTodos(), "2030-01-01")
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestWithoutIDRemovesOnlyTarget(t *testing.T) {
	got := WithoutID(sampleTodos(), "b")
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	for _, item := range got {
		if item.ID == "b" {
			t.Fatal("expected b to be removed")
		}
	}
}

func TestWithCompletedKeepsOtherFields(t *testing.T) {
	src := sampleTodos()
	got := WithCompleted(src, "b", true)
	if !got[1].Done() {
		t.Fatal("expected b to be completed")
	}
	if got[1].DisplayTitle() != "gym" || got[1].DisplayDueDate() != "2026-02-10" {
		t.Fatalf("unexpected field change: %#v", got[1])
	}
	if src[1].IsCompleted != nil {
		t.Fatal("expected source slice untouched")
	}
	if got[0].Done() || !got[2].Done() {
		t.Fatal("expected other records untouched")
	}
}

func TestToggledTreatsMissingAsOpen(t *testing.T) {
	if !Toggled(nil) {
		t.Fatal("expected nil to toggle to true")
	}
	if Toggled(BoolPtr(true)) {
		t.Fatal("expected true to toggle to false")
	}
	if !Toggled(BoolPtr(false)) {
		t.Fatal("expected false to toggle to true")
	}
}

func TestDisplayFallbacks(t *testing.T) {
	var todo Todo
	if todo.DisplayTitle() != "(untitled)" {
		t.Fatalf("unexpected title fallback: %q", todo.DisplayTitle())
	}
	if todo.DisplayDueDate() != "-" {
		t.Fatalf("unexpected due fallback: %q", todo.DisplayDueDate())
	}
	if todo.Done() {
		t.Fatal("expected missing flag to read as open")
	}
}

func TestTodayAndDatesWithTodos(t *testing.T) {
	now := time.Date(2026, 2, 9, 23, 30, 0, 0, time.UTC)
	if Today(now) != "2026-02-09" {
		t.Fatalf("unexpected today: %s", Today(now))
	}
	dates := DatesWithTodos(sampleTodos())
	if len(dates) != 2 || !dates["2026-02-09"] || !dates["2026-02-10"] {
		t.Fatalf("unexpected dates: %#v", dates)
	}
}
