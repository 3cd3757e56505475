package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrEmptyTitle  = errors.New("model: todo title is required")
	ErrInvalidDate = errors.New("model: invalid due date")
)

// Todo is a schemaless record as read back from the document store. Only ID
// is guaranteed; every other attribute may be absent.
type Todo struct {
	ID          string
	Title       *string
	DueDate     *string
	IsCompleted *bool
	CreatedAt   *time.Time
}

// NewTodo is the create payload. ID and creation time are assigned by the
// store.
type NewTodo struct {
	Title       string
	DueDate     string
	IsCompleted bool
}

func (n NewTodo) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if _, err := ParseDate(n.DueDate); err != nil {
		return err
	}
	return nil
}

// Normalize trims the title and due date.
func (n NewTodo) Normalize() NewTodo {
	n.Title = strings.TrimSpace(n.Title)
	n.DueDate = strings.TrimSpace(n.DueDate)
	return n
}

func (t Todo) DisplayTitle() string {
	if t.Title == nil || *t.Title == "" {
		return "(untitled)"
	}
	return *t.Title
}

func (t Todo) DisplayDueDate() string {
	if t.DueDate == nil || *t.DueDate == "" {
		return "-"
	}
	return *t.DueDate
}

func (t Todo) Done() bool {
	return t.IsCompleted != nil && *t.IsCompleted
}

func (t Todo) HasDueDate(date string) bool {
	return t.DueDate != nil && *t.DueDate == date
}

// Toggled returns the completion value a toggle writes. An absent flag counts
// as not completed.
func Toggled(current *bool) bool {
	return current == nil || !*current
}

// FilterByDate returns the records whose due date equals date, in list order.
func FilterByDate(todos []Todo, date string) []Todo {
	out := make([]Todo, 0)
	for _, t := range todos {
		if t.HasDueDate(date) {
			out = append(out, t)
		}
	}
	return out
}

// DatesWithTodos returns the set of due dates present in todos.
func DatesWithTodos(todos []Todo) map[string]bool {
	out := make(map[string]bool)
	for _, t := range todos {
		if t.DueDate != nil && *t.DueDate != "" {
			out[*t.DueDate] = true
		}
	}
	return out
}

func WithoutID(todos []Todo, id string) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// WithCompleted returns a copy of todos where the record with id has its
// completion flag set to done. Other fields and records are untouched.
func WithCompleted(todos []Todo, id string, done bool) []Todo {
	out := make([]Todo, len(todos))
	copy(out, todos)
	for i := range out {
		if out[i].ID == id {
			v := done
			out[i].IsCompleted = &v
		}
	}
	return out
}

func ParseDate(raw string) (time.Time, error) {
	tm, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return tm, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns now's calendar date in now's location.
func Today(now time.Time) string {
	return FormatDate(now)
}

func StringPtr(s string) *string { return &s }

func BoolPtr(b bool) *bool { return &b }
