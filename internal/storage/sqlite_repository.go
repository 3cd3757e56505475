package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/todocal/internal/model"
)

// Fixed-width so that lexical order of stored values is chronological order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository keeps the to-do collection in a local sqlite file. Every
// column except id is nullable, mirroring the schemaless remote store.
type SQLiteRepository struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}, nil
}

// OpenSQLite opens path and brings its schema up to date.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTodo(ctx context.Context, in model.NewTodo) (string, error) {
	id := r.newID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (id, title, due_date, is_completed, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, in.Title, in.DueDate, boolInt(in.IsCompleted), mustTime(r.now()),
	)
	if err != nil {
		return "", fmt.Errorf("insert todo: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetTodo(ctx context.Context, id string) (model.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, due_date, is_completed, created_at
		FROM todos WHERE id = ?`, id)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, err
	}
	return todo, nil
}

func (r *SQLiteRepository) ListTodos(ctx context.Context, filter ListFilter) ([]model.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, due_date, is_completed, created_at
		FROM todos
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, filter.limit())
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	out := make([]model.Todo, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, todo)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SetCompleted(ctx context.Context, id string, done bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE todos SET is_completed = ? WHERE id = ?`, boolInt(done), id)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTodo(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableBool(v sql.NullInt64) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Int64 != 0
	return &b
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (model.Todo, error) {
	var out model.Todo
	var title, due, created sql.NullString
	var completed sql.NullInt64
	if err := s.Scan(&out.ID, &title, &due, &completed, &created); err != nil {
		return model.Todo{}, err
	}
	createdAt, err := parseNullableTime(created)
	if err != nil {
		return model.Todo{}, err
	}
	out.Title = nullableString(title)
	out.DueDate = nullableString(due)
	out.IsCompleted = nullableBool(completed)
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
