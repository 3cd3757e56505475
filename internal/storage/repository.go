package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/todocal/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is a collection-scoped document store for to-do records. The
// store owns the authoritative copy and assigns ids and creation times.
// GetTodo and SetCompleted report ErrNotFound for unknown ids; DeleteTodo
// succeeds whether or not the record still exists.
type Repository interface {
	CreateTodo(ctx context.Context, in model.NewTodo) (string, error)
	GetTodo(ctx context.Context, id string) (model.Todo, error)
	ListTodos(ctx context.Context, filter ListFilter) ([]model.Todo, error)
	SetCompleted(ctx context.Context, id string, done bool) error
	DeleteTodo(ctx context.Context, id string) error
	Close() error
}
