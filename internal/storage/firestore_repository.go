package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sandeepkv93/todocal/internal/model"
)

type FirestoreConfig struct {
	ProjectID  string
	Collection string
	// TokenSource authorizes requests on behalf of the signed-in user. Nil
	// falls back to application default credentials or the emulator.
	TokenSource oauth2.TokenSource
}

// FirestoreRepository stores to-do records as documents of one collection.
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
}

func OpenFirestore(ctx context.Context, cfg FirestoreConfig) (*FirestoreRepository, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("storage: firestore project id is required")
	}
	opts := make([]option.ClientOption, 0, 1)
	if cfg.TokenSource != nil {
		opts = append(opts, option.WithTokenSource(cfg.TokenSource))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("open firestore: %w", err)
	}
	return NewFirestoreRepository(client, cfg.Collection), nil
}

func NewFirestoreRepository(client *firestore.Client, collection string) *FirestoreRepository {
	if strings.TrimSpace(collection) == "" {
		collection = DefaultCollection
	}
	return &FirestoreRepository{client: client, collection: collection}
}

func (r *FirestoreRepository) Close() error {
	return r.client.Close()
}

func (r *FirestoreRepository) CreateTodo(ctx context.Context, in model.NewTodo) (string, error) {
	ref, _, err := r.client.Collection(r.collection).Add(ctx, map[string]interface{}{
		FieldTitle:       in.Title,
		FieldDueDate:     in.DueDate,
		FieldIsCompleted: in.IsCompleted,
		FieldCreatedAt:   firestore.ServerTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("add todo: %w", err)
	}
	return ref.ID, nil
}

func (r *FirestoreRepository) GetTodo(ctx context.Context, id string) (model.Todo, error) {
	doc, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		return model.Todo{}, mapFirestoreErr("get todo", err)
	}
	return decodeTodo(doc.Ref.ID, doc.Data()), nil
}

func (r *FirestoreRepository) ListTodos(ctx context.Context, filter ListFilter) ([]model.Todo, error) {
	iter := r.client.Collection(r.collection).
		OrderBy(FieldCreatedAt, firestore.Desc).
		Limit(filter.limit()).
		Documents(ctx)
	defer iter.Stop()

	out := make([]model.Todo, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list todos: %w", err)
		}
		out = append(out, decodeTodo(doc.Ref.ID, doc.Data()))
	}
	return out, nil
}

func (r *FirestoreRepository) SetCompleted(ctx context.Context, id string, done bool) error {
	_, err := r.client.Collection(r.collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: FieldIsCompleted, Value: done},
	})
	return mapFirestoreErr("update todo", err)
}

func (r *FirestoreRepository) DeleteTodo(ctx context.Context, id string) error {
	_, err := r.client.Collection(r.collection).Doc(id).Delete(ctx)
	return mapFirestoreErr("delete todo", err)
}

func mapFirestoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// decodeTodo maps a schemaless document onto a Todo. Missing or mistyped
// fields decode as absent.
func decodeTodo(id string, data map[string]interface{}) model.Todo {
	out := model.Todo{ID: id}
	if v, ok := data[FieldTitle].(string); ok {
		out.Title = &v
	}
	if v, ok := data[FieldDueDate].(string); ok {
		out.DueDate = &v
	}
	if v, ok := data[FieldIsCompleted].(bool); ok {
		out.IsCompleted = &v
	}
	if v, ok := data[FieldCreatedAt].(time.Time); ok {
		out.CreatedAt = &v
	}
	return out
}
