package todos

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sandeepkv93/todocal/internal/identity"
	"github.com/sandeepkv93/todocal/internal/instrumentation"
	"github.com/sandeepkv93/todocal/internal/logging"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/storage"
)

// Operation names used for logs and metrics.
const (
	OpRefresh = "refresh"
	OpGet     = "get"
	OpAdd     = "add"
	OpToggle  = "toggle"
	OpDelete  = "delete"
	OpLogin   = "login"
	OpLogout  = "logout"
)

type Options struct {
	Limit   int
	Timeout time.Duration
	Logger  logrus.FieldLogger
	Metrics *instrumentation.Metrics
}

// Client issues one remote call per operation on behalf of a session. Every
// failure is logged and counted at the call site and returned so the caller
// can leave its local state untouched.
type Client struct {
	repo    storage.Repository
	session *identity.Session
	limit   int
	timeout time.Duration
	logger  logrus.FieldLogger
	metrics *instrumentation.Metrics
}

func NewClient(repo storage.Repository, session *identity.Session, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = storage.DefaultListLimit
	}
	if session != nil {
		logger = logger.WithField(logging.KeyUID, logging.UIDPrefix(session.UID))
	}
	return &Client{
		repo:    repo,
		session: session,
		limit:   limit,
		timeout: opts.Timeout,
		logger:  logger,
		metrics: opts.Metrics,
	}
}

func (c *Client) Session() *identity.Session {
	return c.session
}

func (c *Client) Close() error {
	if c.repo == nil {
		return nil
	}
	return c.repo.Close()
}

// Refresh returns up to the configured cap of records, newest first.
func (c *Client) Refresh(ctx context.Context) ([]model.Todo, error) {
	if c.session == nil || c.repo == nil {
		return nil, identity.ErrNoSession
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	list, err := c.repo.ListTodos(ctx, storage.ListFilter{Limit: c.limit})
	c.observe(OpRefresh, started, err)
	if err != nil {
		logging.Operation(c.logger, OpRefresh).WithError(err).Warn("fetch todos failed")
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{logging.KeyOperation: OpRefresh, logging.KeyCount: len(list)}).Debug("todos fetched")
	return list, nil
}

// Get fetches one record by id.
func (c *Client) Get(ctx context.Context, id string) (model.Todo, error) {
	if c.session == nil || c.repo == nil {
		return model.Todo{}, identity.ErrNoSession
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	todo, err := c.repo.GetTodo(ctx, id)
	c.observe(OpGet, started, err)
	if err != nil {
		logging.Operation(c.logger, OpGet).WithField(logging.KeyTodoID, id).WithError(err).Warn("get todo failed")
		return model.Todo{}, err
	}
	return todo, nil
}

// Add creates a record due on dueDate. It reports false without calling the
// store when there is no session or the trimmed title is empty.
func (c *Client) Add(ctx context.Context, title, dueDate string) (bool, error) {
	in := model.NewTodo{Title: title, DueDate: dueDate}.Normalize()
	if c.session == nil || c.repo == nil || strings.TrimSpace(in.Title) == "" {
		return false, nil
	}
	if err := in.Validate(); err != nil {
		logging.Operation(c.logger, OpAdd).WithError(err).Warn("add todo rejected")
		return false, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	id, err := c.repo.CreateTodo(ctx, in)
	c.observe(OpAdd, started, err)
	if err != nil {
		logging.Operation(c.logger, OpAdd).WithError(err).Warn("add todo failed")
		return false, err
	}
	c.logger.WithFields(logrus.Fields{logging.KeyOperation: OpAdd, logging.KeyTodoID: id, logging.KeyDate: in.DueDate}).Info("todo added")
	return true, nil
}

// Toggle flips the record's completion flag remotely and returns the value
// written.
func (c *Client) Toggle(ctx context.Context, todo model.Todo) (bool, error) {
	if c.session == nil || c.repo == nil {
		return false, identity.ErrNoSession
	}
	next := model.Toggled(todo.IsCompleted)
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	err := c.repo.SetCompleted(ctx, todo.ID, next)
	c.observe(OpToggle, started, err)
	if err != nil {
		logging.Operation(c.logger, OpToggle).WithField(logging.KeyTodoID, todo.ID).WithError(err).Warn("toggle complete failed")
		return false, err
	}
	return next, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if c.session == nil || c.repo == nil {
		return identity.ErrNoSession
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	err := c.repo.DeleteTodo(ctx, id)
	c.observe(OpDelete, started, err)
	if err != nil {
		logging.Operation(c.logger, OpDelete).WithField(logging.KeyTodoID, id).WithError(err).Warn("delete todo failed")
		return err
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) observe(op string, started time.Time, err error) {
	c.metrics.ObserveRemote(op, started, err)
}
