package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/sandeepkv93/todocal/internal/identity"
	"github.com/sandeepkv93/todocal/internal/instrumentation"
	"github.com/sandeepkv93/todocal/internal/logging"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/storage"
	"github.com/sandeepkv93/todocal/internal/todos"
)

func waitForSessionCmd(ch <-chan identity.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return sessionStreamClosedMsg{}
		}
		return SessionChangedMsg{Session: ev.Session}
	}
}

func openRepositoryCmd(ctx context.Context, open storage.Opener, session *identity.Session, opts todos.Options) tea.Cmd {
	return func() tea.Msg {
		repo, err := open(ctx, session)
		if err != nil {
			logging.Operation(opts.Logger, "open_repository").
				WithField(logging.KeyUID, logging.UIDPrefix(session.UID)).
				WithError(err).Warn("open repository failed")
			return RepositoryOpenedMsg{UID: session.UID, Err: err}
		}
		return RepositoryOpenedMsg{UID: session.UID, Client: todos.NewClient(repo, session, opts)}
	}
}

func refreshCmd(ctx context.Context, client *todos.Client) tea.Cmd {
	uid := client.Session().UID
	return func() tea.Msg {
		list, err := client.Refresh(ctx)
		return TodosLoadedMsg{UID: uid, Todos: list, Err: err}
	}
}

func addCmd(ctx context.Context, client *todos.Client, title, dueDate string) tea.Cmd {
	uid := client.Session().UID
	return func() tea.Msg {
		added, err := client.Add(ctx, title, dueDate)
		return TodoAddedMsg{UID: uid, Added: added, Err: err}
	}
}

func toggleCmd(ctx context.Context, client *todos.Client, todo model.Todo) tea.Cmd {
	uid := client.Session().UID
	return func() tea.Msg {
		completed, err := client.Toggle(ctx, todo)
		return TodoToggledMsg{UID: uid, ID: todo.ID, Completed: completed, Err: err}
	}
}

func deleteCmd(ctx context.Context, client *todos.Client, id string) tea.Cmd {
	uid := client.Session().UID
	return func() tea.Msg {
		err := client.Delete(ctx, id)
		return TodoDeletedMsg{UID: uid, ID: id, Err: err}
	}
}

func loginCmd(ctx context.Context, p identity.Provider, logger logrus.FieldLogger, metrics *instrumentation.Metrics) tea.Cmd {
	return func() tea.Msg {
		_, err := todos.Login(ctx, p, logger, metrics)
		return LoginDoneMsg{Err: err}
	}
}

func logoutCmd(ctx context.Context, p identity.Provider, logger logrus.FieldLogger, metrics *instrumentation.Metrics) tea.Cmd {
	return func() tea.Msg {
		return LogoutDoneMsg{Err: todos.Logout(ctx, p, logger, metrics)}
	}
}
