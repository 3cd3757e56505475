package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todocal/internal/identity"
	"github.com/sandeepkv93/todocal/internal/logging"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/todos"
	"github.com/sandeepkv93/todocal/internal/views"
)

const appName = "todocal"

func (m Model) Init() tea.Cmd {
	return waitForSessionCmd(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case SessionChangedMsg:
		next, cmd := m.applySession(typed.Session)
		return next, tea.Batch(waitForSessionCmd(m.events), cmd)
	case sessionStreamClosedMsg:
		return m, nil
	case RepositoryOpenedMsg:
		if typed.UID != m.sessionUID() {
			if typed.Client != nil {
				_ = typed.Client.Close()
			}
			return m, nil
		}
		if typed.Err != nil {
			m.Loading = false
			return m, nil
		}
		m.client = typed.Client
		m.Loading = false
		return m, nil
	case TodosLoadedMsg:
		if typed.UID != m.sessionUID() {
			return m, nil
		}
		m.Loading = false
		if typed.Err == nil {
			m.Todos = typed.Todos
			m.clampCursor()
		}
		return m, nil
	case TodoAddedMsg:
		if typed.UID != m.sessionUID() || typed.Err != nil || !typed.Added {
			return m, nil
		}
		m.titleInput.Reset()
		m.Status = StatusBar{Text: "to-do added"}
		return m.startRefresh()
	case TodoToggledMsg:
		if typed.UID != m.sessionUID() || typed.Err != nil {
			return m, nil
		}
		m.Todos = model.WithCompleted(m.Todos, typed.ID, typed.Completed)
		return m, nil
	case TodoDeletedMsg:
		if typed.UID != m.sessionUID() || typed.Err != nil {
			return m, nil
		}
		m.Todos = model.WithoutID(m.Todos, typed.ID)
		m.clampCursor()
		return m, nil
	case LoginDoneMsg:
		m.Status = StatusBar{}
		return m, nil
	case LogoutDoneMsg:
		if typed.Err == nil {
			m.clearSession()
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

// applySession replaces the session state wholesale. A new user gets a
// fresh repository; nil drops the repository and the loaded list.
func (m Model) applySession(s *identity.Session) (Model, tea.Cmd) {
	m.metrics.ObserveSession(s != nil)
	if s == nil {
		m.clearSession()
		return m, nil
	}
	if m.Session != nil && m.Session.UID == s.UID && m.client != nil {
		m.Session = s
		return m, nil
	}
	m.closeClient()
	m.Session = s
	m.Todos = nil
	m.Cursor = 0
	m.logger.WithField(logging.KeyUID, logging.UIDPrefix(s.UID)).Info("session active")
	if m.open == nil {
		return m, nil
	}
	m.Loading = true
	return m, tea.Batch(openRepositoryCmd(m.ctx, m.open, s, m.clientOptions()), m.spinner.Tick)
}

func (m *Model) clearSession() {
	m.closeClient()
	m.Session = nil
	m.Todos = nil
	m.Cursor = 0
	m.Loading = false
	m.Editing = false
	m.titleInput.Reset()
	m.titleInput.Blur()
}

func (m *Model) closeClient() {
	if m.client == nil {
		return
	}
	if err := m.client.Close(); err != nil {
		m.logger.WithError(err).Warn("close repository failed")
	}
	m.client = nil
}

func (m Model) clientOptions() todos.Options {
	return todos.Options{
		Limit:   m.cfg.FetchLimit,
		Timeout: m.cfg.RequestTimeout,
		Logger:  m.logger,
		Metrics: m.metrics,
	}
}

func (m Model) startRefresh() (Model, tea.Cmd) {
	if m.client == nil {
		return m, nil
	}
	m.Loading = true
	return m, tea.Batch(refreshCmd(m.ctx, m.client), m.spinner.Tick)
}

func (m Model) startAdd(title string) (Model, tea.Cmd) {
	if m.client == nil || strings.TrimSpace(title) == "" {
		return m, nil
	}
	return m, addCmd(m.ctx, m.client, title, m.SelectedDate)
}

func (m Model) startToggle() (Model, tea.Cmd) {
	todo, ok := m.currentTodo()
	if !ok || m.client == nil {
		return m, nil
	}
	return m, toggleCmd(m.ctx, m.client, todo)
}

func (m Model) startDelete() (Model, tea.Cmd) {
	todo, ok := m.currentTodo()
	if !ok || m.client == nil {
		return m, nil
	}
	return m, deleteCmd(m.ctx, m.client, todo.ID)
}

func (m Model) startLogin() (Model, tea.Cmd) {
	if m.provider == nil {
		return m, nil
	}
	m.Status = StatusBar{Text: "signing in..."}
	return m, loginCmd(m.ctx, m.provider, m.logger, m.metrics)
}

func (m Model) startLogout() (Model, tea.Cmd) {
	if m.provider == nil || m.Session == nil {
		return m, nil
	}
	return m, logoutCmd(m.ctx, m.provider, m.logger, m.metrics)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		if keyStr == m.Keys.Help {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handlePaletteKey(msg)
	}
	if m.Editing {
		return m.handleTitleKey(msg)
	}

	switch keyStr {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	if m.Session == nil {
		if keyStr == m.Keys.Login || keyStr == "l" {
			return m.startLogin()
		}
		return m, nil
	}

	switch keyStr {
	case m.Keys.Logout:
		return m.startLogout()
	case m.Keys.Refresh:
		return m.startRefresh()
	case m.Keys.Add:
		m.Editing = true
		cmd := m.titleInput.Focus()
		return m, cmd
	case m.Keys.Toggle, "c":
		return m.startToggle()
	case m.Keys.Delete, "d":
		return m.startDelete()
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.VisibleTodos())-1 {
			m.Cursor++
		}
		return m, nil
	}
	return m.handleCalendarKey(msg), nil
}

func (m Model) handleTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Editing = false
		m.titleInput.Blur()
		return m, nil
	case "enter":
		m.Editing = false
		m.titleInput.Blur()
		return m.startAdd(m.titleInput.Value())
	}
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	overlay := strings.TrimSpace(strings.Join([]string{
		views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value()),
		m.renderHelpIfVisible(),
	}, "\n"))

	if m.Session == nil {
		parts := []string{views.RenderLoginPanel(views.LoginPanelData{
			AppName: appName,
			Hint:    fmt.Sprintf("backend: %s", m.Backend),
		})}
		for _, p := range []string{overlay, status, fmt.Sprintf("keys: enter sign in | / cmd | %s help | %s quit", m.Keys.Help, m.Keys.Quit)} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, "\n")
	}

	return views.RenderApp(views.AppData{
		Header:     views.RenderHeader(views.HeaderData{AppName: appName, UID: m.Session.UID, Backend: m.Backend}),
		LeftPane:   m.renderCalendarView(),
		RightPane:  m.renderTodoPane(),
		StatusLine: status,
		Overlay:    overlay,
		Footer:     fmt.Sprintf("keys: a add | space toggle | x delete | r refresh | o logout | / cmd | %s help | %s quit", m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderTodoPane() string {
	visible := m.VisibleTodos()
	items := make([]views.TodoItemData, 0, len(visible))
	for _, todo := range visible {
		items = append(items, views.TodoItemData{
			ID:      todo.ID,
			Title:   todo.DisplayTitle(),
			DueDate: todo.DisplayDueDate(),
			Done:    todo.Done(),
		})
	}
	add := views.RenderAddPanel(views.AddPanelData{
		Date:      m.SelectedDate,
		InputView: m.titleInput.View(),
		Editing:   m.Editing,
	})
	list := views.RenderTodoList(views.TodoListData{
		Date:        m.SelectedDate,
		Items:       items,
		Cursor:      m.Cursor,
		Loading:     m.Loading,
		SpinnerView: m.spinner.View(),
	})
	return add + "\n\n" + list
}
