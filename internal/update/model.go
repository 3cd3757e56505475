package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sirupsen/logrus"

	"github.com/sandeepkv93/todocal/internal/identity"
	"github.com/sandeepkv93/todocal/internal/instrumentation"
	"github.com/sandeepkv93/todocal/internal/logging"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/storage"
	"github.com/sandeepkv93/todocal/internal/todos"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Login   string
	Logout  string
	Refresh string
	Add     string
	Toggle  string
	Delete  string
	Today   string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Deps are the collaborators the model drives. Provider and Open are
// required; the rest fall back to no-op implementations.
type Deps struct {
	Context  context.Context
	Provider identity.Provider
	Open     storage.Opener
	Logger   logrus.FieldLogger
	Metrics  *instrumentation.Metrics
	Now      func() time.Time
}

type Model struct {
	Session      *identity.Session
	Todos        []model.Todo
	SelectedDate string
	Loading      bool
	Cursor       int
	Editing      bool
	Palette      CommandPaletteState
	HelpVisible  bool
	Status       StatusBar
	Keys         GlobalKeyMap
	Backend      string
	Quitting     bool

	ctx         context.Context
	provider    identity.Provider
	open        storage.Opener
	client      *todos.Client
	events      <-chan identity.Event
	unsubscribe func()
	logger      logrus.FieldLogger
	metrics     *instrumentation.Metrics
	cfg         RuntimeConfig
	now         func() time.Time

	titleInput   textinput.Model
	commandInput textinput.Model
	spinner      spinner.Model
	helpModel    help.Model
}

// SessionChangedMsg carries a provider notification. A nil Session means
// the user is signed out.
type SessionChangedMsg struct {
	Session *identity.Session
}

type sessionStreamClosedMsg struct{}

type RepositoryOpenedMsg struct {
	UID    string
	Client *todos.Client
	Err    error
}

type TodosLoadedMsg struct {
	UID   string
	Todos []model.Todo
	Err   error
}

type TodoAddedMsg struct {
	UID   string
	Added bool
	Err   error
}

type TodoToggledMsg struct {
	UID       string
	ID        string
	Completed bool
	Err       error
}

type TodoDeletedMsg struct {
	UID string
	ID  string
	Err error
}

type LoginDoneMsg struct {
	Err error
}

type LogoutDoneMsg struct {
	Err error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(deps Deps) Model {
	return NewModelWithConfig(deps, DefaultRuntimeConfig())
}

func NewModelWithConfig(deps Deps, cfg RuntimeConfig) Model {
	m := Model{
		Keys: GlobalKeyMap{
			Login:   "enter",
			Logout:  "o",
			Refresh: "r",
			Add:     "a",
			Toggle:  " ",
			Delete:  "x",
			Today:   "t",
			Help:    "?",
			Quit:    "q",
		},
		Backend:  cfg.Backend,
		ctx:      deps.Context,
		provider: deps.Provider,
		open:     deps.Open,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		cfg:      cfg,
		now:      deps.Now,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.SelectedDate = model.Today(m.now())
	if m.provider != nil {
		m.events, m.unsubscribe = m.provider.Subscribe(cfg.SessionBuffer)
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "new to-do title"
	m.titleInput.CharLimit = 200
	m.titleInput.Prompt = "> "

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add <title> | date <YYYY-MM-DD|today> | refresh | login | logout"
	m.commandInput.Prompt = "/"

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}

// Close stops the session subscription and releases the open repository.
func (m Model) Close() error {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

// VisibleTodos is the loaded list narrowed to the selected date.
func (m Model) VisibleTodos() []model.Todo {
	return model.FilterByDate(m.Todos, m.SelectedDate)
}

func (m Model) currentTodo() (model.Todo, bool) {
	visible := m.VisibleTodos()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Todo{}, false
	}
	return visible[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.VisibleTodos())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) sessionUID() string {
	if m.Session == nil {
		return ""
	}
	return m.Session.UID
}
