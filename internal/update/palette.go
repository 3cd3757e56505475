package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todocal/internal/commands"
	"github.com/sandeepkv93/todocal/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.client == nil {
				return commands.Result{}, signInFirst()
			}
			m, next = m.startAdd(a.Title)
			return commands.Result{Message: fmt.Sprintf("adding %q for %s", a.Title, m.SelectedDate)}, nil
		},
		Date: func(d commands.DateArgs) (commands.Result, error) {
			date := d.Date
			if d.Today {
				date = model.Today(m.now())
			}
			m.selectDate(date)
			return commands.Result{Message: fmt.Sprintf("selected %s", date)}, nil
		},
		Refresh: func() (commands.Result, error) {
			if m.client == nil {
				return commands.Result{}, signInFirst()
			}
			m, next = m.startRefresh()
			return commands.Result{Message: "refreshing"}, nil
		},
		Login: func() (commands.Result, error) {
			if m.Session != nil {
				return commands.Result{Message: "already signed in"}, nil
			}
			m, next = m.startLogin()
			return commands.Result{Message: "signing in..."}, nil
		},
		Logout: func() (commands.Result, error) {
			if m.Session == nil {
				return commands.Result{Message: "not signed in"}, nil
			}
			m, next = m.startLogout()
			return commands.Result{Message: "signing out"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, next
}

func signInFirst() error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "sign in first"}
}
