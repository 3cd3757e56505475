package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/todocal/internal/views"
)

const helpMarkdown = "# todocal\n\n" +
	"Pick a date on the calendar, then add to-dos due on that day. " +
	"Dates marked with `*` have to-dos.\n\n" +
	"Palette commands: `add <title>`, `date <YYYY-MM-DD|today>`, `refresh`, `login`, `logout`."

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.helpBindings()
	return views.RenderHelpPanel(helpMarkdown, m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	}))
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) sessionBindings() []KeyBinding {
	if m.Session == nil {
		return []KeyBinding{{Key: m.Keys.Login, Action: "sign in anonymously"}}
	}
	return []KeyBinding{
		{Key: "h/l", Action: "previous/next day"},
		{Key: "H/L", Action: "previous/next week"},
		{Key: "</>", Action: "previous/next month"},
		{Key: m.Keys.Today, Action: "jump to today"},
		{Key: "j/k", Action: "move list cursor"},
		{Key: m.Keys.Add, Action: "type a new title"},
		{Key: "space", Action: "toggle done"},
		{Key: m.Keys.Delete, Action: "delete"},
		{Key: m.Keys.Refresh, Action: "reload from the store"},
		{Key: m.Keys.Logout, Action: "sign out"},
	}
}

func (m Model) helpBindings() []key.Binding {
	all := append(m.sessionBindings(), m.globalBindings()...)
	out := make([]key.Binding, 0, len(all))
	for _, kb := range all {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
