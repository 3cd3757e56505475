package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.shiftSelectedDate(0, -1)
	case "l", "right":
		m.shiftSelectedDate(0, 1)
	case "H":
		m.shiftSelectedDate(0, -7)
	case "L":
		m.shiftSelectedDate(0, 7)
	case "<", ",":
		m.shiftSelectedDate(-1, 0)
	case ">", ".":
		m.shiftSelectedDate(1, 0)
	case m.Keys.Today:
		m.selectDate(model.Today(m.now()))
	}
	return m
}

func (m *Model) shiftSelectedDate(months, days int) {
	m.selectDate(model.FormatDate(m.selectedTime().AddDate(0, months, days)))
}

func (m *Model) selectDate(date string) {
	if date == m.SelectedDate {
		return
	}
	m.SelectedDate = date
	m.Cursor = 0
}

func (m Model) selectedTime() time.Time {
	tm, err := model.ParseDate(m.SelectedDate)
	if err != nil {
		return m.now()
	}
	return tm
}

func (m Model) renderCalendarView() string {
	return views.RenderCalendar(views.CalendarData{
		Month:    m.selectedTime(),
		Selected: m.SelectedDate,
		Today:    model.Today(m.now()),
		Marked:   model.DatesWithTodos(m.Todos),
	})
}
