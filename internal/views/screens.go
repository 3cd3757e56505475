package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/todocal/internal/logging"
)

const EmptyListText = "No to-dos on the selected date."

type LoginPanelData struct {
	AppName string
	Hint    string
}

type HeaderData struct {
	AppName string
	UID     string
	Backend string
}

type CalendarData struct {
	// Month is any day of the month to draw.
	Month    time.Time
	Selected string
	Today    string
	Marked   map[string]bool
}

type AddPanelData struct {
	Date      string
	InputView string
	Editing   bool
}

type TodoItemData struct {
	ID      string
	Title   string
	DueDate string
	Done    bool
}

type TodoListData struct {
	Date        string
	Items       []TodoItemData
	Cursor      int
	Loading     bool
	SpinnerView string
}

func RenderLoginPanel(data LoginPanelData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(data.AppName) + "\n\n")
	b.WriteString("[enter] sign in anonymously\n")
	b.WriteString("[q] quit\n")
	if data.Hint != "" {
		b.WriteString("\n" + mutedStyle.Render(data.Hint))
	}
	return panelStyle.Render(strings.TrimSpace(b.String()))
}

func RenderHeader(data HeaderData) string {
	return fmt.Sprintf("%s | UID: %s | backend: %s | [o] logout", data.AppName, logging.UIDPrefix(data.UID), data.Backend)
}

// RenderCalendar draws a Sunday-first month grid. The selected day is
// bracketed and days with records carry a '*'.
func RenderCalendar(data CalendarData) string {
	first := time.Date(data.Month.Year(), data.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var b strings.Builder
	b.WriteString("due-date calendar:\n")
	b.WriteString(fmt.Sprintf("%s\n", first.Format("January 2006")))
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")

	col := int(first.Weekday())
	b.WriteString(strings.Repeat("    ", col))
	for day := 1; day <= daysInMonth; day++ {
		date := first.AddDate(0, 0, day-1).Format("2006-01-02")
		b.WriteString(renderDayCell(day, date, data))
		col++
		if col == 7 && day != daysInMonth {
			b.WriteString("\n")
			col = 0
		}
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("selected: %s\n", data.Selected))
	b.WriteString(mutedStyle.Render("[h/l]day [H/L]week [</>]month [t]today"))
	return b.String()
}

func renderDayCell(day int, date string, data CalendarData) string {
	if date == data.Selected {
		return selectedStyle.Render(fmt.Sprintf("[%2d]", day))
	}
	mark := " "
	if data.Marked[date] {
		mark = "*"
	}
	cell := fmt.Sprintf(" %2d%s", day, mark)
	if date == data.Today {
		return todayStyle.Render(cell)
	}
	return cell
}

func RenderAddPanel(data AddPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("add a to-do for %s:\n", data.Date))
	b.WriteString(data.InputView + "\n")
	if data.Editing {
		b.WriteString(mutedStyle.Render("[enter]add [esc]cancel"))
	} else {
		b.WriteString(mutedStyle.Render("[a]type a title"))
	}
	return b.String()
}

func RenderTodoList(data TodoListData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("to-dos for %s:\n", data.Date))
	if data.Loading {
		b.WriteString(fmt.Sprintf("%s loading...\n", data.SpinnerView))
	}
	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render(EmptyListText))
		return b.String()
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		check := "[ ]"
		status := openStyle.Render("open")
		action := "mark done"
		if item.Done {
			check = "[x]"
			status = doneStyle.Render("done")
			action = "mark open"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, check, item.Title))
		b.WriteString(fmt.Sprintf("      due: %s | %s | [space]%s [x]delete\n", item.DueDate, status, action))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(markdown string, keysView string) string {
	return strings.TrimSpace(RenderMarkdown(markdown) + "\n\n" + keysView)
}
