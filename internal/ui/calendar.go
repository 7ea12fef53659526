package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tend/internal/model"
)

var (
	calHeaderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	calDayNameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	calTodayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	calSelectedStyle = lipgloss.NewStyle().Reverse(true)
	calDueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// calendar is the month-grid due-date view. It tracks the displayed
// month and a selected day; the task data comes in at render time.
type calendar struct {
	month    time.Time // first day of the displayed month
	selected time.Time
}

func newCalendar(now time.Time) calendar {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return calendar{month: first, selected: startOfDay(now)}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (c *calendar) PrevMonth() {
	c.month = c.month.AddDate(0, -1, 0)
	c.clampSelection()
}

func (c *calendar) NextMonth() {
	c.month = c.month.AddDate(0, 1, 0)
	c.clampSelection()
}

// MoveDay shifts the selection, following it across month boundaries.
func (c *calendar) MoveDay(days int) {
	c.selected = c.selected.AddDate(0, 0, days)
	c.month = time.Date(c.selected.Year(), c.selected.Month(), 1, 0, 0, 0, 0, c.selected.Location())
}

func (c *calendar) clampSelection() {
	if c.selected.Year() == c.month.Year() && c.selected.Month() == c.month.Month() {
		return
	}
	c.selected = c.month
}

// Selected returns the currently selected day.
func (c calendar) Selected() time.Time {
	return c.selected
}

func dueCount(tasks []model.Task, day time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.DueOn(day) {
			n++
		}
	}
	return n
}

// View renders the month grid with due-task markers plus the tasks due
// on the selected day.
func (c calendar) View(tasks []model.Task, now time.Time) string {
	var b strings.Builder

	b.WriteString(calHeaderStyle.Render(c.month.Format("January 2006")))
	b.WriteString("\n\n")
	b.WriteString(calDayNameStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")

	today := startOfDay(now)
	day := c.month
	// Leading blanks up to the first weekday.
	b.WriteString(strings.Repeat("    ", int(day.Weekday())))

	for day.Month() == c.month.Month() {
		cell := fmt.Sprintf("%3d", day.Day())
		marked := dueCount(tasks, day) > 0

		switch {
		case day.Equal(c.selected):
			cell = calSelectedStyle.Render(cell)
		case day.Equal(today):
			cell = calTodayStyle.Render(cell)
		case marked:
			cell = calDueStyle.Render(cell)
		}
		b.WriteString(cell)
		if marked {
			b.WriteString("•")
		} else {
			b.WriteString(" ")
		}

		if day.Weekday() == time.Saturday {
			b.WriteString("\n")
		}
		day = day.AddDate(0, 0, 1)
	}
	b.WriteString("\n\n")

	b.WriteString(calHeaderStyle.Render("Due " + c.selected.Format(model.DateLayout)))
	b.WriteString("\n")
	listed := 0
	for _, t := range tasks {
		if !t.DueOn(c.selected) {
			continue
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", check, t.Text))
		listed++
	}
	if listed == 0 {
		b.WriteString(calDayNameStyle.Render("  nothing due\n"))
	}

	return b.String()
}
