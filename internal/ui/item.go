package ui

import (
	"fmt"
	"time"

	"tend/internal/model"
)

// TaskItem wraps model.Task to satisfy the list.DefaultItem interface.
type TaskItem struct {
	Task model.Task
	// Now is the reference time the due-date marks are computed against.
	Now time.Time
}

func (i TaskItem) Title() string {
	check := "[ ]"
	if i.Task.Completed {
		check = "[x]"
	}
	dueMark := ""
	if i.Task.Overdue(i.Now) {
		dueMark = "⚠ "
	} else if i.Task.DueToday(i.Now) {
		dueMark = "📅 "
	}
	bell := ""
	if i.Task.Reminder {
		bell = " 🔔"
	}
	return fmt.Sprintf("%s %s%s%s", check, dueMark, i.Task.Text, bell)
}

func (i TaskItem) Description() string {
	if i.Task.DueDate == nil {
		return i.Task.CreatedAt.Format("2006-01-02 15:04")
	}
	return "due " + *i.Task.DueDate
}

func (i TaskItem) FilterValue() string {
	return i.Task.Text
}
