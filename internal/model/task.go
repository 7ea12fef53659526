package model

import "time"

// DateLayout is the calendar-date form used for due dates. Comparing
// dates in this layout as strings orders them chronologically.
const DateLayout = "2006-01-02"

// Task represents a single entry in the task list.
type Task struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"createdAt"`
	DueDate      *string   `json:"dueDate,omitempty"`
	Reminder     bool      `json:"reminder,omitempty"`
	ReminderSent bool      `json:"reminderSent"`
}

// DueToday returns true if the task's due date falls on the calendar day
// of now.
func (t Task) DueToday(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return *t.DueDate == now.Format(DateLayout)
}

// DueTomorrow returns true if the task's due date falls on the calendar
// day after now.
func (t Task) DueTomorrow(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return *t.DueDate == now.AddDate(0, 0, 1).Format(DateLayout)
}

// Overdue returns true if the task is past its due date and not
// completed. A completed task is never overdue.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return *t.DueDate < now.Format(DateLayout)
}

// DueInFuture returns true if the task's due date is strictly after the
// calendar day of now.
func (t Task) DueInFuture(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return *t.DueDate > now.Format(DateLayout)
}

// DueOn returns true if the task is due on the given calendar day.
func (t Task) DueOn(day time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return *t.DueDate == day.Format(DateLayout)
}

// ReminderArmed returns true if the task should be surfaced by the next
// reminder check: reminder on, not yet sent, not completed, and due
// today or tomorrow relative to now.
func (t Task) ReminderArmed(now time.Time) bool {
	return t.Reminder && !t.ReminderSent && !t.Completed &&
		(t.DueToday(now) || t.DueTomorrow(now))
}
