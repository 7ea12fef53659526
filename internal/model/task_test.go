package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var refNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)

func dateOffset(days int) *string {
	d := refNow.AddDate(0, 0, days).Format(DateLayout)
	return &d
}

func TestDueToday(t *testing.T) {
	assert.True(t, Task{DueDate: dateOffset(0)}.DueToday(refNow))
	assert.False(t, Task{DueDate: dateOffset(1)}.DueToday(refNow))
	assert.False(t, Task{}.DueToday(refNow))
}

func TestDueTomorrow(t *testing.T) {
	assert.True(t, Task{DueDate: dateOffset(1)}.DueTomorrow(refNow))
	assert.False(t, Task{DueDate: dateOffset(0)}.DueTomorrow(refNow))
	assert.False(t, Task{DueDate: dateOffset(2)}.DueTomorrow(refNow))
	assert.False(t, Task{}.DueTomorrow(refNow))
}

func TestDueTomorrow_AcrossMonthBoundary(t *testing.T) {
	eom := time.Date(2026, 1, 31, 9, 0, 0, 0, time.Local)
	due := "2026-02-01"
	assert.True(t, Task{DueDate: &due}.DueTomorrow(eom))
}

func TestOverdue(t *testing.T) {
	assert.True(t, Task{DueDate: dateOffset(-1)}.Overdue(refNow))
	assert.True(t, Task{DueDate: dateOffset(-3)}.Overdue(refNow))
	assert.False(t, Task{DueDate: dateOffset(0)}.Overdue(refNow))
	assert.False(t, Task{DueDate: dateOffset(1)}.Overdue(refNow))
	assert.False(t, Task{}.Overdue(refNow))
}

func TestOverdue_CompletedNeverOverdue(t *testing.T) {
	task := Task{DueDate: dateOffset(-5), Completed: true}
	assert.False(t, task.Overdue(refNow))
}

func TestDueInFuture(t *testing.T) {
	assert.True(t, Task{DueDate: dateOffset(1)}.DueInFuture(refNow))
	assert.True(t, Task{DueDate: dateOffset(30)}.DueInFuture(refNow))
	assert.False(t, Task{DueDate: dateOffset(0)}.DueInFuture(refNow))
	assert.False(t, Task{DueDate: dateOffset(-1)}.DueInFuture(refNow))
	assert.False(t, Task{}.DueInFuture(refNow))
}

func TestReminderArmed(t *testing.T) {
	armed := Task{Reminder: true, DueDate: dateOffset(0)}
	assert.True(t, armed.ReminderArmed(refNow))

	tomorrow := Task{Reminder: true, DueDate: dateOffset(1)}
	assert.True(t, tomorrow.ReminderArmed(refNow))

	assert.False(t, Task{Reminder: true, DueDate: dateOffset(2)}.ReminderArmed(refNow), "too far out")
	assert.False(t, Task{Reminder: true, DueDate: dateOffset(-1)}.ReminderArmed(refNow), "already overdue")
	assert.False(t, Task{Reminder: true}.ReminderArmed(refNow), "no due date")
	assert.False(t, Task{DueDate: dateOffset(0)}.ReminderArmed(refNow), "reminder off")
	assert.False(t, Task{Reminder: true, DueDate: dateOffset(0), ReminderSent: true}.ReminderArmed(refNow), "already sent")
	assert.False(t, Task{Reminder: true, DueDate: dateOffset(0), Completed: true}.ReminderArmed(refNow), "completed")
}
