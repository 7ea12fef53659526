package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tend/internal/model"
	"tend/internal/storage"
)

// StorageKey is the single key the whole collection is persisted under.
const StorageKey = "tasks"

// ErrEmptyText is returned when a task is created or renamed with a
// label that is empty after trimming.
var ErrEmptyText = errors.New("task text must not be empty")

// TaskStore owns the ordered task collection. Every mutation writes the
// full collection through to durable storage before returning; the
// in-memory state stays consistent even when the write fails. All other
// components work from Snapshot copies and mutate only through the
// store's operations.
type TaskStore struct {
	mu    sync.Mutex
	tasks []model.Task
	kv    storage.KV
	now   func() time.Time

	// OnCompleted fires once per false-to-true completion transition.
	OnCompleted func(model.Task)
}

// New creates a TaskStore backed by kv, loading any previously persisted
// collection. A missing or unreadable blob yields an empty collection.
func New(kv storage.KV) *TaskStore {
	s := &TaskStore{kv: kv, now: time.Now}
	if blob, ok, err := kv.Get(StorageKey); err == nil && ok {
		var tasks []model.Task
		if err := json.Unmarshal([]byte(blob), &tasks); err == nil {
			s.tasks = tasks
		}
	}
	return s
}

// SetClock overrides the wall clock, for tests.
func (s *TaskStore) SetClock(now func() time.Time) {
	s.now = now
}

// Create validates and appends a new task, then persists the collection.
func (s *TaskStore) Create(text string, dueDate *string, reminder bool) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.Task{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: s.now(),
		DueDate:   dueDate,
		Reminder:  reminder,
	}
	s.tasks = append(s.tasks, t)
	if err := s.persist(); err != nil {
		return t, err
	}
	return t, nil
}

// ToggleCompleted flips the completed flag. Unknown ids are a no-op so
// stale UI references stay harmless. Completing a task (false to true)
// fires OnCompleted; un-completing does not.
func (s *TaskStore) ToggleCompleted(id string) error {
	s.mu.Lock()
	var completed *model.Task
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			if s.tasks[i].Completed {
				t := s.tasks[i]
				completed = &t
			}
			break
		}
	}
	err := s.persist()
	cb := s.OnCompleted
	s.mu.Unlock()

	if completed != nil && cb != nil {
		cb(*completed)
	}
	return err
}

// Delete removes the task with the given id; no-op if absent.
func (s *TaskStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	return s.persist()
}

// EditText replaces a task's label. An empty label after trimming is
// rejected with ErrEmptyText and nothing is persisted.
func (s *TaskStore) EditText(id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Text = text
			break
		}
	}
	return s.persist()
}

// UpdateDueDate sets or clears the due date. Pass nil to clear. The
// reminder-sent flag is left alone; re-arming happens through
// ToggleReminder.
func (s *TaskStore) UpdateDueDate(id string, dueDate *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].DueDate = dueDate
			break
		}
	}
	return s.persist()
}

// ToggleReminder flips the reminder flag. Turning the reminder on clears
// ReminderSent so the task can be surfaced again.
func (s *TaskStore) ToggleReminder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Reminder = !s.tasks[i].Reminder
			if s.tasks[i].Reminder {
				s.tasks[i].ReminderSent = false
			}
			break
		}
	}
	return s.persist()
}

// MarkReminderSent records that a reminder for the task has been
// surfaced. It is terminal for the current arming; only ToggleReminder
// re-arms.
func (s *TaskStore) MarkReminderSent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].ReminderSent = true
			break
		}
	}
	return s.persist()
}

// ClearCompleted removes every completed task, preserving the relative
// order of the rest.
func (s *TaskStore) ClearCompleted() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return s.persist()
}

// Snapshot returns a copy of the collection in insertion order.
func (s *TaskStore) Snapshot() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) persist() error {
	blob, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(StorageKey, string(blob)); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}
