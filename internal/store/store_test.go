package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tend/internal/model"
	"tend/internal/storage"
)

func newTestStore(t *testing.T) (*TaskStore, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	return New(kv), kv
}

func TestCreate(t *testing.T) {
	s, _ := newTestStore(t)

	task, err := s.Create("Buy milk", nil, false)
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Buy milk", task.Text)
	assert.False(t, task.Completed)
	assert.False(t, task.ReminderSent)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestCreate_TrimsText(t *testing.T) {
	s, _ := newTestStore(t)

	task, err := s.Create("  Buy milk  ", nil, false)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Text)
}

func TestCreate_WhitespaceOnlyRejected(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create("   \t ", nil, false)
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Empty(t, s.Snapshot(), "collection must stay unchanged")
}

func TestCreate_PreservesInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)

	for _, text := range []string{"first", "second", "third"} {
		_, err := s.Create(text, nil, false)
		require.NoError(t, err)
	}

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "first", snap[0].Text)
	assert.Equal(t, "second", snap[1].Text)
	assert.Equal(t, "third", snap[2].Text)
}

func TestCreate_UniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)

	seen := map[string]bool{}
	for range 50 {
		task, err := s.Create("x", nil, false)
		require.NoError(t, err)
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}

func TestToggleCompleted_EmitsEventOnlyOnCompletion(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.Create("Buy milk", nil, false)
	require.NoError(t, err)

	var events []model.Task
	s.OnCompleted = func(t model.Task) { events = append(events, t) }

	require.NoError(t, s.ToggleCompleted(task.ID))
	require.Len(t, events, 1, "false->true emits exactly one event")
	assert.Equal(t, task.ID, events[0].ID)
	assert.True(t, events[0].Completed)

	require.NoError(t, s.ToggleCompleted(task.ID))
	assert.Len(t, events, 1, "true->false emits none")

	require.NoError(t, s.ToggleCompleted(task.ID))
	assert.Len(t, events, 2)
}

func TestToggleCompleted_UnknownIDIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create("Buy milk", nil, false)
	require.NoError(t, err)

	require.NoError(t, s.ToggleCompleted("nope"))
	assert.False(t, s.Snapshot()[0].Completed)
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.Create("Buy milk", nil, false)
	require.NoError(t, err)

	require.NoError(t, s.Delete(task.ID))
	assert.Empty(t, s.Snapshot())

	require.NoError(t, s.Delete("nope"))
}

func TestEditText(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.Create("Buy milk", nil, false)
	require.NoError(t, err)

	require.NoError(t, s.EditText(task.ID, "Buy oat milk"))
	assert.Equal(t, "Buy oat milk", s.Snapshot()[0].Text)
}

func TestEditText_EmptyRejected(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.Create("Buy milk", nil, false)
	require.NoError(t, err)

	err = s.EditText(task.ID, "  ")
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Equal(t, "Buy milk", s.Snapshot()[0].Text)
}

func TestUpdateDueDate(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.Create("Buy milk", nil, false)
	require.NoError(t, err)

	due := "2026-09-01"
	require.NoError(t, s.UpdateDueDate(task.ID, &due))
	require.NotNil(t, s.Snapshot()[0].DueDate)
	assert.Equal(t, due, *s.Snapshot()[0].DueDate)

	require.NoError(t, s.UpdateDueDate(task.ID, nil))
	assert.Nil(t, s.Snapshot()[0].DueDate)
}

func TestUpdateDueDate_KeepsReminderSent(t *testing.T) {
	s, _ := newTestStore(t)
	due := "2026-09-01"
	task, err := s.Create("Buy milk", &due, true)
	require.NoError(t, err)
	require.NoError(t, s.MarkReminderSent(task.ID))

	later := "2026-09-05"
	require.NoError(t, s.UpdateDueDate(task.ID, &later))
	assert.True(t, s.Snapshot()[0].ReminderSent, "rescheduling does not re-arm")
}

func TestToggleReminder_ReArms(t *testing.T) {
	s, _ := newTestStore(t)
	due := "2026-09-01"
	task, err := s.Create("Buy milk", &due, true)
	require.NoError(t, err)
	require.NoError(t, s.MarkReminderSent(task.ID))

	// Off, then back on: sent flag clears.
	require.NoError(t, s.ToggleReminder(task.ID))
	assert.False(t, s.Snapshot()[0].Reminder)

	require.NoError(t, s.ToggleReminder(task.ID))
	got := s.Snapshot()[0]
	assert.True(t, got.Reminder)
	assert.False(t, got.ReminderSent)
}

func TestClearCompleted_PreservesOrderOfRest(t *testing.T) {
	s, _ := newTestStore(t)

	var ids []string
	for _, text := range []string{"a", "b", "c", "d"} {
		task, err := s.Create(text, nil, false)
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	require.NoError(t, s.ToggleCompleted(ids[1]))
	require.NoError(t, s.ToggleCompleted(ids[3]))

	require.NoError(t, s.ClearCompleted())

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].Text)
	assert.Equal(t, "c", snap[1].Text)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create("Buy milk", nil, false)
	require.NoError(t, err)

	snap := s.Snapshot()
	snap[0].Text = "mutated"
	assert.Equal(t, "Buy milk", s.Snapshot()[0].Text)
}

func TestPersistence_RoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	s := New(kv)
	s.SetClock(func() time.Time {
		return time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	})

	due := "2026-08-30"
	created, err := s.Create("Buy milk", &due, true)
	require.NoError(t, err)
	_, err = s.Create("Old report", nil, false)
	require.NoError(t, err)
	require.NoError(t, s.MarkReminderSent(created.ID))

	reloaded := New(kv).Snapshot()
	require.Len(t, reloaded, 2)

	got := reloaded[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Buy milk", got.Text)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
	require.NotNil(t, got.DueDate)
	assert.Equal(t, due, *got.DueDate)
	assert.True(t, got.Reminder)
	assert.True(t, got.ReminderSent)

	assert.Equal(t, "Old report", reloaded[1].Text)
	assert.Nil(t, reloaded[1].DueDate)
}

func TestNew_CorruptBlobYieldsEmptyCollection(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(StorageKey, "{not json"))

	s := New(kv)
	assert.Empty(t, s.Snapshot())
}

type failingKV struct{ storage.KV }

func (f failingKV) Set(key, value string) error {
	return errors.New("disk full")
}

func TestMutation_SurvivesPersistFailure(t *testing.T) {
	s := New(failingKV{storage.NewMemory()})

	task, err := s.Create("Buy milk", nil, false)
	assert.Error(t, err)
	// In-memory state stays consistent even when the write fails.
	require.Len(t, s.Snapshot(), 1)
	assert.Equal(t, task.ID, s.Snapshot()[0].ID)
}
