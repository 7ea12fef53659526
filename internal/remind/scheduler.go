package remind

import (
	"context"
	"time"

	"tend/internal/model"
	"tend/internal/store"
)

// DefaultInterval is the cadence of the reminder check.
const DefaultInterval = 60 * time.Second

// Scheduler periodically scans the task store for tasks whose reminder
// should be surfaced. Each evaluation surfaces at most one task, in
// collection order, and marks it sent through the store so it is never
// re-surfaced for the same arming.
type Scheduler struct {
	store    *store.TaskStore
	interval time.Duration
	notifs   chan model.Task
}

// New creates a Scheduler polling the store at the given interval. A
// non-positive interval falls back to DefaultInterval.
func New(s *store.TaskStore, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		store:    s,
		interval: interval,
		notifs:   make(chan model.Task, 1),
	}
}

// Notifications delivers each surfaced task exactly once.
func (s *Scheduler) Notifications() <-chan model.Task {
	return s.notifs
}

// Run evaluates once immediately, then on every interval tick, until ctx
// is canceled. The ticker is released on every exit path.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.check(ctx, time.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.check(ctx, now)
		}
	}
}

func (s *Scheduler) check(ctx context.Context, now time.Time) {
	task, ok := s.Tick(now)
	if !ok {
		return
	}
	select {
	case <-ctx.Done():
	case s.notifs <- task:
	}
}

// Tick performs one evaluation against the reference time: it scans the
// snapshot in collection order for the first armed task, marks it sent,
// and returns it. Remaining armed tasks stay armed for later ticks.
func (s *Scheduler) Tick(now time.Time) (model.Task, bool) {
	for _, t := range s.store.Snapshot() {
		if t.ReminderArmed(now) {
			// In-memory state updates even if the write fails, so the
			// reminder fires at most once per arming either way.
			_ = s.store.MarkReminderSent(t.ID)
			t.ReminderSent = true
			return t, true
		}
	}
	return model.Task{}, false
}
