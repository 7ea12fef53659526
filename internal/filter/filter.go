package filter

import (
	"time"

	"tend/internal/model"
)

// Mode selects which subset of the collection is visible.
type Mode int

const (
	All Mode = iota
	Active
	Completed
	Upcoming
)

func (m Mode) String() string {
	switch m {
	case Active:
		return "active"
	case Completed:
		return "completed"
	case Upcoming:
		return "upcoming"
	default:
		return "all"
	}
}

// ParseMode maps a config string to a Mode, defaulting to All.
func ParseMode(s string) Mode {
	switch s {
	case "active":
		return Active
	case "completed":
		return Completed
	case "upcoming":
		return Upcoming
	default:
		return All
	}
}

// Next cycles through the modes in display order.
func (m Mode) Next() Mode {
	return (m + 1) % 4
}

// Apply returns the tasks visible under the mode, preserving order.
// Upcoming means incomplete with a due date strictly after today; this
// is wider than the Counts.Upcoming badge on purpose.
func Apply(tasks []model.Task, mode Mode, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		switch mode {
		case Active:
			if t.Completed {
				continue
			}
		case Completed:
			if !t.Completed {
				continue
			}
		case Upcoming:
			if t.Completed || !t.DueInFuture(now) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Counts are the summary numbers shown alongside the list.
type Counts struct {
	Active    int
	Completed int
	// Upcoming counts incomplete tasks due today or tomorrow only,
	// narrower than the Upcoming filter: the badge means "act on soon".
	Upcoming int
}

// Count computes the summary counts for the collection.
func Count(tasks []model.Task, now time.Time) Counts {
	var c Counts
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
			continue
		}
		c.Active++
		if t.DueToday(now) || t.DueTomorrow(now) {
			c.Upcoming++
		}
	}
	return c
}
