package runtime

import (
	"log/slog"

	"chat-relay/domain"
)

// Tracker owns the ordered list of pending handler tasks. It is used
// exclusively from the listener loop goroutine; nothing here is safe for
// concurrent callers.
//
// Reaping is polled, not event driven: a task that never completes is
// never removed, so the pending list can grow while such tasks exist.
// That cadence is kept on purpose to preserve the relay's observable
// reap timing.
type Tracker struct {
	log     *slog.Logger
	pending []*Task
}

func NewTracker(log *slog.Logger) *Tracker {
	return &Tracker{log: log}
}

// Add registers a freshly dispatched task at the back of the list.
func (t *Tracker) Add(task *Task) {
	t.pending = append(t.pending, task)
}

// Reap scans the pending list in order, removes every finished task and
// returns their outcomes in scan order. Unfinished tasks keep their
// position and are rescanned on the next call.
func (t *Tracker) Reap() []domain.Outcome {
	var outcomes []domain.Outcome
	kept := t.pending[:0]
	for _, task := range t.pending {
		if !task.Finished() {
			kept = append(kept, task)
			continue
		}
		outcomes = append(outcomes, task.Outcome())
	}
	// Release reaped slots so finished tasks can be collected.
	for i := len(kept); i < len(t.pending); i++ {
		t.pending[i] = nil
	}
	t.pending = kept
	if len(outcomes) > 0 {
		t.log.Debug("Reaped handler tasks", "reaped", len(outcomes), "pending", len(kept))
	}
	return outcomes
}

// Pending returns the number of tasks still awaiting reap.
func (t *Tracker) Pending() int {
	return len(t.pending)
}
