// Package runtime handles the relay's in-flight handler tasks: spawning
// them on the Go scheduler and reaping their outcomes from the listener
// loop. It contains no protocol or domain rules.
package runtime

import (
	"chat-relay/domain"
)

// Task is one in-flight handler bound to one accepted connection. It is
// created at dispatch and owned by the Tracker until reaped.
type Task struct {
	outcome domain.Outcome
	done    chan struct{}
}

// Spawn runs fn on its own goroutine and hands back the task to poll.
// The outcome write happens before done is closed, so any reader that
// observed Finished() == true sees the final outcome.
func Spawn(fn func() domain.Outcome) *Task {
	task := &Task{done: make(chan struct{})}
	go func() {
		defer close(task.done)
		task.outcome = fn()
	}()
	return task
}

// Finished reports completion without blocking.
func (t *Task) Finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Outcome blocks until the task completes and returns its result.
func (t *Task) Outcome() domain.Outcome {
	<-t.done
	return t.outcome
}
