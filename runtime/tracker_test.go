package runtime

import (
	"log/slog"
	"testing"
	"time"

	"chat-relay/domain"
	"chat-relay/errors"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// spawnBlocked returns a task that completes with the given outcome only
// once release is closed.
func spawnBlocked(release <-chan struct{}, outcome domain.Outcome) *Task {
	return Spawn(func() domain.Outcome {
		<-release
		return outcome
	})
}

// waitFinished blocks until the task's goroutine has published its outcome.
func waitFinished(t *testing.T, task *Task) {
	t.Helper()
	require.Eventually(t, task.Finished, time.Second, time.Millisecond)
}

func TestTracker_ReapCollectsFinishedInOrder(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker(logs.GetLoggerFromLevel(slog.LevelError))

	message := domain.NewMessage("alice", "hi")
	done := make(chan struct{})
	close(done)
	pending := make(chan struct{})
	defer close(pending)

	t1 := spawnBlocked(done, domain.Posted{Message: message})
	t2 := spawnBlocked(pending, domain.NothingReceived{})
	t3 := spawnBlocked(done, domain.Failed{Err: errors.ErrInvalidData})
	waitFinished(t, t1)
	waitFinished(t, t3)

	tracker.Add(t1)
	tracker.Add(t2)
	tracker.Add(t3)

	outcomes := tracker.Reap()

	// T1 and T3 are retired in scan order; T2 stays pending.
	req.Len(outcomes, 2)
	posted, ok := outcomes[0].(domain.Posted)
	req.True(ok)
	req.Equal(message, posted.Message)
	failed, ok := outcomes[1].(domain.Failed)
	req.True(ok)
	req.ErrorIs(failed.Err, errors.ErrInvalidData)
	req.Equal(1, tracker.Pending())
}

func TestTracker_UnfinishedTaskIsRescannedNextCycle(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker(logs.GetLoggerFromLevel(slog.LevelError))

	release := make(chan struct{})
	task := spawnBlocked(release, domain.NoMessage{Username: "bob"})
	tracker.Add(task)

	req.Empty(tracker.Reap())
	req.Equal(1, tracker.Pending())

	close(release)
	waitFinished(t, task)

	outcomes := tracker.Reap()
	req.Len(outcomes, 1)
	fetch, ok := outcomes[0].(domain.NoMessage)
	req.True(ok)
	req.Equal("bob", fetch.Username)
	req.Equal(0, tracker.Pending())
}

func TestTask_OutcomeBlocksUntilCompletion(t *testing.T) {
	req := require.New(t)
	release := make(chan struct{})
	task := spawnBlocked(release, domain.NothingReceived{})

	req.False(task.Finished())
	close(release)

	_, ok := task.Outcome().(domain.NothingReceived)
	req.True(ok)
	req.True(task.Finished())
}
