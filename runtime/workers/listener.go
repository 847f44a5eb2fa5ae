package workers

import (
	"context"
	"io"
	"log/slog"
	"net"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/observability"
	"chat-relay/protocol"
	"chat-relay/runtime"
)

// Ensure *ListenerWorker implements the contract.Worker interface at compile time.
var (
	_ contract.Worker   = (*ListenerWorker)(nil)
	_ contract.IHistory = (*domain.History)(nil)
)

// ListenerWorker drives the relay's accept/reap/dispatch loop. The loop
// is strictly single threaded: the history and the pending-task list are
// touched only from Run's goroutine, during reap. Handler tasks run
// concurrently but own nothing beyond their connection and their private
// history snapshot.
//
// The net.Listener is bound by the caller so that a bind failure stays
// fatal at startup, before supervision begins.
type ListenerWorker struct {
	listener net.Listener
	history  contract.IHistory
	tracker  *runtime.Tracker
	stats    *observability.RelayStats
	log      *slog.Logger
}

func NewListenerWorker(
	listener net.Listener,
	history contract.IHistory,
	tracker *runtime.Tracker,
	stats *observability.RelayStats,
	log *slog.Logger,
) *ListenerWorker {
	return &ListenerWorker{
		listener: listener,
		history:  history,
		tracker:  tracker,
		stats:    stats,
		log:      log,
	}
}

// Run accepts connections until the context is canceled. Each iteration:
// accept, reap finished handlers into the history, evict overflow, take a
// snapshot, dispatch a new handler. An accept failure is logged and
// retried immediately, without backoff or cap.
func (w *ListenerWorker) Run(ctx context.Context) error {
	w.log.Info("Relay listening", "address", w.listener.Addr().String())

	go func() {
		// Closing the listener is the only way to unblock Accept.
		<-ctx.Done()
		_ = w.listener.Close()
	}()

	for {
		conn, err := w.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Warn("Accept failed, retrying", "error", err)
			continue
		}
		w.stats.IncrAccepted()

		w.collect()

		before := w.history.Len()
		w.history.EvictOverflow()
		w.stats.AddEvicted(before - w.history.Len())

		snapshot := w.history.Snapshot()
		w.tracker.Add(runtime.Spawn(func() domain.Outcome {
			return w.handle(conn, snapshot)
		}))
	}
}

// collect reaps every finished handler task and applies its outcome:
// Posted enters the history, Failed is logged with its fixed per-kind
// message and dropped, everything else is discarded. Unfinished tasks
// stay pending and are rescanned on the next accept.
func (w *ListenerWorker) collect() {
	for _, outcome := range w.tracker.Reap() {
		switch o := outcome.(type) {
		case domain.Posted:
			w.history.Append(o.Message)
			w.stats.IncrStored()
		case domain.Failed:
			w.log.Error(errors.ServerMessage(errors.Classify(o.Err)), "error", o.Err)
			w.stats.IncrFailures()
		default:
			w.stats.IncrDiscarded()
		}
	}
	w.stats.SetPending(w.tracker.Pending())
}

// handle serves one connection: parse the request, compose and write the
// reply when the request names a requester, and hand the outcome back to
// the tracker. The connection is always closed before the handler
// returns; the reply is terminated by that close, which is what ends the
// client's read-to-EOF.
func (w *ListenerWorker) handle(conn net.Conn, snapshot []domain.Message) domain.Outcome {
	defer func() { _ = conn.Close() }()

	outcome := protocol.ReadRequest(conn, w.log)

	var requester string
	switch o := outcome.(type) {
	case domain.Posted:
		w.log.Debug("Parsed message", "id", o.Message.ID, "username", o.Message.Username)
		requester = o.Message.Username
	case domain.NoMessage:
		requester = o.Username
	default:
		return outcome
	}

	response := protocol.ComposeResponse(snapshot, requester)
	w.log.Debug("Created response", "requester", requester, "lines", len(snapshot))
	if _, err := io.WriteString(conn, response); err != nil {
		// The message still reaches the history at reap; only the reply was lost.
		w.log.Error(errors.ServerMessage(errors.Classify(err)), "error", err)
	}
	return outcome
}
