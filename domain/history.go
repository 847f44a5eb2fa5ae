package domain

// DefaultHistoryLimit is the number of messages the relay keeps.
const DefaultHistoryLimit = 100

// History is the bounded, ordered message buffer. Insertion order is
// arrival order. It is owned by the listener loop alone: all mutation
// happens on that single goroutine, so no locking lives here. Anything
// exposing a History to other goroutines must serialize access itself.
type History struct {
	capacity int
	messages []Message
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryLimit
	}
	return &History{capacity: capacity}
}

// Append adds a message at the back. It never evicts; overflow is
// resolved by the loop calling EvictOverflow afterwards.
func (h *History) Append(message Message) {
	h.messages = append(h.messages, message)
}

// EvictOverflow drops messages from the front until the history fits
// its capacity again. Relative order of survivors is preserved.
func (h *History) EvictOverflow() {
	for len(h.messages) > h.capacity {
		h.messages = h.messages[1:]
	}
}

// Snapshot returns an independent copy of the current contents. Each
// handler task owns exactly one snapshot and never sees later mutation.
func (h *History) Snapshot() []Message {
	snapshot := make([]Message, len(h.messages))
	copy(snapshot, h.messages)
	return snapshot
}

func (h *History) Len() int {
	return len(h.messages)
}
