// Package domain contains core concepts of the chat relay.
// This file defines Message and related rules.
// Messages are immutable once created.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message represents one accepted chat line.
type Message struct {
	ID       uuid.UUID // unique identifier
	Username string
	Content  string
	At       time.Time
}

// NewMessage builds a Message stamped with a fresh ID and the current time.
// ID and At never reach the wire; they exist for logging and traceability.
func NewMessage(username, content string) Message {
	return Message{
		ID:       uuid.New(),
		Username: username,
		Content:  content,
		At:       time.Now().UTC(),
	}
}

// String renders the wire form of the message.
func (m Message) String() string {
	return fmt.Sprintf("%s: %s", m.Username, m.Content)
}
