package protocol

import (
	"testing"

	"chat-relay/domain"

	"github.com/stretchr/testify/require"
)

func TestComposeResponse_RewritesOwnMessages(t *testing.T) {
	req := require.New(t)
	snapshot := []domain.Message{
		{Username: "alice", Content: "hi"},
		{Username: "bob", Content: "yo"},
	}

	req.Equal("you: hi\nbob: yo", ComposeResponse(snapshot, "alice"))
	req.Equal("alice: hi\nyou: yo", ComposeResponse(snapshot, "bob"))
	req.Equal("alice: hi\nbob: yo", ComposeResponse(snapshot, "carol"))
}

func TestComposeResponse_EmptySnapshot(t *testing.T) {
	require.Equal(t, "", ComposeResponse(nil, "alice"))
}

func TestComposeResponse_NoTrailingNewline(t *testing.T) {
	req := require.New(t)
	snapshot := []domain.Message{{Username: "alice", Content: "hi"}}

	response := ComposeResponse(snapshot, "bob")
	req.Equal("alice: hi", response)
}

func TestComposeResponse_Idempotent(t *testing.T) {
	req := require.New(t)
	snapshot := []domain.Message{
		{Username: "alice", Content: "hi"},
		{Username: "bob", Content: "a: b"},
	}

	first := ComposeResponse(snapshot, "alice")
	second := ComposeResponse(snapshot, "alice")
	req.Equal(first, second)
}
