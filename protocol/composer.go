package protocol

import (
	"strings"

	"chat-relay/domain"

	"github.com/samber/lo"
)

// OwnUsername replaces the requester's name in their own history lines.
const OwnUsername = "you"

// ComposeResponse renders a history snapshot for one requester: one line
// per message, newline-joined, no trailing newline. The requester's own
// messages render as "you: <content>". Pure function; writing the result
// to the connection is the caller's responsibility.
func ComposeResponse(snapshot []domain.Message, requester string) string {
	lines := lo.Map(snapshot, func(message domain.Message, _ int) string {
		if message.Username == requester {
			return OwnUsername + Separator + message.Content
		}
		return message.String()
	})
	return strings.Join(lines, "\n")
}
