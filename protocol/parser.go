// Package protocol implements the relay's line protocol: parsing one
// request line into a typed outcome and composing the history reply.
package protocol

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"chat-relay/domain"
	"chat-relay/errors"
)

// Separator splits the username from the content. Only the first
// occurrence counts; later ones stay inside the content verbatim.
const Separator = ": "

// noUsernameDiagnostic is written back to the peer when the line carries
// no extractable username.
const noUsernameDiagnostic = "Received an empty message!"

// ReadRequest reads one line from the connection and turns it into an
// Outcome. It never terminates the process and never blocks beyond the
// read itself: there is deliberately no deadline here, matching the
// relay's no-timeout contract.
//
// Rules, in order:
//   - end of stream before any byte, or a bare empty line -> NothingReceived
//   - no "username: " separator -> diagnostic written back, NoUsername
//   - empty content after the separator -> NoMessage (fetch-only)
//   - anything else -> Posted
func ReadRequest(conn io.ReadWriter, log *slog.Logger) domain.Outcome {
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && err != io.EOF {
		return domain.Failed{Err: err}
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return domain.NothingReceived{}
	}
	if !utf8.ValidString(line) {
		return domain.Failed{Err: errors.ErrInvalidData}
	}
	log.Debug("Received message", "line", line)

	username, content, found := strings.Cut(line, Separator)
	if !found {
		if _, err := io.WriteString(conn, noUsernameDiagnostic); err != nil {
			return domain.Failed{Err: err}
		}
		return domain.NoUsername{}
	}
	if content == "" {
		return domain.NoMessage{Username: username}
	}
	return domain.Posted{Message: domain.NewMessage(username, content)}
}
