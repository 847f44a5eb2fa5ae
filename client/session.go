// Package client implements the relay's wire contract from the peer
// side: one connection per request, one line out, read the reply to EOF.
package client

import (
	"fmt"
	"io"
	"net"

	"chat-relay/protocol"
)

// Session is a reusable client bound to one username and one server
// address. The connection is opened lazily on first use and reused for a
// send+receive pair until Close drops it. Session is not safe for
// concurrent use.
type Session struct {
	username string
	server   string
	conn     net.Conn
}

func NewSession(username, server string) *Session {
	return &Session{username: username, server: server}
}

func (s *Session) ensureConnection() error {
	if s.conn != nil {
		return nil
	}
	conn, err := net.Dial("tcp", s.server)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

// Send writes exactly one request line: "<username>: <message>\n".
// An empty message is valid and acts as a fetch-only request. Trimming
// the message is the caller's concern.
func (s *Session) Send(message string) error {
	if err := s.ensureConnection(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.conn, "%s%s%s\n", s.username, protocol.Separator, message)
	return err
}

// Receive reads the server's reply until end of stream. The server
// closes the connection after replying, which is what terminates this
// read; no deadline is set anywhere, so a stalled server blocks forever.
func (s *Session) Receive() (string, error) {
	if err := s.ensureConnection(); err != nil {
		return "", err
	}
	received, err := io.ReadAll(s.conn)
	if err != nil {
		return "", err
	}
	return string(received), nil
}

// Close drops the current connection; the next Send dials again.
func (s *Session) Close() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}
