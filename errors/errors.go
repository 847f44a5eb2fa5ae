// Package errors defines the relay's error taxonomy: a closed set of
// kinds, a classifier from Go errors to kinds, and the fixed
// human-readable message tables used by the server log and the client's
// fatal exit path.
package errors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
)

var (
	// ErrInvalidData marks a payload that is not valid UTF-8.
	ErrInvalidData = fmt.Errorf("payload is not valid utf-8")
	// ErrWorkerPanic is reported by the supervisor when a worker panics.
	ErrWorkerPanic = fmt.Errorf("worker panic")
)

// Kind partitions I/O failures into the categories the relay reports on.
type Kind int

const (
	// KindUnknown is the catch-all for anything the classifier cannot place.
	KindUnknown Kind = iota

	// Connection errors.
	KindConnectionRefused
	KindConnectionReset
	KindConnectionAborted
	KindBrokenPipe
	KindNotConnected
	KindAddrNotAvailable

	// Data errors.
	KindInvalidData

	// Resource errors.
	KindTimedOut
	KindInterrupted
	KindUnsupported
	KindOutOfMemory

	// Client-side request construction errors.
	KindInvalidInput
	KindWriteZero
)

// Classify maps an error to its Kind. Wrapped errors are unwrapped via
// errors.Is / errors.As, so classification works on anything the net and
// os packages produce.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidData):
		return KindInvalidData
	case errors.Is(err, syscall.ECONNREFUSED):
		return KindConnectionRefused
	case errors.Is(err, syscall.ECONNRESET):
		return KindConnectionReset
	case errors.Is(err, syscall.ECONNABORTED):
		return KindConnectionAborted
	case errors.Is(err, syscall.EPIPE):
		return KindBrokenPipe
	case errors.Is(err, syscall.ENOTCONN):
		return KindNotConnected
	case errors.Is(err, syscall.EADDRNOTAVAIL):
		return KindAddrNotAvailable
	case errors.Is(err, syscall.ETIMEDOUT), errors.Is(err, os.ErrDeadlineExceeded):
		return KindTimedOut
	case errors.Is(err, syscall.EINTR):
		return KindInterrupted
	case errors.Is(err, syscall.EOPNOTSUPP):
		return KindUnsupported
	case errors.Is(err, syscall.ENOMEM):
		return KindOutOfMemory
	case errors.Is(err, syscall.EINVAL):
		return KindInvalidInput
	case errors.Is(err, io.ErrShortWrite):
		return KindWriteZero
	}

	var addrErr *net.AddrError
	if errors.As(err, &addrErr) {
		return KindInvalidInput
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindInvalidInput
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimedOut
	}
	return KindUnknown
}

// serverMessages are the fixed log lines the listener loop emits when it
// discards a failed handler outcome.
var serverMessages = map[Kind]string{
	KindBrokenPipe:  "A pipe closed unexpectedly",
	KindInvalidData: "Received invalid data",
	KindTimedOut:    "Request timed out",
	KindInterrupted: "Receiving data was interrupted",
	KindUnsupported: "Receiving data over internet is not supported",
	KindOutOfMemory: "Request used too much memory",
	KindUnknown:     "Unexpected error occured",
}

// ServerMessage returns the fixed server-side log line for a kind.
func ServerMessage(kind Kind) string {
	if message, ok := serverMessages[kind]; ok {
		return message
	}
	return "Unhandled error occured"
}

// clientMessages are the fatal lines the interactive client prints before
// terminating. Failing loud with no retry is the intended behaviour for a
// single interactive session.
var clientMessages = map[Kind]string{
	KindConnectionRefused: "The server refused to connect!",
	KindConnectionReset:   "The connection was reset by the server!",
	KindConnectionAborted: "The server aborted the connection!",
	KindNotConnected:      "The application tried to send the message before the connection was active!",
	KindAddrNotAvailable:  "The requested address wasn't available!",
	KindBrokenPipe:        "The pipe broke!",
	KindInvalidData:       "The message wasn't valid utf-8!",
	KindInvalidInput:      "The server address is invalid!",
	KindTimedOut:          "The connection took too long!",
	KindWriteZero:         "0 bytes were sent!",
	KindInterrupted:       "The connection was interrupted!",
	KindUnsupported:       "You don't have an internet connection!",
	KindOutOfMemory:       "Sending the message took too much memory!",
	KindUnknown:           "An unknown error occured!",
}

// ClientMessage returns the fixed client-side fatal line for a kind.
func ClientMessage(kind Kind) string {
	if message, ok := clientMessages[kind]; ok {
		return message
	}
	return "An unhandled error occured!"
}
