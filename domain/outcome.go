package domain

// Outcome is the result of exactly one handler task. It is a closed sum:
// the marker method keeps the set of variants fixed so the reap switch
// stays exhaustive.
type Outcome interface {
	outcome()
}

// NothingReceived means the peer closed the stream before sending a line.
type NothingReceived struct{}

// NoUsername means the line carried no "username: " prefix.
type NoUsername struct{}

// NoMessage is a fetch-only request: a username with empty content.
type NoMessage struct {
	Username string
}

// Posted carries a parsed, non-empty message ready to enter the history.
type Posted struct {
	Message Message
}

// Failed wraps an I/O or data error raised while serving the connection.
type Failed struct {
	Err error
}

func (NothingReceived) outcome() {}
func (NoUsername) outcome()      {}
func (NoMessage) outcome()       {}
func (Posted) outcome()          {}
func (Failed) outcome()          {}
