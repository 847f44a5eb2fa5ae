package test

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"strings"
	"testing"
	"time"

	"chat-relay/client"
	"chat-relay/domain"
	"chat-relay/observability"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

const (
	waitFor = 2 * time.Second
	tick    = 20 * time.Millisecond
)

// RelaySuite runs the full wire contract against an in-process relay
// listening on a real TCP socket.
type RelaySuite struct {
	suite.Suite
	config Config
	addr   string
	cancel context.CancelFunc
}

func TestRelaySuite(t *testing.T) {
	suite.Run(t, new(RelaySuite))
}

func (s *RelaySuite) SetupSuite() {
	var err error
	s.config, err = LoadConfig()
	s.Require().NoError(err)
}

// SetupTest starts a fresh relay per test so histories never leak
// between scenarios.
func (s *RelaySuite) SetupTest() {
	log := logs.GetLoggerFromLevel(slog.LevelError)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)

	worker := workers.NewListenerWorker(
		listener,
		domain.NewHistory(s.config.HistoryLimit),
		runtime.NewTracker(log),
		observability.NewRelayStats(),
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() { _ = worker.Run(ctx) }()

	s.addr = listener.Addr().String()
}

func (s *RelaySuite) TearDownTest() {
	s.cancel()
}

// logStep prints a colorized scenario header, mirroring how the relay's
// operators read the e2e logs.
func (s *RelaySuite) logStep(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// exchange performs one full request: dial, send, read to EOF, close.
func (s *RelaySuite) exchange(username, message string) string {
	session := client.NewSession(username, s.addr)
	defer session.Close()
	s.Require().NoError(session.Send(message))
	received, err := session.Receive()
	s.Require().NoError(err)
	return received
}

// post sends a message and waits until it is visible in the history,
// which happens at a later accept iteration.
func (s *RelaySuite) post(username, message string) {
	s.exchange(username, message)
	s.Require().Eventually(func() bool {
		return slices.Contains(strings.Split(s.exchange(username, ""), "\n"), "you: "+message)
	}, waitFor, tick)
}

func (s *RelaySuite) Test_FetchOnlyReturnsHistoryVerbatim() {
	s.logStep("fetch-only returns the running history")

	s.post("alice", "hello")
	s.post("bob", "hi there")
	s.post("dave", "a: b")

	// carol authored nothing: she receives all three lines unmodified.
	s.Require().Eventually(func() bool {
		return s.exchange("carol", "") == "alice: hello\nbob: hi there\ndave: a: b"
	}, waitFor, tick)
}

func (s *RelaySuite) Test_OwnMessagesAreRewritten() {
	s.logStep("own messages render as you:")

	s.post("alice", "hello")
	s.post("bob", "hi alice")

	s.Require().Eventually(func() bool {
		return s.exchange("alice", "") == "you: hello\nbob: hi alice"
	}, waitFor, tick)
	s.Require().Eventually(func() bool {
		return s.exchange("bob", "") == "alice: hello\nyou: hi alice"
	}, waitFor, tick)
}

func (s *RelaySuite) Test_OverflowEvictsOldestFirst() {
	s.logStep("overflow evicts from the front")

	s.post("alice", "one")
	s.post("alice", "two")
	s.post("alice", "three")
	s.post("alice", "four")

	// Capacity is HistoryLimit (3): "one" is gone, order preserved.
	s.Require().Eventually(func() bool {
		return s.exchange("carol", "") == "alice: two\nalice: three\nalice: four"
	}, waitFor, tick)
}

func (s *RelaySuite) Test_EmptyHistoryYieldsEmptyReply() {
	s.logStep("empty history replies with nothing, then closes")

	s.Require().Equal("", s.exchange("carol", ""))
}
