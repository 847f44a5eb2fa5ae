package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-relay/domain"
	"chat-relay/observability"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so that defers execute before the process
// exits. Binding the listener happens here: a bind failure is the only
// fatal error; everything after is supervised and logged.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Bind the listener (fatal on failure)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	defer func() { _ = listener.Close() }()

	// 3. Loop-owned state and supervision
	history := domain.NewHistory(config.HistoryLimit)
	tracker := runtime.NewTracker(log)
	stats := observability.NewRelayStats()

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewListenerWorker(listener, history, tracker, stats, log),
		workers.NewHeartbeatWorker(log, stats, config.HeartbeatInterval),
	)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting relay", "address", address, "at", time.Now().UTC())
	sup.Run(ctx)

	log.Info("Program stopped cleanly")
	return nil
}
