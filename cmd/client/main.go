package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"chat-relay/client"
	"chat-relay/errors"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run drives one interactive session. Any I/O error while talking to the
// server is fatal on purpose: the typed error carries the categorized
// message up to main, which prints it and terminates. No silent retries.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Resolve server and username: args beat env, prompt is the fallback.
	stdin := bufio.NewReader(os.Stdin)
	who, err := resolveIdentity(config, os.Stdout, stdin, os.Args[1:])
	if err != nil {
		return exitConfig, err
	}
	if err := validator.New().Struct(who); err != nil {
		return exitConfig, fmt.Errorf("invalid identity: %w", err)
	}
	log.Debug("Session ready", "server", who.Server, "username", who.Username)

	// 3. Prompt loop: send one line, read the reply to EOF, drop the
	// connection. An empty line is a fetch-only update.
	session := client.NewSession(who.Username, who.Server)
	prompt := color.New(color.FgCyan).Render("Enter a message to send or just press enter to update: ")
	for {
		message, err := readInputLine(os.Stdout, stdin, prompt)
		if err == io.EOF {
			// Terminal input ended: leave quietly.
			return exitOK, nil
		}
		if err != nil {
			log.Error("Failed to read message", "error", err)
			continue
		}
		message = strings.TrimSpace(message)

		if err := session.Send(message); err != nil {
			return exitRuntime, fatal(err)
		}
		received, err := session.Receive()
		if err != nil {
			return exitRuntime, fatal(err)
		}
		fmt.Println(received)
		session.Close()
	}
}

// fatal wraps an I/O error with its fixed per-kind message.
func fatal(err error) error {
	return fmt.Errorf("%s (%w)", errors.ClientMessage(errors.Classify(err)), err)
}

// resolveIdentity fills the server address and username from positional
// arguments, then the environment, then an interactive prompt.
func resolveIdentity(config Config, output io.Writer, input *bufio.Reader, args []string) (identity, error) {
	who := identity{Server: config.ServerAddress, Username: config.Username}
	if len(args) > 0 {
		who.Server = args[0]
	}
	if len(args) > 1 {
		who.Username = args[1]
	}

	var err error
	if who.Server == "" {
		who.Server, err = readInputLine(output, input, "Enter the address of the server: ")
		if err != nil {
			return identity{}, fmt.Errorf("failed to read the address of the server: %w", err)
		}
	}
	if who.Username == "" {
		who.Username, err = readInputLine(output, input, "Enter your username: ")
		if err != nil {
			return identity{}, fmt.Errorf("failed to read your username: %w", err)
		}
	}
	who.Server = strings.TrimSpace(who.Server)
	who.Username = strings.TrimSpace(who.Username)
	return who, nil
}

// readInputLine prints a prompt and reads one line from the input.
func readInputLine(output io.Writer, input *bufio.Reader, request string) (string, error) {
	if _, err := io.WriteString(output, request); err != nil {
		return "", err
	}
	line, err := input.ReadString('\n')
	if err == io.EOF && line == "" {
		return "", io.EOF
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	return line, nil
}
