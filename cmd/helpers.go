package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/simon/remmux/internal/client"
	"github.com/simon/remmux/internal/config"
	"github.com/simon/remmux/internal/proto"
)

var serverFlag string

// resolveServer picks the server address: the --server flag wins over the
// config file, which wins over the built-in default.
func resolveServer(cfg *config.Config) string {
	if serverFlag != "" {
		return serverFlag
	}
	if cfg.Server != "" {
		return cfg.Server
	}
	return config.DefaultServer
}

// newClientLogger builds the client-side slog.Logger, writing to
// $XDG_STATE_HOME/remmux/client.log. The client never logs to stdout or
// stderr: the TUI owns the terminal, and writes there would corrupt the
// display. When the log file cannot be opened, logging is discarded
// rather than redirected.
func newClientLogger() (*slog.Logger, func()) {
	discard := slog.New(slog.DiscardHandler)

	home, err := os.UserHomeDir()
	if err != nil {
		return discard, func() {}
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateHome, "remmux")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard, func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, "client.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discard, func() {}
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }
}

// probeStartPath asks the server for its working directory over a short
// probe connection, so the client prompt starts on the real remote path.
func probeStartPath(log *slog.Logger, addr string) (string, error) {
	sess, err := client.Dial(log, addr)
	if err != nil {
		return "", fmt.Errorf("cannot reach server at %s: %w", addr, err)
	}
	defer sess.Close()

	resp, err := sess.Send("cd .")
	if err != nil {
		return "", fmt.Errorf("server handshake failed: %w", err)
	}
	if proto.IsFailure(resp) {
		return "", fmt.Errorf("server handshake failed: %s", resp)
	}
	path := proto.PathFromResponse(resp)
	if path == "" {
		return "", fmt.Errorf("server handshake returned no path")
	}
	return path, nil
}
