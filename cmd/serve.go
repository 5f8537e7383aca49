package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simon/remmux/internal/config"
	"github.com/simon/remmux/internal/server"
)

var debugFlag bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the remmux server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		addr := resolveServer(cfg)

		log, closeLog, err := newServerLogger(cfg.LogPath)
		if err != nil {
			return err
		}
		defer closeLog()

		srv, err := server.New(log, "")
		if err != nil {
			return err
		}
		if err := srv.Listen(addr); err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		log.Info("listening", "addr", srv.Addr())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Serve(ctx)
	},
}

// newServerLogger builds the server slog.Logger: text to stderr, and to
// the configured log file as well when one is set.
func newServerLogger(logPath string) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debugFlag {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closeLog := func() {}
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
		closeLog = func() { f.Close() }
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closeLog, nil
}

func init() {
	serveCmd.Flags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd)
}
