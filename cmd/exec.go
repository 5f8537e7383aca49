package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simon/remmux/internal/client"
	"github.com/simon/remmux/internal/config"
)

var execCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Send a single command to the server and print the response",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		addr := resolveServer(cfg)

		// One-shot command, no TUI: errors reach the user via the returned
		// error, so logging is not needed here.
		sess, err := client.Dial(slog.New(slog.DiscardHandler), addr)
		if err != nil {
			return fmt.Errorf("cannot reach server at %s: %w", addr, err)
		}
		defer sess.Close()

		resp, err := sess.Send(strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("send failed: %w", err)
		}
		fmt.Print(strings.TrimRight(resp, "\n") + "\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
