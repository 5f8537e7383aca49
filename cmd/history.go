package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon/remmux/internal/config"
	"github.com/simon/remmux/internal/state"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print persisted command history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		limit := historyLimitFlag
		if limit <= 0 {
			limit = cfg.HistoryLimit
		}

		store, err := state.Open()
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer store.Close()

		entries, err := store.List(limit)
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		for _, e := range entries {
			fmt.Printf("%s  %-21s  %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Addr, e.Command)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 0, "maximum entries to print")
	rootCmd.AddCommand(historyCmd)
}
