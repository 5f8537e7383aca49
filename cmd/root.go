package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/simon/remmux/internal/config"
	"github.com/simon/remmux/internal/state"
	"github.com/simon/remmux/internal/tui"
)

func SetVersionInfo(version, commit string) {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}

var rootCmd = &cobra.Command{
	Use:   "remmux",
	Short: "Multiplex remote shell sessions over TCP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		addr := resolveServer(cfg)

		log, closeLog := newClientLogger()
		defer closeLog()

		startPath, err := probeStartPath(log, addr)
		if err != nil {
			return err
		}

		// History persistence is best-effort: a broken store never blocks
		// the client.
		var history []string
		store, err := state.Open()
		if err != nil {
			store = nil
		} else {
			defer store.Close()
			history, _ = store.Recent(addr, cfg.HistoryLimit)
		}

		m, err := tui.NewModel(tui.Options{
			Addr:       addr,
			StartPath:  startPath,
			Scrollback: cfg.Scrollback,
			Log:        log,
			Store:      store,
			History:    history,
		})
		if err != nil {
			return err
		}

		p := tea.NewProgram(m, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		if final, ok := finalModel.(tui.Model); ok {
			final.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "server address (host:port)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
