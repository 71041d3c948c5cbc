package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"svw.info/pairing/internal/adapters/tui"
)

var logFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run one session in the terminal",
	Long: `Runs a single participant session in the terminal. Leaving the code prompt
empty (or pressing Esc) exits without creating a result file.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (the terminal is taken by the UI)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := newLogger(w, cfg.LogLevel)
	uc, _, err := newService(logger)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(tui.New(cmd.Context(), uc), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if meta, saved := m.Saved(); saved {
		fmt.Fprintf(cmd.OutOrStdout(), "Answers saved to %s\n", meta.Name)
	}
	return nil
}
