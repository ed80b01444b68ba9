package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sheetgrip/internal/domain"
	"sheetgrip/internal/eventbus"
	"sheetgrip/internal/ui"
)

// runSheet starts the interactive demo
func (a *app) runSheet(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New(nil)

	// Record config events before the UI exists
	journal := domain.NewJournal(domain.DefaultJournalSize)
	unsubscribe := bus.SubscribeAll(journal.Record)
	cfg, err := a.loadConfig(bus)
	unsubscribe()
	if err != nil {
		return err
	}
	if a.settings.GetBool("reduce-motion") {
		cfg.Spring.ReduceMotion = true
	}

	closeLog, err := a.setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	logger := slog.Default()
	logger.Info("starting", "version", version, "config", a.configPath(), "detents", len(cfg.Sheet.Detents))

	model, err := ui.NewModel(bus, cfg, journal, logger)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info("interrupted")
			return nil
		}
		logger.Error("program failed", "error", err)
		return err
	}
	logger.Info("exited normally")
	return nil
}
