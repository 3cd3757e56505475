package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todocal/internal/instrumentation"
	"github.com/sandeepkv93/todocal/internal/update"
)

func newUICmd(cfg *update.RuntimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the calendar to-do terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, cfg)
		},
	}
}

func runUI(cmd *cobra.Command, cfg *update.RuntimeConfig) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rt, err := newRuntime(ctx, *cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := instrumentation.Serve(ctx, cfg.MetricsAddr, rt.metrics, rt.logger); err != nil {
				rt.logger.WithError(err).Warn("metrics listener stopped")
			}
		}()
	}

	m := update.NewModelWithConfig(update.Deps{
		Context:  ctx,
		Provider: rt.provider,
		Open:     rt.open,
		Logger:   rt.logger,
		Metrics:  rt.metrics,
	}, *cfg)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if fm, ok := final.(update.Model); ok {
		_ = fm.Close()
	}
	return err
}
