package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/shoplist/internal/session"
	"github.com/sandeepkv93/shoplist/internal/update"
)

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive shopping list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *options) error {
	store, err := opts.cfg.OpenStore()
	if err != nil {
		return err
	}
	defer opts.closeStore(store)

	model := update.NewModelWithConfig(session.NewManager(store), opts.cfg)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("shoplist tui: %w", err)
	}
	return nil
}
