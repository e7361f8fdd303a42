// Package cli wires the shoplist cobra commands to a session.Manager.
package cli

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/shoplist/internal/config"
	"github.com/sandeepkv93/shoplist/internal/session"
	"github.com/sandeepkv93/shoplist/internal/storage"
)

// Set with -ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

type options struct {
	overrides config.Overrides
	cfg       config.RuntimeConfig
	log       *log.Logger
}

func New() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "shoplist",
		Short: "Keep a shopping list and tick items off while you shop.",
		Long: "Keep a shopping list and tick items off while you shop.\n\n" +
			"Without a subcommand shoplist opens the terminal UI when stdout is a\n" +
			"terminal and prints the list otherwise.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.log = log.New(cmd.ErrOrStderr(), "shoplist: ", 0)
			cfg, err := config.Load(opts.overrides)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			if cfg.NoColor {
				color.NoColor = true
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isTerminal(cmd.OutOrStdout()) {
				return runTUI(cmd, opts)
			}
			return runList(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.overrides.ConfigFile, "config", "", "config file (default is ./.shoplist.yaml or $HOME/.shoplist.yaml)")
	cmd.PersistentFlags().StringVar(&opts.overrides.DataDir, "data-dir", "", "directory holding the shopping list (default \"data\")")
	cmd.PersistentFlags().StringVar(&opts.overrides.Backend, "backend", "", "storage backend: csv, sqlite or diskv (default \"csv\")")

	cmd.AddCommand(newTUICmd(opts))
	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newRemoveCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))
	cmd.AddCommand(newClearCmd(opts))
	cmd.AddCommand(newResetCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// withSession opens the configured store, loads it into a fresh session and
// hands it to fn. Load problems are logged and the session starts empty.
func (o *options) withSession(fn func(*session.Manager) error) error {
	store, err := o.cfg.OpenStore()
	if err != nil {
		return err
	}
	defer o.closeStore(store)

	mgr := session.NewManager(store)
	if err := mgr.Load(); err != nil {
		o.log.Printf("warning: %v", err)
	}
	return fn(mgr)
}

func (o *options) closeStore(store storage.Store) {
	if err := store.Close(); err != nil {
		o.log.Printf("warning: close store: %v", err)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
