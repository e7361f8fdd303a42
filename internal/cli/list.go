package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/shoplist/internal/model"
	"github.com/sandeepkv93/shoplist/internal/session"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print the shopping list.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print item and quantity totals.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withSession(func(mgr *session.Manager) error {
				printStats(cmd.OutOrStdout(), mgr.Stats())
				return nil
			})
		},
	}
}

func runList(cmd *cobra.Command, opts *options) error {
	return opts.withSession(func(mgr *session.Manager) error {
		printItems(cmd.OutOrStdout(), mgr.Items())
		return nil
	})
}

func printItems(w io.Writer, items []model.Item) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "No items in your shopping list yet!")
		return
	}
	bold := color.New(color.Bold)
	qty := color.New(color.FgHiYellow)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Item"), bold.Sprint("Qty"), bold.Sprint("Added"))
	total := 0
	for i, it := range items {
		total += it.Quantity
		tbl.AddRow(i+1, it.Name, qty.Sprint(it.Quantity), faint.Sprint(it.AddedDate()))
	}
	tbl.RightAlign(0)
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintf(w, "\n%d item(s), %d in total\n", len(items), total)
}

func printStats(w io.Writer, s session.Stats) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Total items:"), s.TotalItems)
	tbl.AddRow(bold.Sprint("Total quantity:"), s.TotalQuantity)
	_, _ = fmt.Fprintln(w, tbl)
}
