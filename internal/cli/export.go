package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/shoplist/internal/export"
	"github.com/sandeepkv93/shoplist/internal/model"
	"github.com/sandeepkv93/shoplist/internal/session"
)

var createExport = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func newExportCmd(opts *options) *cobra.Command {
	format := string(export.FormatCSV)
	output := ""
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the shopping list as csv, yaml or markdown.",
		Example: `
shoplist export --format markdown
shoplist export --format yaml -o list.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return opts.withSession(func(mgr *session.Manager) error {
				// The cart lives only inside a TUI session, so exports show
				// every item as pending.
				if output == "" || output == "-" {
					return export.Write(cmd.OutOrStdout(), f, mgr.Items(), nil)
				}
				return writeExportFile(output, f, mgr.Items())
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", format, "Output format. One of 'csv', 'yaml' or 'markdown'.")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout.")
	return cmd
}

func writeExportFile(path string, f export.Format, items []model.Item) error {
	file, err := createExport(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.Write(file, f, items, nil); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
