package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/shoplist/internal/commands"
	"github.com/sandeepkv93/shoplist/internal/session"
)

var ErrWrongPassword = errors.New("incorrect password! shopping list was not reset")

func newAddCmd(opts *options) *cobra.Command {
	quantity := 1
	cmd := &cobra.Command{
		Use:   "add <item...> [qty]",
		Short: "Add an item, or more of an item already on the list.",
		Example: `
shoplist add milk
shoplist add oat milk 2
shoplist add eggs -q 12
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := strings.Join(args, " ")
			name, qty := strings.Join(strings.Fields(spec), " "), quantity
			if cmd.Flags().Changed("quantity") {
				if quantity < 1 {
					return fmt.Errorf("quantity must be at least 1, got %d", quantity)
				}
			} else {
				var err error
				if name, qty, err = commands.ParseItemSpec(spec); err != nil {
					return err
				}
			}
			if name == "" {
				return errors.New("item name is required")
			}
			return opts.withSession(func(mgr *session.Manager) error {
				err := mgr.AddItem(name, qty)
				if errors.Is(err, session.ErrQuantityTooLarge) {
					return fmt.Errorf("add %s: %w", name, err)
				}
				if err != nil {
					return fmt.Errorf("save shopping list: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %d %s\n", qty, name)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "How many to add.")
	return cmd
}

func newRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <number>",
		Aliases: []string{"remove", "del"},
		Short:   "Remove the item at the given list number.",
		Example: `
shoplist rm 2
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid item number: %s", args[0])
			}
			return opts.withSession(func(mgr *session.Manager) error {
				item, ok := mgr.Item(n - 1)
				if !ok {
					return fmt.Errorf("no item #%d, the list has %d item(s)", n, mgr.Len())
				}
				if err := mgr.RemoveItem(n - 1); err != nil {
					return fmt.Errorf("save shopping list: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", item.Name)
				return nil
			})
		},
	}
}

func newClearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withSession(func(mgr *session.Manager) error {
				if err := mgr.ClearAll(); err != nil {
					return fmt.Errorf("clear shopping list: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "All items have been cleared")
				return nil
			})
		},
	}
}

func newResetCmd(opts *options) *cobra.Command {
	password := ""
	cmd := &cobra.Command{
		Use:   "reset --password <password>",
		Short: "Clear the list after a password check.",
		Example: `
shoplist reset --password shopping
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withSession(func(mgr *session.Manager) error {
				ok, err := mgr.ResetWithPassword(password)
				if !ok {
					return ErrWrongPassword
				}
				if err != nil {
					return fmt.Errorf("reset shopping list: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Shopping list has been reset successfully!")
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Reset password.")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
