package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/shoplist/internal/commands"
	"github.com/sandeepkv93/shoplist/internal/session"
)

func (m *Model) openPalette() {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active", IsError: false}
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	var warning error
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			err := m.Session.AddItem(a.Name, a.Quantity)
			if errors.Is(err, session.ErrQuantityTooLarge) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("quantity of %s is too large", a.Name)}
			}
			warning = err
			return commands.Result{Message: fmt.Sprintf("Added %d %s", a.Quantity, a.Name)}, nil
		},
		Remove: func(r commands.RemoveArgs) (commands.Result, error) {
			item, ok := m.Session.Item(r.Number - 1)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no item #%d", r.Number)}
			}
			warning = m.Session.RemoveItem(r.Number - 1)
			return commands.Result{Message: fmt.Sprintf("Removed %s", item.Name)}, nil
		},
		Cart: func(c commands.CartArgs) (commands.Result, error) {
			if !m.Session.HasItem(c.Name) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no item named %q", c.Name)}
			}
			m.Session.AddToCart(c.Name)
			return commands.Result{Message: fmt.Sprintf("%s added to cart", c.Name)}, nil
		},
		Uncart: func(c commands.CartArgs) (commands.Result, error) {
			m.Session.RemoveFromCart(c.Name)
			return commands.Result{Message: fmt.Sprintf("%s back to pending", c.Name)}, nil
		},
		Clear: func() (commands.Result, error) {
			warning = m.Session.ClearAll()
			return commands.Result{Message: "All items have been cleared"}, nil
		},
		Reset: func(r commands.ResetArgs) (commands.Result, error) {
			ok, err := m.Session.ResetWithPassword(r.Password)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "Incorrect password! Shopping list was not reset."}
			}
			warning = err
			return commands.Result{Message: "Shopping list has been reset successfully!"}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			if s.Subject == "shopping" {
				m.switchView(ViewShopping)
			} else {
				m.switchView(ViewList)
			}
			return commands.Result{Message: fmt.Sprintf("showing %s", strings.ToLower(string(m.CurrentView)))}, nil
		},
	})
	switch {
	case err != nil:
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	case warning != nil:
		m.warn(warning)
	default:
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.closePalette()
	return m
}
