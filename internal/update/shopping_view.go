package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleShoppingKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Shopping.Cursor > 0 {
			m.Shopping.Cursor--
		}
	case "down", "j":
		if m.Shopping.Cursor < m.Session.Len()-1 {
			m.Shopping.Cursor++
		}
	case " ", "enter":
		m.toggleCartAt(m.Shopping.Cursor)
	case "r":
		if m.Session.Len() == 0 {
			return m
		}
		m.Shopping.PromptActive = true
		m.Shopping.Password = ""
		m.passwordInput.SetValue("")
		m.Status = StatusBar{Text: "enter the password to reset the list", IsError: false}
	}
	return m
}

func (m Model) handlePasswordKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePasswordPrompt()
		m.Status = StatusBar{Text: "reset cancelled", IsError: false}
		return m
	case "enter":
		return m.submitReset(m.passwordInput.Value())
	}
	var cmd tea.Cmd
	m.passwordInput, cmd = m.passwordInput.Update(msg)
	_ = cmd
	m.Shopping.Password = m.passwordInput.Value()
	return m
}

func (m Model) submitReset(password string) Model {
	ok, err := m.Session.ResetWithPassword(password)
	if !ok {
		m.passwordInput.SetValue("")
		m.Shopping.Password = ""
		m.Status = StatusBar{Text: "Incorrect password! Shopping list was not reset.", IsError: true}
		m.notify("Reset", m.Status.Text, "error")
		return m
	}
	m.closePasswordPrompt()
	m.List.Cursor = 0
	m.Shopping.Cursor = 0
	if err != nil {
		m.warn(err)
		return m
	}
	m.Status = StatusBar{Text: "Shopping list has been reset successfully!", IsError: false}
	m.notify("Reset", m.Status.Text, "info")
	return m
}

func (m *Model) closePasswordPrompt() {
	m.Shopping.PromptActive = false
	m.Shopping.Password = ""
	m.passwordInput.SetValue("")
}

func (m *Model) toggleCartAt(index int) {
	item, ok := m.Session.Item(index)
	if !ok {
		return
	}
	if m.Session.ToggleCart(item.Name) {
		m.Status = StatusBar{Text: fmt.Sprintf("%s added to cart", item.Name), IsError: false}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("%s back to pending", item.Name), IsError: false}
	}
}
