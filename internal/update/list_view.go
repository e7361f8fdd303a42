package update

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/shoplist/internal/commands"
	"github.com/sandeepkv93/shoplist/internal/session"
)

func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.List.Editing = false
		m.Status = StatusBar{Text: "list mode", IsError: false}
		return m
	case "tab", "shift+tab":
		if m.List.Field == FieldName {
			m.List.Field = FieldQuantity
		} else {
			m.List.Field = FieldName
		}
		m.syncFocus()
		return m
	case "enter":
		return m.submitAddForm()
	}

	var cmd tea.Cmd
	if m.List.Field == FieldQuantity {
		m.qtyInput, cmd = m.qtyInput.Update(msg)
		m.List.QtyInput = m.qtyInput.Value()
	} else {
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.List.NameInput = m.nameInput.Value()
	}
	_ = cmd
	return m
}

func (m Model) handleListKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "i", "a", "enter":
		m.List.Editing = true
		m.List.Field = FieldName
		m.Status = StatusBar{Text: "add item mode", IsError: false}
	case "up", "k":
		if m.List.Cursor > 0 {
			m.List.Cursor--
		}
	case "down", "j":
		if m.List.Cursor < m.Session.Len()-1 {
			m.List.Cursor++
		}
	case "x", "d", "delete":
		m.removeItemAt(m.List.Cursor)
	case "+":
		if item, ok := m.Session.Item(m.List.Cursor); ok {
			m.addItem(item.Name, 1)
		}
	case "C":
		m.clearAll()
	case "b":
		m.List.BulkActive = true
		m.bulkArea.Reset()
		m.List.BulkInput = ""
		m.Status = StatusBar{Text: "bulk add: one item per line, ctrl+s to add", IsError: false}
	}
	return m
}

func (m Model) handleBulkKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.List.BulkActive = false
		m.Status = StatusBar{Text: "bulk add closed", IsError: false}
		return m
	case "ctrl+s":
		return m.submitBulk()
	}
	var cmd tea.Cmd
	m.bulkArea, cmd = m.bulkArea.Update(msg)
	_ = cmd
	m.List.BulkInput = m.bulkArea.Value()
	return m
}

func (m Model) submitAddForm() Model {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		m.Status = StatusBar{Text: "Please enter an item name", IsError: true}
		return m
	}
	qty, err := parseQuantity(m.qtyInput.Value())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.addItem(name, qty)
	m.nameInput.SetValue("")
	m.qtyInput.SetValue("")
	m.List.NameInput = ""
	m.List.QtyInput = ""
	m.List.Field = FieldName
	return m
}

func (m Model) submitBulk() Model {
	added, skipped := 0, 0
	var warning error
	for _, line := range strings.Split(m.bulkArea.Value(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, qty, err := commands.ParseItemSpec(line)
		if err != nil {
			skipped++
			continue
		}
		err = m.Session.AddItem(name, qty)
		if errors.Is(err, session.ErrQuantityTooLarge) {
			skipped++
			continue
		}
		if err != nil {
			warning = err
		}
		added++
	}
	m.List.BulkActive = false
	m.List.BulkInput = ""
	m.bulkArea.Reset()
	text := fmt.Sprintf("added %d item(s)", added)
	if skipped > 0 {
		text += fmt.Sprintf(", skipped %d invalid line(s)", skipped)
	}
	if warning != nil {
		m.warn(warning)
		return m
	}
	m.Status = StatusBar{Text: text, IsError: false}
	m.notify("Bulk Add", text, "info")
	return m
}

// addItem adds or merges name and reports the outcome on the status bar.
func (m *Model) addItem(name string, qty int) {
	name = strings.TrimSpace(name)
	if name == "" || qty < 1 {
		return
	}
	err := m.Session.AddItem(name, qty)
	if errors.Is(err, session.ErrQuantityTooLarge) {
		m.Status = StatusBar{Text: fmt.Sprintf("Quantity of %s is too large", name), IsError: true}
		return
	}
	if err != nil {
		m.warn(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("Added %d %s", qty, name), IsError: false}
	m.notify("Added", m.Status.Text, "info")
}

func (m *Model) removeItemAt(index int) {
	item, ok := m.Session.Item(index)
	if !ok {
		return
	}
	if err := m.Session.RemoveItem(index); err != nil {
		m.warn(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("Removed %s", item.Name), IsError: false}
	m.notify("Removed", m.Status.Text, "info")
}

func (m *Model) clearAll() {
	if err := m.Session.ClearAll(); err != nil {
		m.warn(err)
		return
	}
	m.List.Cursor = 0
	m.Shopping.Cursor = 0
	m.Status = StatusBar{Text: "All items have been cleared", IsError: false}
	m.notify("Cleared", m.Status.Text, "info")
}

func (m Model) focusedInputEmpty() bool {
	if m.List.Field == FieldQuantity {
		return m.qtyInput.Value() == ""
	}
	return m.nameInput.Value() == ""
}

func parseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("quantity must be a whole number of at least 1, got %q", raw)
	}
	return n, nil
}
