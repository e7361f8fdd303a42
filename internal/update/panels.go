package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/shoplist/internal/views"
)

func (m Model) renderListView() string {
	stats := m.Session.Stats()
	return views.RenderListPanel(views.ListPanelData{
		TotalItems:    stats.TotalItems,
		TotalQuantity: stats.TotalQuantity,
		NameInput:     m.nameInput.View(),
		QtyInput:      m.qtyInput.View(),
		ListView:      m.itemList.View(),
		Empty:         stats.TotalItems == 0,
		BulkActive:    m.List.BulkActive,
		BulkView:      m.bulkArea.View(),
	})
}

func (m Model) renderShoppingView() string {
	stats := m.Session.Stats()
	return views.RenderShoppingPanel(views.ShoppingPanelData{
		Total:        stats.TotalItems,
		InCart:       stats.InCart,
		Remaining:    stats.Remaining,
		ProgressView: m.cartProgress.ViewAs(m.cartRatio()),
		TableView:    m.cartTable.View(),
		Empty:        stats.TotalItems == 0,
		PromptActive: m.Shopping.PromptActive,
		PromptView:   m.passwordInput.View(),
	})
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.Value())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}

// warn reports a persistence failure. The in-memory list already holds the
// change.
func (m *Model) warn(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: fmt.Sprintf("Error saving shopping list: %v", err), IsError: true}
	m.notify("Error", m.Status.Text, "error")
}
