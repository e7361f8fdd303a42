package update

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/shoplist/internal/export"
	"github.com/sandeepkv93/shoplist/internal/views"
)

func (m *Model) initBubbleComponents() {
	m.itemList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.itemList.Title = "Your Shopping List"
	m.itemList.SetShowHelp(false)
	m.itemList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "In Cart", Width: 7},
		{Title: "Item", Width: 24},
		{Title: "Quantity", Width: 8},
		{Title: "Status", Width: 9},
	}
	m.cartTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.nameInput = textinput.New()
	m.nameInput.Prompt = "item> "
	m.nameInput.Placeholder = "Enter item name..."
	m.nameInput.CharLimit = 256
	m.nameInput.Width = 42

	m.qtyInput = textinput.New()
	m.qtyInput.Prompt = "qty> "
	m.qtyInput.Placeholder = "1"
	m.qtyInput.CharLimit = 6
	m.qtyInput.Width = 8

	m.passwordInput = textinput.New()
	m.passwordInput.Prompt = "password> "
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.EchoCharacter = '*'
	m.passwordInput.CharLimit = 64
	m.passwordInput.Width = 24

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.bulkArea = textarea.New()
	m.bulkArea.SetWidth(54)
	m.bulkArea.SetHeight(6)
	m.bulkArea.ShowLineNumbers = false
	m.bulkArea.Placeholder = "milk 2\neggs 12\nbread"

	m.cartProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	m.helpModel = help.New()
	m.summaryViewport = viewport.New(54, 12)
}

// syncBubbleData pushes session state into the display components. Input
// components own their text and are only written on explicit resets.
func (m *Model) syncBubbleData() {
	listWidth, listHeight, tableHeight, viewportHeight := densityDimensions(m.uiDensity)
	m.itemList.SetSize(listWidth, listHeight)
	m.cartTable.SetHeight(tableHeight)
	m.summaryViewport.Height = viewportHeight

	items := m.Session.Items()
	m.List.Cursor = clampCursor(m.List.Cursor, len(items))
	m.Shopping.Cursor = clampCursor(m.Shopping.Cursor, len(items))

	listItems := make([]list.Item, 0, len(items))
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		inCart := m.Session.InCart(item.Name)
		listItems = append(listItems, listItem{
			title:       views.TruncateName(item.Name),
			description: fmt.Sprintf("qty %d | added %s", item.Quantity, item.AddedDate()),
		})
		rows = append(rows, table.Row{
			views.CartMark(inCart),
			views.TruncateName(item.Name),
			strconv.Itoa(item.Quantity),
			views.StatusLabel(inCart),
		})
	}
	m.itemList.SetItems(listItems)
	if len(listItems) > 0 {
		m.itemList.Select(m.List.Cursor)
	}
	m.cartTable.SetRows(rows)
	if len(rows) > 0 {
		m.cartTable.SetCursor(m.Shopping.Cursor)
	}

	m.syncFocus()

	md := export.Markdown(items, m.Session.InCart)
	if md != m.summarySource {
		m.summarySource = md
		m.summaryViewport.SetContent(views.RenderMarkdown(md, m.summaryViewport.Width))
	}
}

func (m *Model) syncFocus() {
	m.nameInput.Blur()
	m.qtyInput.Blur()
	m.passwordInput.Blur()
	m.commandInput.Blur()
	m.bulkArea.Blur()
	switch {
	case m.Palette.Active:
		m.commandInput.Focus()
	case m.CurrentView == ViewShopping && m.Shopping.PromptActive:
		m.passwordInput.Focus()
	case m.CurrentView == ViewList && m.List.BulkActive:
		m.bulkArea.Focus()
	case m.CurrentView == ViewList && m.List.Editing:
		if m.List.Field == FieldQuantity {
			m.qtyInput.Focus()
		} else {
			m.nameInput.Focus()
		}
	}
}

func (m Model) cartRatio() float64 {
	stats := m.Session.Stats()
	if stats.TotalItems == 0 {
		return 0
	}
	return float64(stats.InCart) / float64(stats.TotalItems)
}

func densityDimensions(level int) (listWidth int, listHeight int, tableHeight int, viewportHeight int) {
	switch level {
	case 2:
		return 60, 14, 12, 14
	case 3:
		return 64, 16, 14, 16
	default:
		return 56, 12, 10, 12
	}
}

func (m *Model) cycleDensity() {
	m.uiDensity++
	if m.uiDensity > 3 {
		m.uiDensity = 1
	}
	m.Status = StatusBar{
		Text:    fmt.Sprintf("density level: %d", m.uiDensity),
		IsError: false,
	}
}
