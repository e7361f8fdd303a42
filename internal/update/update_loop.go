package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/shoplist/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.summaryViewport.Width = max(20, typed.Width/2-6)
		m.summarySource = ""
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case AddItemMsg:
		m.addItem(typed.Name, typed.Quantity)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	if m.Palette.Active {
		if keyStr == m.Keys.Help && m.commandInput.Value() == "" {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handlePaletteKey(msg), nil
	}

	// Modal inputs take every key until they are closed with esc.
	if m.CurrentView == ViewShopping && m.Shopping.PromptActive {
		return m.handlePasswordKey(msg), nil
	}
	if m.CurrentView == ViewList && m.List.BulkActive {
		return m.handleBulkKey(msg), nil
	}
	if m.CurrentView == ViewList && m.List.Editing && !(keyStr == "/" && m.focusedInputEmpty()) {
		return m.handleEditKey(msg), nil
	}

	switch keyStr {
	case "/":
		m.openPalette()
		return m, nil
	case m.Keys.List:
		m.switchView(ViewList)
		return m, nil
	case m.Keys.Shopping:
		m.switchView(ViewShopping)
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown", IsError: false}
		} else {
			m.Status = StatusBar{Text: "help hidden", IsError: false}
		}
		return m, nil
	case "D":
		m.cycleDensity()
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.summaryViewport, cmd = m.summaryViewport.Update(msg)
		return m, cmd
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewList:
		return m.handleListKey(msg), nil
	case ViewShopping:
		return m.handleShoppingKey(msg), nil
	}
	return m, nil
}

func (m *Model) switchView(v View) {
	m.CurrentView = v
	m.Shopping.PromptActive = false
	m.passwordInput.SetValue("")
	m.Shopping.Password = ""
	if v == ViewShopping {
		if pruned := m.Session.PruneCart(); pruned > 0 {
			m.notify("Cart", fmt.Sprintf("dropped %d stale cart entries", pruned), "info")
		}
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	switch m.CurrentView {
	case ViewList:
		leftPane = m.renderListView()
	case ViewShopping:
		leftPane = m.renderShoppingView()
	}
	rightPane := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.summaryViewport.View(),
		m.renderHelpIfVisible(),
	}, "\n\n"))

	return views.RenderApp(views.AppData{
		Header: views.RenderHeader(views.HeaderData{
			Title:       "shoplist",
			CurrentView: string(m.CurrentView),
			SessionID:   m.Session.ID(),
			InContainer: m.InContainer,
		}),
		LeftPane:      leftPane,
		RightPane:     rightPane,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  m.renderNotificationsView(),
		Footer:        fmt.Sprintf("keys: %s list | %s shopping | / cmd | %s help | %s quit", m.Keys.List, m.Keys.Shopping, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewList, ViewShopping:
		return true
	default:
		return false
	}
}
