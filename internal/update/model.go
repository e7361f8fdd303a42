package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/shoplist/internal/config"
	"github.com/sandeepkv93/shoplist/internal/session"
)

type View string

const (
	ViewList     View = "Shopping List"
	ViewShopping View = "Shopping Mode"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	List     string
	Shopping string
	Help     string
	Quit     string
}

type InputField int

const (
	FieldName InputField = iota
	FieldQuantity
)

// ListState backs the Shopping List view. Editing routes keystrokes to the
// name and quantity inputs instead of the item list.
type ListState struct {
	Editing    bool
	Field      InputField
	NameInput  string
	QtyInput   string
	Cursor     int
	BulkActive bool
	BulkInput  string
}

type ShoppingState struct {
	Cursor       int
	PromptActive bool
	Password     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	CurrentView   View
	Session       *session.Manager
	List          ListState
	Shopping      ShoppingState
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	InContainer   bool
	Quitting      bool
	LastError     error
	// Bubble components used for rich TUI controls
	itemList        list.Model
	cartTable       table.Model
	nameInput       textinput.Model
	qtyInput        textinput.Model
	passwordInput   textinput.Model
	commandInput    textinput.Model
	bulkArea        textarea.Model
	cartProgress    progress.Model
	helpModel       help.Model
	summaryViewport viewport.Model
	summarySource   string
	uiDensity       int
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type AddItemMsg struct {
	Name     string
	Quantity int
}

// NewModel builds the UI around mgr and loads the stored list into it. A
// load failure is reported on the status bar; the session stays usable.
func NewModel(mgr *session.Manager) Model {
	if mgr == nil {
		mgr = session.NewManager(nil)
	}
	m := Model{
		CurrentView: ViewList,
		Session:     mgr,
		List: ListState{
			Field: FieldName,
		},
		Keys: GlobalKeyMap{
			List:     "1",
			Shopping: "2",
			Help:     "?",
			Quit:     "q",
		},
		uiDensity: 1,
	}
	m.initBubbleComponents()
	if err := mgr.Load(); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("Error loading shopping list: %v", err), IsError: true}
		m.notify("Error", m.Status.Text, "error")
	}
	m.syncBubbleData()
	return m
}

func NewModelWithConfig(mgr *session.Manager, cfg config.RuntimeConfig) Model {
	m := NewModel(mgr)
	m.InContainer = cfg.InContainer
	return m
}
