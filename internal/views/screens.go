package views

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
)

const nameWidth = 32

type HeaderData struct {
	Title       string
	CurrentView string
	SessionID   string
	InContainer bool
}

type ListPanelData struct {
	TotalItems    int
	TotalQuantity int
	NameInput     string
	QtyInput      string
	ListView      string
	Empty         bool
	BulkActive    bool
	BulkView      string
}

type ShoppingPanelData struct {
	Total        int
	InCart       int
	Remaining    int
	ProgressView string
	TableView    string
	Empty        bool
	PromptActive bool
	PromptView   string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderHeader(data HeaderData) string {
	var b strings.Builder
	b.WriteString(data.Title)
	if data.CurrentView != "" {
		b.WriteString(" | " + data.CurrentView)
	}
	if id := shortID(data.SessionID); id != "" {
		b.WriteString(" | session " + id)
	}
	if data.InContainer {
		b.WriteString(" [docker]")
	}
	return b.String()
}

func RenderListPanel(data ListPanelData) string {
	var b strings.Builder
	b.WriteString("shopping list:\n")
	b.WriteString(fmt.Sprintf("total items: %d | total quantity: %d\n", data.TotalItems, data.TotalQuantity))
	b.WriteString("\nadd new item:\n")
	b.WriteString(data.NameInput + "\n")
	b.WriteString(data.QtyInput + "\n")
	b.WriteString("actions: [enter]add [tab]field [x]remove [+]one more [C]clear all [b]bulk add\n\n")
	if data.Empty {
		b.WriteString("No items in your shopping list yet!\nAdd some items above to get started!")
	} else {
		b.WriteString(data.ListView)
	}
	if data.BulkActive {
		b.WriteString("\n\nbulk-add:\n")
		b.WriteString("one item per line as 'name qty' | [ctrl+s] add all [esc] close\n")
		b.WriteString(data.BulkView)
	}
	return strings.TrimSpace(b.String())
}

func RenderShoppingPanel(data ShoppingPanelData) string {
	var b strings.Builder
	b.WriteString("shopping mode:\n")
	if data.Empty {
		b.WriteString("No items in your shopping list!\nGo to the Shopping List view [1] to add some items first.")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("total: %d | in cart: %d | remaining: %d\n", data.Total, data.InCart, data.Remaining))
	b.WriteString(data.ProgressView + "\n")
	b.WriteString("actions: [j/k]move [space]cart [r]reset list\n")
	b.WriteString(data.TableView)
	if data.PromptActive {
		b.WriteString("\n\nreset shopping list:\n")
		b.WriteString("Warning: this will clear all items from your shopping list.\n")
		b.WriteString(data.PromptView + "\n")
		b.WriteString("Hint: The password is 'shopping'\n")
		b.WriteString("[enter] reset [esc] cancel")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s\n%s view:\n%s",
		data.HelpView,
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
	)
}

// TruncateName shortens long item names for table and list cells.
func TruncateName(name string) string {
	return truncate.StringWithTail(name, nameWidth, "…")
}

// StatusLabel is the shopping-mode status column text.
func StatusLabel(inCart bool) string {
	if inCart {
		return "In Cart"
	}
	return "Pending"
}

// CartMark is the checkbox column text.
func CartMark(inCart bool) string {
	if inCart {
		return "[x]"
	}
	return "[ ]"
}

func shortID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
