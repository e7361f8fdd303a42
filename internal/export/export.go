// Package export renders a shopping list snapshot as CSV, YAML or Markdown.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/shoplist/internal/model"
	"github.com/sandeepkv93/shoplist/internal/storage"
)

var ErrUnknownFormat = errors.New("export: unknown format")

type Format string

const (
	FormatCSV      Format = "csv"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatCSV, FormatYAML, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// CartFunc reports whether an item name is in the cart. A nil CartFunc
// means nothing is.
type CartFunc func(name string) bool

func (f CartFunc) has(name string) bool {
	return f != nil && f(name)
}

// Write encodes items to w in the given format.
func Write(w io.Writer, format Format, items []model.Item, inCart CartFunc) error {
	switch format {
	case FormatCSV:
		return storage.WriteTable(w, items)
	case FormatYAML:
		out, err := YAML(items, inCart)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(items, inCart))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

type yamlItem struct {
	Item      string `yaml:"item"`
	Quantity  int    `yaml:"quantity"`
	AddedDate string `yaml:"added_date"`
	InCart    bool   `yaml:"in_cart,omitempty"`
}

type yamlSnapshot struct {
	TotalItems    int        `yaml:"total_items"`
	TotalQuantity int        `yaml:"total_quantity"`
	Items         []yamlItem `yaml:"items"`
}

func YAML(items []model.Item, inCart CartFunc) ([]byte, error) {
	snap := yamlSnapshot{Items: make([]yamlItem, 0, len(items))}
	for _, it := range items {
		snap.TotalItems++
		snap.TotalQuantity += it.Quantity
		snap.Items = append(snap.Items, yamlItem{
			Item:      it.Name,
			Quantity:  it.Quantity,
			AddedDate: it.AddedDate(),
			InCart:    inCart.has(it.Name),
		})
	}
	out, err := yaml.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("export: encode yaml: %w", err)
	}
	return out, nil
}

func Markdown(items []model.Item, inCart CartFunc) string {
	var b strings.Builder
	b.WriteString("# Shopping List\n\n")
	if len(items) == 0 {
		b.WriteString("_No items in your shopping list yet._\n")
		return b.String()
	}

	qty, carted := 0, 0
	for _, it := range items {
		qty += it.Quantity
		if inCart.has(it.Name) {
			carted++
		}
	}
	b.WriteString(fmt.Sprintf("**Total items:** %d | **Total quantity:** %d | **In cart:** %d\n\n", len(items), qty, carted))
	b.WriteString("| # | Item | Quantity | Added | Status |\n")
	b.WriteString("|---|------|----------|-------|--------|\n")
	for i, it := range items {
		status := "Pending"
		if inCart.has(it.Name) {
			status = "In Cart"
		}
		b.WriteString(fmt.Sprintf("| %d | %s | %d | %s | %s |\n", i+1, escapeCell(it.Name), it.Quantity, it.AddedDate(), status))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
