package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the on-disk format of Item.AddedAt.
const TimestampLayout = "2006-01-02 15:04:05"

var (
	ErrEmptyName       = errors.New("model: item name is required")
	ErrInvalidQuantity = errors.New("model: item quantity must be at least 1")
)

type Item struct {
	Name     string
	Quantity int
	AddedAt  time.Time
}

// NewItem trims name and truncates at to whole seconds so the value survives
// a round trip through TimestampLayout.
func NewItem(name string, quantity int, at time.Time) (Item, error) {
	item := Item{
		Name:     strings.TrimSpace(name),
		Quantity: quantity,
		AddedAt:  at.Truncate(time.Second),
	}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.Quantity < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, i.Quantity)
	}
	return nil
}

func (i Item) AddedDate() string {
	return i.AddedAt.Format(TimestampLayout)
}

// SameName reports whether name identifies this item.
func (i Item) SameName(name string) bool {
	return strings.EqualFold(i.Name, strings.TrimSpace(name))
}

func ParseTimestamp(raw string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, strings.TrimSpace(raw), time.Local)
}
