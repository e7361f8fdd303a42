// Package session holds the shopping list and cart for one user session and
// persists every list mutation through a storage.Store.
package session

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/shoplist/internal/model"
	"github.com/sandeepkv93/shoplist/internal/storage"
)

// ResetPassword gates ResetWithPassword.
const ResetPassword = "shopping"

// ErrQuantityTooLarge is returned by AddItem when merging would overflow the
// item's quantity. The list is left unchanged.
var ErrQuantityTooLarge = errors.New("session: quantity too large")

type Stats struct {
	TotalItems    int
	TotalQuantity int
	InCart        int
	Remaining     int
}

// Manager is not safe for concurrent use; callers handle one action at a time.
type Manager struct {
	id    string
	store storage.Store
	items []model.Item
	cart  map[string]struct{}
	now   func() time.Time
}

func NewManager(store storage.Store) *Manager {
	return NewManagerWithClock(store, time.Now)
}

func NewManagerWithClock(store storage.Store, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		id:    uuid.NewString(),
		store: store,
		items: make([]model.Item, 0),
		cart:  make(map[string]struct{}),
		now:   now,
	}
}

func (m *Manager) ID() string { return m.id }

// Load fills an empty session from the store. A returned error is a warning;
// the session is still usable.
func (m *Manager) Load() error {
	if len(m.items) > 0 || m.store == nil {
		return nil
	}
	loaded, err := m.store.Load()
	for _, item := range loaded {
		if idx := m.indexOf(item.Name); idx >= 0 {
			m.items[idx].Quantity = addCapped(m.items[idx].Quantity, item.Quantity)
			continue
		}
		m.items = append(m.items, item)
	}
	return err
}

// AddItem merges quantity into an existing item with the same name (ignoring
// case) or appends a new one. Blank names and quantities below 1 are ignored.
func (m *Manager) AddItem(name string, quantity int) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || quantity < 1 {
		return nil
	}
	if idx := m.indexOf(trimmed); idx >= 0 {
		if quantity > math.MaxInt-m.items[idx].Quantity {
			return ErrQuantityTooLarge
		}
		m.items[idx].Quantity += quantity
		return m.persist()
	}
	item, err := model.NewItem(trimmed, quantity, m.now())
	if err != nil {
		return nil
	}
	m.items = append(m.items, item)
	return m.persist()
}

// RemoveItem drops the item at index. Out of range indexes are ignored. Cart
// entries for the removed name are left in place.
func (m *Manager) RemoveItem(index int) error {
	if index < 0 || index >= len(m.items) {
		return nil
	}
	m.items = append(m.items[:index], m.items[index+1:]...)
	return m.persist()
}

// ClearAll empties the list and the cart and writes an empty snapshot.
func (m *Manager) ClearAll() error {
	m.items = make([]model.Item, 0)
	m.cart = make(map[string]struct{})
	if m.store == nil {
		return nil
	}
	return m.store.Clear()
}

func (m *Manager) AddToCart(name string) {
	m.cart[name] = struct{}{}
}

func (m *Manager) RemoveFromCart(name string) {
	delete(m.cart, name)
}

// ToggleCart flips cart membership for name and reports the new state.
func (m *Manager) ToggleCart(name string) bool {
	if _, ok := m.cart[name]; ok {
		delete(m.cart, name)
		return false
	}
	m.cart[name] = struct{}{}
	return true
}

// ResetWithPassword clears everything when password matches ResetPassword.
// The bool reports whether the reset happened.
func (m *Manager) ResetWithPassword(password string) (bool, error) {
	if password != ResetPassword {
		return false, nil
	}
	return true, m.ClearAll()
}

// InCart reports membership for a current item only.
func (m *Manager) InCart(name string) bool {
	if _, ok := m.cart[name]; !ok {
		return false
	}
	return m.HasItem(name)
}

// PruneCart drops cart entries that no longer match an item and returns how
// many were removed.
func (m *Manager) PruneCart() int {
	live := make(map[string]struct{}, len(m.items))
	for _, item := range m.items {
		live[item.Name] = struct{}{}
	}
	pruned := 0
	for name := range m.cart {
		if _, ok := live[name]; !ok {
			delete(m.cart, name)
			pruned++
		}
	}
	return pruned
}

func (m *Manager) Items() []model.Item {
	out := make([]model.Item, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager) Len() int { return len(m.items) }

// Item returns the item at index.
func (m *Manager) Item(index int) (model.Item, bool) {
	if index < 0 || index >= len(m.items) {
		return model.Item{}, false
	}
	return m.items[index], true
}

// HasItem reports whether an item is named exactly name.
func (m *Manager) HasItem(name string) bool {
	for _, item := range m.items {
		if item.Name == name {
			return true
		}
	}
	return false
}

func (m *Manager) Stats() Stats {
	s := Stats{TotalItems: len(m.items)}
	for _, item := range m.items {
		s.TotalQuantity += item.Quantity
		if _, ok := m.cart[item.Name]; ok {
			s.InCart++
		}
	}
	s.Remaining = s.TotalItems - s.InCart
	return s
}

func (m *Manager) indexOf(name string) int {
	for i, item := range m.items {
		if item.SameName(name) {
			return i
		}
	}
	return -1
}

// persist writes the current list. An empty list goes through Clear because
// Store.Save ignores empty input.
func (m *Manager) persist() error {
	if m.store == nil {
		return nil
	}
	if len(m.items) == 0 {
		return m.store.Clear()
	}
	saved, err := m.store.Save(m.items)
	if err != nil {
		return err
	}
	if !saved {
		return errNotSaved
	}
	return nil
}

func addCapped(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

var errNotSaved = errors.New("session: snapshot not saved")
