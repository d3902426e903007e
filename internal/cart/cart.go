// Package cart implements the client-side shopping cart: an ordered list of
// product/quantity lines, mirrored to durable storage on every mutation.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/elmatadero/carniceria-client/internal/catalog"
	"github.com/elmatadero/carniceria-client/internal/storage"
)

var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// Entry is one cart line. The product fields are copied in at add time, so
// the stored snapshot is self-contained (same shape the web storefront kept
// in localStorage).
type Entry struct {
	ProductID int             `json:"id"`
	Name      string          `json:"nombre"`
	Cut       string          `json:"corte"`
	Price     decimal.Decimal `json:"precio"`
	Unit      string          `json:"unidad"`
	Quantity  decimal.Decimal `json:"cantidad"`
}

func (e Entry) Subtotal() decimal.Decimal {
	return e.Price.Mul(e.Quantity)
}

// Manager owns the cart state. All mutations persist the full snapshot under
// storage.KeyCart and fire the change hook so the UI can re-render.
type Manager struct {
	entries  []Entry
	store    storage.Store
	onChange func()
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// OnChange registers the UI refresh hook, called after every committed
// mutation.
func (m *Manager) OnChange(fn func()) { m.onChange = fn }

// Restore loads the persisted snapshot. A corrupt or missing snapshot
// leaves the cart empty; restoring is never fatal.
func (m *Manager) Restore() {
	var entries []Entry
	if ok, err := m.store.Get(storage.KeyCart, &entries); err == nil && ok {
		m.entries = entries
	}
}

// Add merges quantity into an existing line for the product, or appends a
// new line. Non-positive quantities are rejected without mutating anything.
func (m *Manager) Add(p catalog.Product, quantity decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return ErrInvalidQuantity
	}
	for i := range m.entries {
		if m.entries[i].ProductID == p.ID {
			m.entries[i].Quantity = m.entries[i].Quantity.Add(quantity)
			return m.commit()
		}
	}
	m.entries = append(m.entries, Entry{
		ProductID: p.ID,
		Name:      p.Name,
		Cut:       p.Cut,
		Price:     p.Price,
		Unit:      p.Unit,
		Quantity:  quantity,
	})
	return m.commit()
}

// SetQuantity overwrites a line's quantity. Rejected quantities leave the
// cart untouched so the UI can redisplay the prior value. Setting a product
// that is not in the cart is a no-op.
func (m *Manager) SetQuantity(productID int, quantity decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return ErrInvalidQuantity
	}
	for i := range m.entries {
		if m.entries[i].ProductID == productID {
			m.entries[i].Quantity = quantity
			return m.commit()
		}
	}
	return nil
}

// Remove drops the line for the product if present.
func (m *Manager) Remove(productID int) error {
	for i := range m.entries {
		if m.entries[i].ProductID == productID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return m.commit()
		}
	}
	return nil
}

func (m *Manager) Clear() error {
	m.entries = nil
	return m.commit()
}

// Total recomputes the running total from the current lines on every call;
// it is never cached.
func (m *Manager) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range m.entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

func (m *Manager) Len() int { return len(m.entries) }

// Find returns the line for the product.
func (m *Manager) Find(productID int) (Entry, bool) {
	for _, e := range m.entries {
		if e.ProductID == productID {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns the lines in insertion order. The slice is a copy.
func (m *Manager) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Manager) commit() error {
	// Persist an empty array rather than null so old snapshots round-trip.
	snapshot := m.entries
	if snapshot == nil {
		snapshot = []Entry{}
	}
	err := m.store.Set(storage.KeyCart, snapshot)
	if m.onChange != nil {
		m.onChange()
	}
	return err
}
