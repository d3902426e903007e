package admin

import (
	"strconv"
	"strings"

	"github.com/elmatadero/carniceria-client/internal/api"
)

// OrderFilter narrows the back-office order list. Zero values mean "all".
// Criteria combine conjunctively, matching the screen's filter row.
type OrderFilter struct {
	Status        string
	PaymentMethod string
	// Query is a free-text search over customer name, surname, email and
	// the order id, case-insensitive.
	Query string
}

func (f OrderFilter) Match(o api.AdminOrder) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.PaymentMethod != "" && o.PaymentMethod != f.PaymentMethod {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(o.Name), q) &&
			!strings.Contains(strings.ToLower(o.Surname), q) &&
			!strings.Contains(strings.ToLower(o.Email), q) &&
			!strings.Contains(strconv.Itoa(o.ID), q) {
			return false
		}
	}
	return true
}

func (f OrderFilter) Apply(orders []api.AdminOrder) []api.AdminOrder {
	if f == (OrderFilter{}) {
		return orders
	}
	out := make([]api.AdminOrder, 0, len(orders))
	for _, o := range orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}
