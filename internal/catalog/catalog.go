// Package catalog holds the product catalog fetched from the server. The
// server is the source of truth; a loaded catalog is treated as immutable.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is one cut as the API serves it. Price comes over the wire as a
// JSON string (the server renders its DECIMAL column verbatim); decimal
// accepts both string and number forms.
type Product struct {
	ID    int             `json:"id"`
	Name  string          `json:"nombre"`
	Cut   string          `json:"corte"`
	Price decimal.Decimal `json:"precio"`
	Unit  string          `json:"unidad"`
}

// PriceTag renders the card price line, e.g. "$8.500 / kg".
func (p Product) PriceTag() string {
	return fmt.Sprintf("$%s / %s", p.Price.StringFixed(3), p.Unit)
}

// Catalog is an ordered product list with id lookup.
type Catalog struct {
	products []Product
	byID     map[int]Product
}

func New(products []Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[int]Product, len(products)),
	}
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

func (c *Catalog) Products() []Product { return c.products }

func (c *Catalog) Len() int { return len(c.products) }

// Find returns the product with the given id.
func (c *Catalog) Find(id int) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}
