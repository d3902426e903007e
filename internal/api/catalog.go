package api

import (
	"context"

	"github.com/elmatadero/carniceria-client/internal/catalog"
)

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.get(ctx, "/productos", "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductInput is the admin-side product payload for create and update.
type ProductInput struct {
	Name  string `json:"nombre"`
	Cut   string `json:"corte"`
	Price string `json:"precio"`
	Unit  string `json:"unidad"`
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (catalog.Product, error) {
	var p catalog.Product
	err := c.post(ctx, "/admin/productos", in, &p)
	return p, err
}

func (c *Client) UpdateProduct(ctx context.Context, id int, in ProductInput) error {
	return c.put(ctx, "/admin/productos/"+itoa(id), in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.delete(ctx, "/admin/productos/"+itoa(id))
}
