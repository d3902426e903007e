package api

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
)

// OrderItem is one cart line as the order endpoint expects it. Price travels
// as a string so the server stores the catalog figure verbatim.
type OrderItem struct {
	ID       int             `json:"id"`
	Quantity decimal.Decimal `json:"cantidad"`
	Price    string          `json:"precio"`
	Name     string          `json:"nombre"`
	Unit     string          `json:"unidad"`
}

// CreateOrderRequest mirrors POST /pedidos.
type CreateOrderRequest struct {
	ClientID      int         `json:"cliente_id"`
	Items         []OrderItem `json:"items"`
	PaymentMethod string      `json:"metodo_pago"`
}

type CreateOrderResponse struct {
	OrderID int `json:"pedido_id"`
}

func (c *Client) CreateOrder(ctx context.Context, in CreateOrderRequest) (CreateOrderResponse, error) {
	var out CreateOrderResponse
	err := c.post(ctx, "/pedidos", in, &out)
	return out, err
}

// OrderLine is a stored order line as the admin and history endpoints
// return it.
type OrderLine struct {
	Name      string          `json:"nombre"`
	Quantity  decimal.Decimal `json:"cantidad"`
	Unit      string          `json:"unidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// AdminOrder is one row of GET /admin/pedidos.
type AdminOrder struct {
	ID            int             `json:"id"`
	Date          string          `json:"fecha"`
	Name          string          `json:"nombre"`
	Surname       string          `json:"apellido"`
	Email         string          `json:"email"`
	Phone         string          `json:"telefono"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"estado"`
	PaymentMethod string          `json:"metodo_pago"`
	Items         []OrderLine     `json:"items"`
	Edited        bool            `json:"editado"`
	EditedAt      string          `json:"fecha_edicion"`
}

// HistoryOrder is one row of GET /pedidos/historial. Same shape as
// AdminOrder except for the customer-name keys.
type HistoryOrder struct {
	ID            int             `json:"id"`
	Date          string          `json:"fecha"`
	Name          string          `json:"cliente_nombre"`
	Surname       string          `json:"cliente_apellido"`
	Email         string          `json:"email"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"estado"`
	PaymentMethod string          `json:"metodo_pago"`
	Items         []OrderLine     `json:"items"`
}

type UpdateOrderRequest struct {
	Status   string `json:"estado"`
	EditedBy int    `json:"editado_por"`
}

func (c *Client) AdminOrders(ctx context.Context) ([]AdminOrder, error) {
	var orders []AdminOrder
	if err := c.get(ctx, "/admin/pedidos", "", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id int, in UpdateOrderRequest) error {
	return c.put(ctx, "/admin/pedidos/"+itoa(id), in, nil)
}

func (c *Client) CancelOrder(ctx context.Context, id int) error {
	return c.delete(ctx, "/admin/pedidos/"+itoa(id))
}

func (c *Client) OrderHistory(ctx context.Context) ([]HistoryOrder, error) {
	var orders []HistoryOrder
	if err := c.get(ctx, "/pedidos/historial", "", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func itoa(id int) string { return strconv.Itoa(id) }
