// Package admin is the back-office console: order management, cash-register
// closings and sales reports for employees and administrators, plus product
// management for administrators. All aggregation is server-side; this
// package gates access by role and filters order lists client-side the way
// the back-office screen always did.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/elmatadero/carniceria-client/internal/api"
	"github.com/elmatadero/carniceria-client/internal/session"
)

// Order statuses the back-office may set.
const (
	StatusPending   = "pendiente"
	StatusCompleted = "completado"
	StatusCancelled = "cancelado"
)

var (
	ErrAuthRequired  = errors.New("sign in to access the back office")
	ErrOrderAccess   = errors.New("only administrators and employees can manage orders")
	ErrProductAccess = errors.New("only administrators can manage products")
	ErrInvalidStatus = errors.New("status must be pendiente, completado or cancelado")
	ErrOrderNotFound = errors.New("order not found")
	ErrDateRequired  = errors.New("a date is required")
	ErrInvalidPrice  = errors.New("price must be a positive number")
	ErrMissingName   = errors.New("product name is required")
)

func ParseStatus(s string) (string, error) {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return s, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidStatus, s)
}

type Console struct {
	api     *api.Client
	session *session.Manager
}

func NewConsole(apiClient *api.Client, sessMgr *session.Manager) *Console {
	return &Console{api: apiClient, session: sessMgr}
}

func (c *Console) requireOrderRole() (*session.Identity, error) {
	id := c.session.Current()
	if id == nil {
		return nil, ErrAuthRequired
	}
	if !id.CanManageOrders() {
		return nil, ErrOrderAccess
	}
	return id, nil
}

func (c *Console) requireProductRole() (*session.Identity, error) {
	id := c.session.Current()
	if id == nil {
		return nil, ErrAuthRequired
	}
	if !id.CanManageProducts() {
		return nil, ErrProductAccess
	}
	return id, nil
}

// Orders fetches the order list and applies the filter locally.
func (c *Console) Orders(ctx context.Context, filter OrderFilter) ([]api.AdminOrder, error) {
	if _, err := c.requireOrderRole(); err != nil {
		return nil, err
	}
	orders, err := c.api.AdminOrders(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(orders), nil
}

// Order returns one order by id from the current list.
func (c *Console) Order(ctx context.Context, id int) (*api.AdminOrder, error) {
	orders, err := c.Orders(ctx, OrderFilter{})
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, id)
}

// SetStatus updates an order's status, recording who edited it.
func (c *Console) SetStatus(ctx context.Context, orderID int, status string) error {
	id, err := c.requireOrderRole()
	if err != nil {
		return err
	}
	status, err = ParseStatus(status)
	if err != nil {
		return err
	}
	return c.api.UpdateOrder(ctx, orderID, api.UpdateOrderRequest{Status: status, EditedBy: id.ID})
}

func (c *Console) CancelOrder(ctx context.Context, orderID int) error {
	if _, err := c.requireOrderRole(); err != nil {
		return err
	}
	return c.api.CancelOrder(ctx, orderID)
}

// History returns the full server-side order history.
func (c *Console) History(ctx context.Context) ([]api.HistoryOrder, error) {
	if _, err := c.requireOrderRole(); err != nil {
		return nil, err
	}
	return c.api.OrderHistory(ctx)
}

func (c *Console) Closings(ctx context.Context) ([]api.Closing, error) {
	if _, err := c.requireOrderRole(); err != nil {
		return nil, err
	}
	return c.api.Closings(ctx)
}

// CloseRegister settles the register for a date, aggregating the day's
// totals by payment method server-side.
func (c *Console) CloseRegister(ctx context.Context, date, notes string) (api.CloseRegisterResponse, error) {
	id, err := c.requireOrderRole()
	if err != nil {
		return api.CloseRegisterResponse{}, err
	}
	if date == "" {
		return api.CloseRegisterResponse{}, ErrDateRequired
	}
	return c.api.CloseRegister(ctx, api.CloseRegisterRequest{Date: date, UserID: id.ID, Notes: notes})
}

func (c *Console) DailyReport(ctx context.Context, date string) (api.DailyReport, error) {
	if _, err := c.requireOrderRole(); err != nil {
		return api.DailyReport{}, err
	}
	if date == "" {
		return api.DailyReport{}, ErrDateRequired
	}
	return c.api.DailyReport(ctx, date)
}

func (c *Console) RangeReport(ctx context.Context, from, to string) (api.RangeReport, error) {
	if _, err := c.requireOrderRole(); err != nil {
		return api.RangeReport{}, err
	}
	if from == "" || to == "" {
		return api.RangeReport{}, ErrDateRequired
	}
	return c.api.RangeReport(ctx, from, to)
}

func validateProduct(in api.ProductInput) error {
	if in.Name == "" {
		return ErrMissingName
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil || price.Sign() <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (c *Console) CreateProduct(ctx context.Context, in api.ProductInput) error {
	if _, err := c.requireProductRole(); err != nil {
		return err
	}
	if err := validateProduct(in); err != nil {
		return err
	}
	_, err := c.api.CreateProduct(ctx, in)
	return err
}

func (c *Console) UpdateProduct(ctx context.Context, id int, in api.ProductInput) error {
	if _, err := c.requireProductRole(); err != nil {
		return err
	}
	if err := validateProduct(in); err != nil {
		return err
	}
	return c.api.UpdateProduct(ctx, id, in)
}

func (c *Console) DeleteProduct(ctx context.Context, id int) error {
	if _, err := c.requireProductRole(); err != nil {
		return err
	}
	return c.api.DeleteProduct(ctx, id)
}
