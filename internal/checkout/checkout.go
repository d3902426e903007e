// Package checkout converts the cart into a submitted order. The workflow is
// a small state machine; guards run before any network call and the cart is
// only cleared after the server acknowledged the order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elmatadero/carniceria-client/internal/api"
	"github.com/elmatadero/carniceria-client/internal/cart"
	"github.com/elmatadero/carniceria-client/internal/session"
	"github.com/elmatadero/carniceria-client/internal/storage"
)

type State string

const (
	StateIdle                  State = "idle"
	StateAwaitingPaymentMethod State = "awaiting_payment_method"
	StateSubmitting            State = "submitting"
	StateCompleted             State = "completed"
	StateCancelled             State = "cancelled"
	StateFailed                State = "failed"
)

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "efectivo"
	MethodCard     PaymentMethod = "tarjeta"
	MethodTransfer PaymentMethod = "transferencia"
)

func ParseMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodCash, MethodCard, MethodTransfer:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
}

var (
	ErrEmptyCart            = errors.New("the cart is empty")
	ErrAuthRequired         = errors.New("authentication required to check out")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrCheckoutInProgress guards against double submission: a second
	// checkout cannot start while one is awaiting a method or in flight.
	ErrCheckoutInProgress = errors.New("a checkout is already in progress")
	ErrNotAwaitingMethod  = errors.New("checkout has not been started")
)

// Receipt is the printable result of a completed checkout.
type Receipt struct {
	OrderID       int
	Date          time.Time
	Customer      session.Identity
	Items         []cart.Entry
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
}

// LocalOrder is the order-history mirror kept under storage.KeyHistory.
type LocalOrder struct {
	ID    int             `json:"id"`
	Date  string          `json:"fecha"`
	Items []cart.Entry    `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type Workflow struct {
	api     *api.Client
	cart    *cart.Manager
	session *session.Manager
	store   storage.Store
	now     func() time.Time

	mu    sync.Mutex
	state State
}

func NewWorkflow(apiClient *api.Client, cartMgr *cart.Manager, sessMgr *session.Manager, store storage.Store) *Workflow {
	return &Workflow{
		api:     apiClient,
		cart:    cartMgr,
		session: sessMgr,
		store:   store,
		now:     time.Now,
		state:   StateIdle,
	}
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Begin runs the entry guards and moves the workflow to
// AwaitingPaymentMethod. Nothing has touched the network yet.
func (w *Workflow) Begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateAwaitingPaymentMethod || w.state == StateSubmitting {
		return ErrCheckoutInProgress
	}
	if w.cart.Len() == 0 {
		w.state = StateIdle
		return ErrEmptyCart
	}
	if !w.session.LoggedIn() {
		w.state = StateIdle
		return ErrAuthRequired
	}
	w.state = StateAwaitingPaymentMethod
	return nil
}

// Cancel aborts a started checkout before submission. No server call is
// made and the cart is untouched.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateAwaitingPaymentMethod {
		return ErrNotAwaitingMethod
	}
	w.state = StateCancelled
	return nil
}

// Submit sends the order with the chosen payment method. On failure the
// cart is left exactly as it was so the user may retry; on success the cart
// is cleared, the emptied snapshot persisted, the local history mirror
// appended, and the receipt returned.
func (w *Workflow) Submit(ctx context.Context, method PaymentMethod) (*Receipt, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.state != StateAwaitingPaymentMethod {
		state := w.state
		w.mu.Unlock()
		if state == StateSubmitting {
			return nil, ErrCheckoutInProgress
		}
		return nil, ErrNotAwaitingMethod
	}
	identity := w.session.Current()
	entries := w.cart.Entries()
	total := w.cart.Total()
	w.state = StateSubmitting
	w.mu.Unlock()

	req := api.CreateOrderRequest{
		ClientID:      identity.ID,
		Items:         make([]api.OrderItem, 0, len(entries)),
		PaymentMethod: string(method),
	}
	for _, e := range entries {
		req.Items = append(req.Items, api.OrderItem{
			ID:       e.ProductID,
			Quantity: e.Quantity,
			Price:    e.Price.String(),
			Name:     e.Name,
			Unit:     e.Unit,
		})
	}

	resp, err := w.api.CreateOrder(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.state = StateFailed
		return nil, err
	}

	if clearErr := w.cart.Clear(); clearErr != nil {
		// The order exists server-side; report the storage problem but
		// still hand back the receipt below.
		err = fmt.Errorf("order %d created but clearing the cart failed: %w", resp.OrderID, clearErr)
	}

	receipt := &Receipt{
		OrderID:       resp.OrderID,
		Date:          w.now(),
		Customer:      *identity,
		Items:         entries,
		Total:         total,
		PaymentMethod: method,
	}
	w.appendLocalHistory(receipt)

	w.state = StateCompleted
	return receipt, err
}

func (w *Workflow) appendLocalHistory(r *Receipt) {
	var history []LocalOrder
	_, _ = w.store.Get(storage.KeyHistory, &history)
	history = append(history, LocalOrder{
		ID:    r.OrderID,
		Date:  r.Date.Format("2006-01-02 15:04:05"),
		Items: r.Items,
		Total: r.Total,
	})
	_ = w.store.Set(storage.KeyHistory, history)
}

// LocalHistory returns the locally mirrored orders, newest first.
func (w *Workflow) LocalHistory() ([]LocalOrder, error) {
	var history []LocalOrder
	if _, err := w.store.Get(storage.KeyHistory, &history); err != nil {
		return nil, err
	}
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}
