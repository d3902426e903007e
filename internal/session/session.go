// Package session tracks the logged-in identity and gates the back-office
// views by role. The identity persists across runs under storage.KeyUser;
// its absence means anonymous browsing.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/elmatadero/carniceria-client/internal/api"
	"github.com/elmatadero/carniceria-client/internal/storage"
)

const (
	RoleCustomer = "cliente"
	RoleEmployee = "empleado"
	RoleAdmin    = "admin"
)

const minPasswordLen = 6

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingFields      = errors.New("name, surname and email are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLen)
	// ErrRoleMismatch: the account exists but does not hold the role the
	// caller asked to sign in as. The login is refused and nothing stored.
	ErrRoleMismatch = errors.New("account does not have the requested role")
)

// Identity is the authenticated user's profile as kept client-side.
type Identity struct {
	ID      int    `json:"id"`
	Name    string `json:"nombre"`
	Surname string `json:"apellido"`
	Email   string `json:"email"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
	Role    string `json:"rol"`
}

func (id *Identity) FullName() string {
	if id.Surname == "" {
		return id.Name
	}
	return id.Name + " " + id.Surname
}

// CanManageOrders gates the order/report back-office views.
func (id *Identity) CanManageOrders() bool {
	return id.Role == RoleAdmin || id.Role == RoleEmployee
}

// CanManageProducts gates product management, admin only.
func (id *Identity) CanManageProducts() bool {
	return id.Role == RoleAdmin
}

// RegisterForm carries the sign-up fields plus the confirmation the client
// validates before anything reaches the server.
type RegisterForm struct {
	Name            string
	Surname         string
	Email           string
	Phone           string
	Address         string
	Password        string
	PasswordConfirm string
}

type Manager struct {
	api     *api.Client
	store   storage.Store
	current *Identity
}

func NewManager(apiClient *api.Client, store storage.Store) *Manager {
	return &Manager{api: apiClient, store: store}
}

// Restore loads a previously persisted identity, if any.
func (m *Manager) Restore() {
	var id Identity
	if ok, err := m.store.Get(storage.KeyUser, &id); err == nil && ok {
		m.current = &id
	}
}

// Current returns the active identity, or nil when anonymous.
func (m *Manager) Current() *Identity { return m.current }

func (m *Manager) LoggedIn() bool { return m.current != nil }

// Login authenticates against the server. When expectedRole is non-empty
// the returned role must match it exactly, otherwise the login fails with
// ErrRoleMismatch and the anonymous state is kept.
func (m *Manager) Login(ctx context.Context, email, password, expectedRole string) (*Identity, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	resp, err := m.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if expectedRole != "" && resp.Client.Role != expectedRole {
		return nil, fmt.Errorf("%w: have %q, requested %q", ErrRoleMismatch, resp.Client.Role, expectedRole)
	}

	id := &Identity{
		ID:      resp.Client.ID,
		Name:    resp.Client.Name,
		Surname: resp.Client.Surname,
		Email:   resp.Client.Email,
		Phone:   resp.Client.Phone,
		Address: resp.Client.Address,
		Role:    resp.Client.Role,
	}
	return id, m.setCurrent(id)
}

// Register validates the form client-side, submits it, and logs the new
// customer in. The server keeps the authoritative uniqueness checks.
func (m *Manager) Register(ctx context.Context, form RegisterForm) (*Identity, error) {
	if form.Password != form.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	if len(form.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if form.Name == "" || form.Surname == "" || form.Email == "" {
		return nil, ErrMissingFields
	}

	resp, err := m.api.Register(ctx, api.RegisterRequest{
		Name:     form.Name,
		Surname:  form.Surname,
		Email:    form.Email,
		Phone:    form.Phone,
		Address:  form.Address,
		Password: form.Password,
	})
	if err != nil {
		return nil, err
	}

	id := &Identity{
		ID:      resp.ClientID,
		Name:    form.Name,
		Surname: form.Surname,
		Email:   form.Email,
		Phone:   form.Phone,
		Address: form.Address,
		Role:    RoleCustomer,
	}
	return id, m.setCurrent(id)
}

// Logout drops the identity from memory and durable storage.
func (m *Manager) Logout() error {
	m.current = nil
	return m.store.Remove(storage.KeyUser)
}

func (m *Manager) setCurrent(id *Identity) error {
	m.current = id
	return m.store.Set(storage.KeyUser, id)
}
