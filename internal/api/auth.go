package api

import "context"

// RegisterRequest mirrors POST /clientes/registro.
type RegisterRequest struct {
	Name     string `json:"nombre"`
	Surname  string `json:"apellido"`
	Email    string `json:"email"`
	Phone    string `json:"telefono"`
	Address  string `json:"direccion"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ClientID int `json:"cliente_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Account is the server-side customer profile returned on login.
type Account struct {
	ID      int    `json:"id"`
	Name    string `json:"nombre"`
	Surname string `json:"apellido"`
	Email   string `json:"email"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
	Role    string `json:"rol"`
}

type LoginResponse struct {
	Client Account `json:"cliente"`
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) (RegisterResponse, error) {
	var out RegisterResponse
	err := c.post(ctx, "/clientes/registro", in, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, in LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	err := c.post(ctx, "/clientes/login", in, &out)
	return out, err
}
