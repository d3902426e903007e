package cli

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmatadero/carniceria-client/internal/apitest"
	"github.com/elmatadero/carniceria-client/internal/config"
	"github.com/elmatadero/carniceria-client/internal/session"
)

type cliFixture struct {
	app     *App
	backend *apitest.Server
	out     *bytes.Buffer
	in      *bytes.Buffer
}

func newCLI(t *testing.T) *cliFixture {
	t.Helper()

	backend := apitest.New()
	t.Cleanup(backend.Close)
	backend.SeedProducts(
		apitest.Product{ID: 1, Name: "Vacío", Cut: "Costillar", Price: "10.00", Unit: "kg"},
		apitest.Product{ID: 2, Name: "Chorizo", Cut: "Parrillero", Price: "1.200", Unit: "docena"},
	)
	backend.SeedAccount(apitest.Account{
		Name: "Ana", Surname: "Gómez", Email: "ana@example.com",
		Role: session.RoleCustomer, Password: "secreto1",
	})

	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	cfg := config.Config{
		APIURL:         backend.URL,
		RequestTimeout: 5 * time.Second,
		StateDir:       t.TempDir(),
	}
	app, err := NewApp(cfg, log.New(io.Discard, "", 0), in, out)
	require.NoError(t, err)

	return &cliFixture{app: app, backend: backend, out: out, in: in}
}

func (f *cliFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	f.out.Reset()
	root := f.app.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.Execute()
	return f.out.String(), err
}

func TestCatalogCommand(t *testing.T) {
	f := newCLI(t)

	out, err := f.run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Vacío")
	assert.Contains(t, out, "$10.000 / kg")
}

func TestCartAddShowsUpdatedCart(t *testing.T) {
	f := newCLI(t)

	out, err := f.run(t, "cart", "add", "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Vacío (2.00 kg) agregado al carrito!")
	assert.Contains(t, out, "Total: $20.000")
	assert.Contains(t, out, "Artículos: 1")
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	f := newCLI(t)

	_, err := f.run(t, "cart", "add", "99", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no está disponible")
}

func TestCartSet_InvalidQuantityRevertsDisplayedValue(t *testing.T) {
	f := newCLI(t)

	_, err := f.run(t, "cart", "add", "1", "3")
	require.NoError(t, err)

	out, err := f.run(t, "cart", "set", "1", "--", "-5")
	require.NoError(t, err)
	assert.Contains(t, out, "Se mantiene 3.00")

	out, err = f.run(t, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "3.00 (kg)")
	assert.Contains(t, out, "Total: $30.000")
}

func TestCartClear_DeclinedConfirmationKeepsCart(t *testing.T) {
	f := newCLI(t)

	_, err := f.run(t, "cart", "add", "1", "1")
	require.NoError(t, err)

	f.in.WriteString("n\n")
	_, err = f.run(t, "cart", "clear")
	require.NoError(t, err)

	out, err := f.run(t, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Vacío")
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCLI(t)

	_, err := f.run(t, "checkout", "--method", "efectivo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "El carrito está vacío")
}

func TestCheckout_RequiresLogin(t *testing.T) {
	f := newCLI(t)

	_, err := f.run(t, "cart", "add", "1", "2")
	require.NoError(t, err)

	_, err = f.run(t, "checkout", "--method", "efectivo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Debes iniciar sesión")
}

func TestCheckout_FullFlowWithTicket(t *testing.T) {
	f := newCLI(t)

	out, err := f.run(t, "login", "--email", "ana@example.com", "--password", "secreto1")
	require.NoError(t, err)
	assert.Contains(t, out, "¡Bienvenido de nuevo, Ana!")

	_, err = f.run(t, "cart", "add", "1", "2")
	require.NoError(t, err)

	out, err = f.run(t, "checkout", "--method", "efectivo")
	require.NoError(t, err)
	assert.Contains(t, out, "¡Pedido #1 creado exitosamente!")
	assert.Contains(t, out, "EL MATADERO")
	assert.Contains(t, out, "TOTAL: $20.000")
	assert.Contains(t, out, "Método de pago: EFECTIVO")

	out, err = f.run(t, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Tu carrito está vacío")

	out, err = f.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Pedido ID: 1")
}

func TestCheckout_InteractiveMethodPrompt(t *testing.T) {
	f := newCLI(t)

	_, err := f.run(t, "login", "--email", "ana@example.com", "--password", "secreto1")
	require.NoError(t, err)
	_, err = f.run(t, "cart", "add", "2", "1")
	require.NoError(t, err)

	f.in.WriteString("2\n")
	out, err := f.run(t, "checkout")
	require.NoError(t, err)
	assert.Contains(t, out, "Selecciona método de pago")
	assert.Contains(t, out, "Método de pago: TARJETA")
}

func TestCheckout_CancelledPromptMakesNoOrder(t *testing.T) {
	f := newCLI(t)

	_, err := f.run(t, "login", "--email", "ana@example.com", "--password", "secreto1")
	require.NoError(t, err)
	_, err = f.run(t, "cart", "add", "2", "1")
	require.NoError(t, err)

	f.in.WriteString("0\n")
	_, err = f.run(t, "checkout")
	require.NoError(t, err)
	assert.Empty(t, f.backend.Orders())

	out, err := f.run(t, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Chorizo")
}

func TestLogin_BadCredentialsSurfacesServerMessage(t *testing.T) {
	f := newCLI(t)

	_, err := f.run(t, "login", "--email", "ana@example.com", "--password", "mala")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email o contraseña incorrectos")
}

func TestWhoamiAndLogout(t *testing.T) {
	f := newCLI(t)

	out, err := f.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "anónimo")

	_, err = f.run(t, "login", "--email", "ana@example.com", "--password", "secreto1")
	require.NoError(t, err)

	out, err = f.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Gómez <ana@example.com>")

	out, err = f.run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Sesión cerrada")

	out, err = f.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "anónimo")
}

func TestAdminCommands_RefusedForCustomers(t *testing.T) {
	f := newCLI(t)

	_, err := f.run(t, "login", "--email", "ana@example.com", "--password", "secreto1")
	require.NoError(t, err)

	_, err = f.run(t, "admin", "orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "administrators and employees")
}

func TestAdminFlow(t *testing.T) {
	f := newCLI(t)
	f.backend.SeedAccount(apitest.Account{
		Name: "Carla", Surname: "Ruiz", Email: "carla@example.com",
		Role: session.RoleAdmin, Password: "secreto1",
	})

	// Ana buys something first.
	_, err := f.run(t, "login", "--email", "ana@example.com", "--password", "secreto1")
	require.NoError(t, err)
	_, err = f.run(t, "cart", "add", "1", "1")
	require.NoError(t, err)
	_, err = f.run(t, "checkout", "--method", "tarjeta")
	require.NoError(t, err)

	// Carla signs in as admin and works the back office.
	_, err = f.run(t, "login", "--email", "carla@example.com", "--password", "secreto1", "--role", "admin")
	require.NoError(t, err)

	out, err := f.run(t, "admin", "orders", "--method", "tarjeta")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Gómez")

	out, err = f.run(t, "admin", "order", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Pedido #1")

	_, err = f.run(t, "admin", "set-status", "1", "completado")
	require.NoError(t, err)

	out, err = f.run(t, "admin", "report", "daily", "--date", f.backend.Today)
	require.NoError(t, err)
	assert.Contains(t, out, "Pedidos: 1")

	out, err = f.run(t, "admin", "close-register", "--date", f.backend.Today, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Cierre realizado exitosamente.")

	out, err = f.run(t, "admin", "closings")
	require.NoError(t, err)
	assert.Contains(t, out, "Carla")
}

func TestLogin_RoleMismatch(t *testing.T) {
	f := newCLI(t)

	_, err := f.run(t, "login", "--email", "ana@example.com", "--password", "secreto1", "--role", "admin")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "requested role"))
}
