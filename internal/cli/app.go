// Package cli wires the storefront together: one App owns the shared state
// (catalog cache, cart, session, checkout workflow, back-office console) and
// exposes the command tree. The binding between commands and handlers is
// built once at initialization.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/elmatadero/carniceria-client/internal/admin"
	"github.com/elmatadero/carniceria-client/internal/api"
	"github.com/elmatadero/carniceria-client/internal/cart"
	"github.com/elmatadero/carniceria-client/internal/catalog"
	"github.com/elmatadero/carniceria-client/internal/checkout"
	"github.com/elmatadero/carniceria-client/internal/config"
	"github.com/elmatadero/carniceria-client/internal/render"
	"github.com/elmatadero/carniceria-client/internal/session"
	"github.com/elmatadero/carniceria-client/internal/storage"
)

type App struct {
	Logger   *log.Logger
	Config   config.Config
	API      *api.Client
	Store    storage.Store
	Cart     *cart.Manager
	Session  *session.Manager
	Checkout *checkout.Workflow
	Admin    *admin.Console

	In  io.Reader
	Out io.Writer

	catalogCache *catalog.Catalog
	cartDirty    bool
}

func NewApp(cfg config.Config, logger *log.Logger, in io.Reader, out io.Writer) (*App, error) {
	client, err := api.NewClient(cfg.APIURL, &http.Client{Timeout: cfg.RequestTimeout})
	if err != nil {
		return nil, err
	}

	store, err := storage.NewFileStore(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	cartMgr := cart.NewManager(store)
	cartMgr.Restore()
	sess := session.NewManager(client, store)
	sess.Restore()

	a := &App{
		Logger:   logger,
		Config:   cfg,
		API:      client,
		Store:    store,
		Cart:     cartMgr,
		Session:  sess,
		Checkout: checkout.NewWorkflow(client, cartMgr, sess, store),
		Admin:    admin.NewConsole(client, sess),
		In:       in,
		Out:      out,
	}
	a.Cart.OnChange(func() { a.cartDirty = true })
	return a, nil
}

// catalogFor fetches the catalog once per run.
func (a *App) catalogFor(ctx context.Context) (*catalog.Catalog, error) {
	if a.catalogCache != nil {
		return a.catalogCache, nil
	}
	products, err := a.API.Products(ctx)
	if err != nil {
		return nil, err
	}
	a.catalogCache = catalog.New(products)
	return a.catalogCache, nil
}

// flushCart prints the cart view after a mutating cart command.
func (a *App) flushCart() {
	if !a.cartDirty {
		return
	}
	a.cartDirty = false
	fmt.Fprint(a.Out, render.BuildCartView(a.Cart.Entries(), a.Cart.Total()).String())
}

// userError rewrites errors for the person at the terminal: server-provided
// messages pass through verbatim, transport failures collapse into the
// generic connectivity message.
func (a *App) userError(err error) error {
	var connErr *api.ConnectivityError
	if errors.As(err, &connErr) {
		a.Logger.Printf("connectivity: %v", connErr)
		return errors.New("Error de conexión al servidor. Intenta de nuevo.")
	}
	return err
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.Out, label)
	reader := bufio.NewReader(a.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question; anything but "s"/"si"/"y"/"yes" declines.
func (a *App) confirm(label string) bool {
	answer, err := a.prompt(label + " [s/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}
