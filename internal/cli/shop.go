package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/elmatadero/carniceria-client/internal/checkout"
	"github.com/elmatadero/carniceria-client/internal/render"
)

func (a *App) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Lista los cortes disponibles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalogFor(cmd.Context())
			if err != nil {
				return a.userError(err)
			}
			fmt.Fprint(a.Out, render.CatalogTable(cat.Products()))
			return nil
		},
	}
}

func parseProductID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("id de producto inválido: %q", arg)
	}
	return id, nil
}

func parseQuantity(arg string) (decimal.Decimal, error) {
	q, err := decimal.NewFromString(arg)
	if err != nil {
		return decimal.Zero, errors.New("La cantidad debe ser un número positivo.")
	}
	return q, nil
}

func (a *App) cartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Maneja el carrito de compras",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Muestra el carrito",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(a.Out, render.BuildCartView(a.Cart.Entries(), a.Cart.Total()).String())
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <producto-id> <cantidad>",
		Short: "Agrega un corte al carrito",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			cat, err := a.catalogFor(cmd.Context())
			if err != nil {
				return a.userError(err)
			}
			product, ok := cat.Find(id)
			if !ok {
				return errors.New("El producto no está disponible o el catálogo no se ha cargado.")
			}
			if err := a.Cart.Add(product, qty); err != nil {
				return errors.New("La cantidad debe ser mayor a cero.")
			}
			fmt.Fprintf(a.Out, "%s (%s %s) agregado al carrito!\n", product.Name, render.Qty(qty), product.Unit)
			a.flushCart()
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <producto-id> <cantidad>",
		Short: "Cambia la cantidad de una línea del carrito",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			qty, qtyErr := parseQuantity(args[1])
			if qtyErr == nil {
				qtyErr = a.Cart.SetQuantity(id, qty)
			}
			if qtyErr != nil {
				// Rejected: redisplay the prior value, state unchanged.
				if entry, ok := a.Cart.Find(id); ok {
					fmt.Fprintf(a.Out, "La cantidad debe ser un número positivo. Se mantiene %s.\n", render.Qty(entry.Quantity))
					return nil
				}
				return errors.New("La cantidad debe ser un número positivo.")
			}
			a.flushCart()
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <producto-id>",
		Short: "Quita un corte del carrito",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			if err := a.Cart.Remove(id); err != nil {
				return err
			}
			a.flushCart()
			return nil
		},
	}

	var clearYes bool
	clear := &cobra.Command{
		Use:   "clear",
		Short: "Vacía todo el carrito",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !clearYes && !a.confirm("¿Estás seguro de que quieres vaciar todo el carrito?") {
				return nil
			}
			if err := a.Cart.Clear(); err != nil {
				return err
			}
			a.flushCart()
			return nil
		},
	}
	clear.Flags().BoolVarP(&clearYes, "yes", "y", false, "no pedir confirmación")

	cmd.AddCommand(show, add, set, remove, clear)
	return cmd
}

func (a *App) checkoutCommand() *cobra.Command {
	var method string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Finaliza la compra del carrito actual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Checkout.Begin(); err != nil {
				switch {
				case errors.Is(err, checkout.ErrEmptyCart):
					return errors.New("El carrito está vacío. ¡Agrega algo antes de finalizar!")
				case errors.Is(err, checkout.ErrAuthRequired):
					return errors.New("Debes iniciar sesión para finalizar tu compra.")
				}
				return err
			}

			chosen, err := a.choosePaymentMethod(method)
			if err != nil {
				_ = a.Checkout.Cancel()
				return err
			}
			if chosen == "" {
				// User cancelled: abort with no server call.
				return a.Checkout.Cancel()
			}

			receipt, err := a.Checkout.Submit(cmd.Context(), chosen)
			if err != nil {
				return a.userError(err)
			}
			fmt.Fprintf(a.Out, "¡Pedido #%d creado exitosamente!\n\n", receipt.OrderID)
			fmt.Fprint(a.Out, render.BuildReceipt(receipt).String())
			a.cartDirty = false
			return nil
		},
	}
	cmd.Flags().StringVarP(&method, "method", "m", "", "método de pago: efectivo, tarjeta o transferencia")
	return cmd
}

// choosePaymentMethod resolves the payment method from the flag or an
// interactive menu. An empty result means the user cancelled.
func (a *App) choosePaymentMethod(flag string) (checkout.PaymentMethod, error) {
	if flag != "" {
		return checkout.ParseMethod(flag)
	}

	fmt.Fprintln(a.Out, "Selecciona método de pago:")
	fmt.Fprintln(a.Out, "  1) Efectivo")
	fmt.Fprintln(a.Out, "  2) Tarjeta")
	fmt.Fprintln(a.Out, "  3) Transferencia")
	fmt.Fprintln(a.Out, "  0) Cancelar")
	answer, err := a.prompt("Opción: ")
	if err != nil {
		return "", err
	}
	switch answer {
	case "1":
		return checkout.MethodCash, nil
	case "2":
		return checkout.MethodCard, nil
	case "3":
		return checkout.MethodTransfer, nil
	}
	return "", nil
}

func (a *App) historyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Muestra tu historial local de pedidos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := a.Checkout.LocalHistory()
			if err != nil {
				return err
			}
			fmt.Fprint(a.Out, render.LocalHistoryList(orders))
			return nil
		},
	}
}
