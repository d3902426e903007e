package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elmatadero/carniceria-client/internal/admin"
	"github.com/elmatadero/carniceria-client/internal/api"
	"github.com/elmatadero/carniceria-client/internal/render"
)

func (a *App) adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Panel de administración (empleados y administradores)",
	}
	cmd.AddCommand(
		a.adminOrdersCommand(),
		a.adminOrderCommand(),
		a.adminSetStatusCommand(),
		a.adminCancelCommand(),
		a.adminHistoryCommand(),
		a.adminProductsCommand(),
		a.adminClosingsCommand(),
		a.adminCloseRegisterCommand(),
		a.adminReportCommand(),
	)
	return cmd
}

func (a *App) adminOrdersCommand() *cobra.Command {
	var filter admin.OrderFilter
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Lista los pedidos con filtros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := a.Admin.Orders(cmd.Context(), filter)
			if err != nil {
				return a.userError(err)
			}
			fmt.Fprint(a.Out, render.OrdersTable(orders))
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Status, "status", "", "pendiente, completado o cancelado")
	cmd.Flags().StringVar(&filter.PaymentMethod, "method", "", "efectivo, tarjeta o transferencia")
	cmd.Flags().StringVar(&filter.Query, "search", "", "busca por nombre, apellido, email o id")
	return cmd
}

func (a *App) adminOrderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "order <id>",
		Short: "Muestra el detalle de un pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			order, err := a.Admin.Order(cmd.Context(), id)
			if err != nil {
				return a.userError(err)
			}
			fmt.Fprint(a.Out, render.OrderDetail(order))
			return nil
		},
	}
}

func (a *App) adminSetStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <estado>",
		Short: "Cambia el estado de un pedido",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			if err := a.Admin.SetStatus(cmd.Context(), id, args[1]); err != nil {
				return a.userError(err)
			}
			fmt.Fprintln(a.Out, "Pedido actualizado exitosamente.")
			return nil
		},
	}
}

func (a *App) adminCancelCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancela un pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			if !yes && !a.confirm("¿Está seguro de cancelar este pedido?") {
				return nil
			}
			if err := a.Admin.CancelOrder(cmd.Context(), id); err != nil {
				return a.userError(err)
			}
			fmt.Fprintln(a.Out, "Pedido cancelado exitosamente.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")
	return cmd
}

func (a *App) adminHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Muestra el historial completo de pedidos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := a.Admin.History(cmd.Context())
			if err != nil {
				return a.userError(err)
			}
			fmt.Fprint(a.Out, render.HistoryTable(orders))
			return nil
		},
	}
}

func (a *App) adminProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Gestión de productos (solo administradores)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista el catálogo",
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

	var input api.ProductInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Alta de producto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Admin.CreateProduct(cmd.Context(), input); err != nil {
				return a.userError(err)
			}
			fmt.Fprintln(a.Out, "Producto creado.")
			return nil
		},
	}
	create.Flags().StringVar(&input.Name, "name", "", "nombre del corte")
	create.Flags().StringVar(&input.Cut, "cut", "", "descripción del corte")
	create.Flags().StringVar(&input.Price, "price", "", "precio unitario")
	create.Flags().StringVar(&input.Unit, "unit", "kg", "unidad: kg, unidad o docena")

	var updateInput api.ProductInput
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Modifica un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			if err := a.Admin.UpdateProduct(cmd.Context(), id, updateInput); err != nil {
				return a.userError(err)
			}
			fmt.Fprintln(a.Out, "Producto actualizado.")
			return nil
		},
	}
	update.Flags().StringVar(&updateInput.Name, "name", "", "nombre del corte")
	update.Flags().StringVar(&updateInput.Cut, "cut", "", "descripción del corte")
	update.Flags().StringVar(&updateInput.Price, "price", "", "precio unitario")
	update.Flags().StringVar(&updateInput.Unit, "unit", "kg", "unidad: kg, unidad o docena")

	var deleteYes bool
	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			if !deleteYes && !a.confirm("¿Eliminar el producto?") {
				return nil
			}
			if err := a.Admin.DeleteProduct(cmd.Context(), id); err != nil {
				return a.userError(err)
			}
			fmt.Fprintln(a.Out, "Producto eliminado.")
			return nil
		},
	}
	remove.Flags().BoolVarP(&deleteYes, "yes", "y", false, "no pedir confirmación")

	cmd.AddCommand(list, create, update, remove)
	return cmd
}

func (a *App) adminClosingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "closings",
		Short: "Muestra el historial de cierres de caja",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			closings, err := a.Admin.Closings(cmd.Context())
			if err != nil {
				return a.userError(err)
			}
			fmt.Fprint(a.Out, render.ClosingsTable(closings))
			return nil
		},
	}
}

func (a *App) adminCloseRegisterCommand() *cobra.Command {
	var date, notes string
	var yes bool
	cmd := &cobra.Command{
		Use:   "close-register",
		Short: "Realiza el cierre de caja de una fecha",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !a.confirm(fmt.Sprintf("¿Confirma realizar el cierre de caja para el %s?", date)) {
				return nil
			}
			resp, err := a.Admin.CloseRegister(cmd.Context(), date, notes)
			if err != nil {
				return a.userError(err)
			}
			fmt.Fprintf(a.Out, "Cierre realizado exitosamente.\nTotal: %s\nPedidos: %d\n",
				render.Money(resp.Totals.GrandTotal), resp.Totals.OrderCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "fecha del cierre (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "observaciones")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func (a *App) adminReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reportes de ventas",
	}

	var date string
	daily := &cobra.Command{
		Use:   "daily",
		Short: "Reporte diario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.Admin.DailyReport(cmd.Context(), date)
			if err != nil {
				return a.userError(err)
			}
			title := fmt.Sprintf("Reporte del %s", report.Date)
			fmt.Fprint(a.Out, render.ReportSummary(title, report.Totals, report.ByMethod, report.TopProducts))
			return nil
		},
	}
	daily.Flags().StringVar(&date, "date", "", "fecha (YYYY-MM-DD)")
	_ = daily.MarkFlagRequired("date")

	var from, to string
	rng := &cobra.Command{
		Use:   "range",
		Short: "Reporte por rango de fechas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.Admin.RangeReport(cmd.Context(), from, to)
			if err != nil {
				return a.userError(err)
			}
			title := fmt.Sprintf("Reporte desde %s hasta %s", report.From, report.To)
			fmt.Fprint(a.Out, render.ReportSummary(title, report.Totals, report.ByMethod, report.TopProducts))
			return nil
		},
	}
	rng.Flags().StringVar(&from, "from", "", "fecha inicial (YYYY-MM-DD)")
	rng.Flags().StringVar(&to, "to", "", "fecha final (YYYY-MM-DD)")
	_ = rng.MarkFlagRequired("from")
	_ = rng.MarkFlagRequired("to")

	cmd.AddCommand(daily, rng)
	return cmd
}
