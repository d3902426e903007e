// Package render builds the view-models and printable text for the
// storefront. Everything here is a pure function of its inputs; no I/O, no
// shared state, so every view can be snapshot-tested.
package render

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/elmatadero/carniceria-client/internal/api"
	"github.com/elmatadero/carniceria-client/internal/cart"
	"github.com/elmatadero/carniceria-client/internal/catalog"
)

// Money renders an amount the way the shop prints it: three decimals.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(3)
}

// Qty renders a weight or count with two decimals.
func Qty(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func table(write func(w *tabwriter.Writer)) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	write(w)
	_ = w.Flush()
	return sb.String()
}

// CatalogTable lists the products as cards-in-rows.
func CatalogTable(products []catalog.Product) string {
	if len(products) == 0 {
		return "Catálogo vacío o error de carga.\n"
	}
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tPRODUCTO\tCORTE\tPRECIO")
		for _, p := range products {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Cut, p.PriceTag())
		}
	})
}

// CartLine is one rendered cart row.
type CartLine struct {
	Name     string
	Quantity string
	Unit     string
	Subtotal string
}

// CartView is the cart as the UI shows it: rows with line subtotals, the
// running total and the item count.
type CartView struct {
	Lines []CartLine
	Total string
	Count int
}

func BuildCartView(entries []cart.Entry, total decimal.Decimal) CartView {
	v := CartView{
		Lines: make([]CartLine, 0, len(entries)),
		Total: Money(total),
		Count: len(entries),
	}
	for _, e := range entries {
		v.Lines = append(v.Lines, CartLine{
			Name:     e.Name,
			Quantity: Qty(e.Quantity),
			Unit:     e.Unit,
			Subtotal: Money(e.Subtotal()),
		})
	}
	return v
}

func (v CartView) String() string {
	if v.Count == 0 {
		return "Tu carrito está vacío. ¡Agrega tus cortes favoritos!\n"
	}
	body := table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "PRODUCTO\tCANTIDAD\tSUBTOTAL")
		for _, l := range v.Lines {
			fmt.Fprintf(w, "%s\t%s (%s)\t%s\n", l.Name, l.Quantity, l.Unit, l.Subtotal)
		}
	})
	return fmt.Sprintf("%s\nArtículos: %d\nTotal: %s\n", body, v.Count, v.Total)
}

// OrdersTable renders the back-office order list.
func OrdersTable(orders []api.AdminOrder) string {
	if len(orders) == 0 {
		return "No hay pedidos.\n"
	}
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tFECHA\tCLIENTE\tTOTAL\tESTADO\tPAGO")
		for _, o := range orders {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				o.ID, o.Date, strings.TrimSpace(o.Name+" "+o.Surname), Money(o.Total), o.Status, o.PaymentMethod)
		}
	})
}

// OrderDetail renders one order with its lines.
func OrderDetail(o *api.AdminOrder) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Pedido #%d\n", o.ID)
	fmt.Fprintf(&sb, "Cliente: %s\n", strings.TrimSpace(o.Name+" "+o.Surname))
	fmt.Fprintf(&sb, "Email: %s\n", o.Email)
	if o.Phone != "" {
		fmt.Fprintf(&sb, "Teléfono: %s\n", o.Phone)
	}
	fmt.Fprintf(&sb, "Fecha: %s\nEstado: %s\nMétodo de pago: %s\n", o.Date, o.Status, o.PaymentMethod)
	if o.Edited {
		fmt.Fprintf(&sb, "Editado el %s\n", o.EditedAt)
	}
	sb.WriteString(table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "PRODUCTO\tCANTIDAD\tPRECIO\tSUBTOTAL")
		for _, l := range o.Items {
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", l.Name, Qty(l.Quantity), l.Unit, Money(l.UnitPrice), Money(l.Subtotal))
		}
	}))
	fmt.Fprintf(&sb, "Total: %s\n", Money(o.Total))
	return sb.String()
}

// HistoryTable renders the full server-side history.
func HistoryTable(orders []api.HistoryOrder) string {
	if len(orders) == 0 {
		return "No hay registros.\n"
	}
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tFECHA\tCLIENTE\tTOTAL\tESTADO\tPAGO")
		for _, o := range orders {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				o.ID, o.Date, strings.TrimSpace(o.Name+" "+o.Surname), Money(o.Total), o.Status, o.PaymentMethod)
		}
	})
}

// ClosingsTable renders the cash-closing history.
func ClosingsTable(closings []api.Closing) string {
	if len(closings) == 0 {
		return "No hay cierres registrados.\n"
	}
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "FECHA\tUSUARIO\tEFECTIVO\tTARJETA\tTRANSFERENCIA\tTOTAL\tPEDIDOS")
		for _, c := range closings {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
				c.Date, c.UserName, Money(c.CashTotal), Money(c.CardTotal),
				Money(c.TransferTotal), Money(c.GrandTotal), c.OrderCount)
		}
	})
}

// ReportSummary renders a daily or range sales report.
func ReportSummary(title string, totals api.ReportTotals, byMethod []api.MethodBreakdown, top []api.TopProduct) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", title)
	fmt.Fprintf(&sb, "Pedidos: %d  Ventas: %s  Ticket promedio: %s\n\n",
		totals.OrderCount, Money(totals.SalesTotal), Money(totals.AverageTicket))

	sb.WriteString("Por método de pago:\n")
	sb.WriteString(table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "MÉTODO\tCANTIDAD\tTOTAL")
		for _, m := range byMethod {
			fmt.Fprintf(w, "%s\t%d\t%s\n", m.PaymentMethod, m.Count, Money(m.Total))
		}
	}))

	sb.WriteString("\nProductos más vendidos:\n")
	sb.WriteString(table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "PRODUCTO\tCANTIDAD\tTOTAL")
		for _, p := range top {
			fmt.Fprintf(w, "%s - %s\t%s\t%s\n", p.Name, p.Cut, p.SoldCount.String(), Money(p.SoldTotal))
		}
	}))
	return sb.String()
}
