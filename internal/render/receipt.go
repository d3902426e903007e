package render

import (
	"fmt"
	"strings"

	"github.com/elmatadero/carniceria-client/internal/checkout"
)

// Shop header lines printed on every ticket.
const (
	shopName    = "EL MATADERO"
	shopTag     = "Carnicería Artesanal"
	shopStreet  = "Av. Aconquija 1234, Concepción"
	shopPhone   = "Tel: (0381) 555-1234"
	ticketWidth = 42
)

// ReceiptLine is one item row of the printable ticket.
type ReceiptLine struct {
	Name     string
	Quantity string
	Subtotal string
}

// ReceiptView is the printable ticket view-model.
type ReceiptView struct {
	OrderID       int
	Date          string
	Customer      string
	Email         string
	Phone         string
	Lines         []ReceiptLine
	Total         string
	PaymentMethod string
}

// BuildReceipt turns a completed checkout into its ticket view-model. The
// payment method is uppercased for print, as on the web ticket.
func BuildReceipt(r *checkout.Receipt) ReceiptView {
	v := ReceiptView{
		OrderID:       r.OrderID,
		Date:          r.Date.Format("02/01/2006 15:04:05"),
		Customer:      r.Customer.FullName(),
		Email:         r.Customer.Email,
		Phone:         r.Customer.Phone,
		Total:         Money(r.Total),
		PaymentMethod: strings.ToUpper(string(r.PaymentMethod)),
	}
	for _, e := range r.Items {
		v.Lines = append(v.Lines, ReceiptLine{
			Name:     e.Name,
			Quantity: fmt.Sprintf("%s %s", Qty(e.Quantity), e.Unit),
			Subtotal: Money(e.Subtotal()),
		})
	}
	return v
}

func center(s string) string {
	pad := (ticketWidth - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func rule(c string) string { return strings.Repeat(c, ticketWidth) }

func (v ReceiptView) String() string {
	var sb strings.Builder
	sb.WriteString(rule("=") + "\n")
	sb.WriteString(center(shopName) + "\n")
	sb.WriteString(center(shopTag) + "\n")
	sb.WriteString(center(shopStreet) + "\n")
	sb.WriteString(center(shopPhone) + "\n")
	sb.WriteString(rule("-") + "\n")
	fmt.Fprintf(&sb, "Pedido #: %d\n", v.OrderID)
	fmt.Fprintf(&sb, "Fecha:    %s\n", v.Date)
	fmt.Fprintf(&sb, "Cliente:  %s\n", v.Customer)
	fmt.Fprintf(&sb, "Email:    %s\n", v.Email)
	if v.Phone != "" {
		fmt.Fprintf(&sb, "Tel:      %s\n", v.Phone)
	}
	sb.WriteString(rule("-") + "\n")
	for _, l := range v.Lines {
		left := fmt.Sprintf("%s (%s)", l.Name, l.Quantity)
		gap := ticketWidth - len([]rune(left)) - len([]rune(l.Subtotal))
		if gap < 1 {
			gap = 1
		}
		sb.WriteString(left + strings.Repeat(" ", gap) + l.Subtotal + "\n")
	}
	sb.WriteString(rule("-") + "\n")
	fmt.Fprintf(&sb, "TOTAL: %s\n", v.Total)
	fmt.Fprintf(&sb, "Método de pago: %s\n", v.PaymentMethod)
	sb.WriteString(rule("-") + "\n")
	sb.WriteString(center("¡Gracias por tu compra!") + "\n")
	sb.WriteString(center("Calidad y tradición en carnes") + "\n")
	sb.WriteString(rule("=") + "\n")
	return sb.String()
}

// LocalHistoryList renders the locally mirrored orders.
func LocalHistoryList(orders []checkout.LocalOrder) string {
	if len(orders) == 0 {
		return "No hay pedidos guardados en tu historial local.\n"
	}
	var sb strings.Builder
	for _, o := range orders {
		fmt.Fprintf(&sb, "Pedido ID: %d\nFecha: %s\nTotal: %s\n", o.ID, o.Date, Money(o.Total))
		for _, item := range o.Items {
			fmt.Fprintf(&sb, "  - %s (%s %s) - Subtotal: %s\n", item.Name, Qty(item.Quantity), item.Unit, Money(item.Subtotal()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
