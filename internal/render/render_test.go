package render

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmatadero/carniceria-client/internal/api"
	"github.com/elmatadero/carniceria-client/internal/cart"
	"github.com/elmatadero/carniceria-client/internal/catalog"
	"github.com/elmatadero/carniceria-client/internal/checkout"
	"github.com/elmatadero/carniceria-client/internal/session"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMoneyAndQty(t *testing.T) {
	assert.Equal(t, "$20.000", Money(dec("20")))
	assert.Equal(t, "$8.500", Money(dec("8.5")))
	assert.Equal(t, "3.00", Qty(dec("3")))
	assert.Equal(t, "0.75", Qty(dec("0.75")))
}

func TestBuildCartView(t *testing.T) {
	entries := []cart.Entry{
		{ProductID: 1, Name: "Vacío", Price: dec("8.500"), Unit: "kg", Quantity: dec("2")},
		{ProductID: 2, Name: "Chorizo", Price: dec("1.200"), Unit: "docena", Quantity: dec("1")},
	}
	total := dec("18.200")

	v := BuildCartView(entries, total)
	require.Len(t, v.Lines, 2)
	assert.Equal(t, 2, v.Count)
	assert.Equal(t, "$18.200", v.Total)
	assert.Equal(t, CartLine{Name: "Vacío", Quantity: "2.00", Unit: "kg", Subtotal: "$17.000"}, v.Lines[0])
	assert.Equal(t, CartLine{Name: "Chorizo", Quantity: "1.00", Unit: "docena", Subtotal: "$1.200"}, v.Lines[1])
}

func TestCartView_EmptyMessage(t *testing.T) {
	v := BuildCartView(nil, decimal.Zero)
	assert.Equal(t, "Tu carrito está vacío. ¡Agrega tus cortes favoritos!\n", v.String())
}

func TestCatalogTable(t *testing.T) {
	out := CatalogTable([]catalog.Product{
		{ID: 1, Name: "Vacío", Cut: "Costillar", Price: dec("8.500"), Unit: "kg"},
	})
	assert.Contains(t, out, "Vacío")
	assert.Contains(t, out, "$8.500 / kg")

	assert.Equal(t, "Catálogo vacío o error de carga.\n", CatalogTable(nil))
}

func TestBuildReceipt_Scenario(t *testing.T) {
	r := &checkout.Receipt{
		OrderID: 42,
		Date:    time.Date(2026, 8, 31, 12, 30, 0, 0, time.UTC),
		Customer: session.Identity{
			ID: 5, Name: "Ana", Surname: "Gómez", Email: "ana@example.com",
		},
		Items: []cart.Entry{
			{ProductID: 1, Name: "Vacío", Price: dec("10.00"), Unit: "kg", Quantity: dec("2")},
		},
		Total:         dec("20.00"),
		PaymentMethod: checkout.MethodCash,
	}

	v := BuildReceipt(r)
	assert.Equal(t, 42, v.OrderID)
	assert.Equal(t, "$20.000", v.Total)
	assert.Equal(t, "EFECTIVO", v.PaymentMethod)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, "2.00 kg", v.Lines[0].Quantity)
	assert.Equal(t, "$20.000", v.Lines[0].Subtotal)

	ticket := v.String()
	assert.Contains(t, ticket, "EL MATADERO")
	assert.Contains(t, ticket, "Pedido #: 42")
	assert.Contains(t, ticket, "Cliente:  Ana Gómez")
	assert.Contains(t, ticket, "TOTAL: $20.000")
	assert.Contains(t, ticket, "Método de pago: EFECTIVO")
	// No phone on the identity, no phone row on the ticket.
	assert.NotContains(t, ticket, "Tel:      ")
}

func TestOrdersTable(t *testing.T) {
	out := OrdersTable([]api.AdminOrder{
		{ID: 3, Date: "2026-08-30", Name: "Luis", Surname: "Pérez", Total: dec("45.5"), Status: "pendiente", PaymentMethod: "tarjeta"},
	})
	assert.Contains(t, out, "Luis Pérez")
	assert.Contains(t, out, "$45.500")
	assert.Contains(t, out, "pendiente")

	assert.Equal(t, "No hay pedidos.\n", OrdersTable(nil))
}

func TestOrderDetail(t *testing.T) {
	o := &api.AdminOrder{
		ID: 9, Name: "Ana", Surname: "Gómez", Email: "ana@example.com",
		Date: "2026-08-30", Status: "completado", PaymentMethod: "efectivo",
		Total:  dec("17"),
		Edited: true, EditedAt: "2026-08-31",
		Items: []api.OrderLine{
			{Name: "Vacío", Quantity: dec("2"), Unit: "kg", UnitPrice: dec("8.5"), Subtotal: dec("17")},
		},
	}
	out := OrderDetail(o)
	assert.Contains(t, out, "Pedido #9")
	assert.Contains(t, out, "Editado el 2026-08-31")
	assert.Contains(t, out, "2.00 kg")
	assert.Contains(t, out, "Total: $17.000")
}

func TestReportSummary(t *testing.T) {
	out := ReportSummary("Reporte del 2026-08-30",
		api.ReportTotals{OrderCount: 3, SalesTotal: dec("45.5"), AverageTicket: dec("15.17")},
		[]api.MethodBreakdown{{PaymentMethod: "efectivo", Count: 2, Total: dec("30")}},
		[]api.TopProduct{{Name: "Vacío", Cut: "Costillar", SoldCount: dec("5"), SoldTotal: dec("42.5")}},
	)
	assert.Contains(t, out, "Pedidos: 3")
	assert.Contains(t, out, "$45.500")
	assert.Contains(t, out, "efectivo")
	assert.Contains(t, out, "Vacío - Costillar")
}

func TestClosingsTable(t *testing.T) {
	out := ClosingsTable([]api.Closing{
		{Date: "2026-08-30", UserName: "Carla", CashTotal: dec("10"), CardTotal: dec("20"), TransferTotal: dec("5"), GrandTotal: dec("35"), OrderCount: 4},
	})
	assert.Contains(t, out, "Carla")
	assert.Contains(t, out, "$35.000")

	assert.Equal(t, "No hay cierres registrados.\n", ClosingsTable(nil))
}

func TestLocalHistoryList(t *testing.T) {
	out := LocalHistoryList([]checkout.LocalOrder{
		{ID: 42, Date: "2026-08-31 12:30:00", Total: dec("20"), Items: []cart.Entry{
			{Name: "Vacío", Quantity: dec("2"), Unit: "kg", Price: dec("10")},
		}},
	})
	assert.Contains(t, out, "Pedido ID: 42")
	assert.Contains(t, out, "Vacío (2.00 kg) - Subtotal: $20.000")

	assert.Equal(t, "No hay pedidos guardados en tu historial local.\n", LocalHistoryList(nil))
}
