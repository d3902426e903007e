package api

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"
)

// Closing is one cash-register closing record.
type Closing struct {
	Date          string          `json:"fecha"`
	UserName      string          `json:"usuario_nombre"`
	CashTotal     decimal.Decimal `json:"total_efectivo"`
	CardTotal     decimal.Decimal `json:"total_tarjeta"`
	TransferTotal decimal.Decimal `json:"total_transferencia"`
	GrandTotal    decimal.Decimal `json:"total_general"`
	OrderCount    int             `json:"cantidad_pedidos"`
}

type CloseRegisterRequest struct {
	Date   string `json:"fecha"`
	UserID int    `json:"usuario_id"`
	Notes  string `json:"observaciones"`
}

type ClosingTotals struct {
	CashTotal     decimal.Decimal `json:"total_efectivo"`
	CardTotal     decimal.Decimal `json:"total_tarjeta"`
	TransferTotal decimal.Decimal `json:"total_transferencia"`
	GrandTotal    decimal.Decimal `json:"total_general"`
	OrderCount    int             `json:"cantidad_pedidos"`
}

type CloseRegisterResponse struct {
	Totals ClosingTotals `json:"totales"`
}

// ReportTotals is the summary block shared by the daily and range reports.
type ReportTotals struct {
	OrderCount    int             `json:"total_pedidos"`
	SalesTotal    decimal.Decimal `json:"total_ventas"`
	AverageTicket decimal.Decimal `json:"ticket_promedio"`
}

type MethodBreakdown struct {
	PaymentMethod string          `json:"metodo_pago"`
	Count         int             `json:"cantidad"`
	Total         decimal.Decimal `json:"total"`
}

type TopProduct struct {
	Name      string          `json:"nombre"`
	Cut       string          `json:"corte"`
	SoldCount decimal.Decimal `json:"cantidad_vendida"`
	SoldTotal decimal.Decimal `json:"total_vendido"`
}

type DailyReport struct {
	Date        string            `json:"fecha"`
	Totals      ReportTotals      `json:"totales"`
	ByMethod    []MethodBreakdown `json:"por_metodo_pago"`
	TopProducts []TopProduct      `json:"productos_mas_vendidos"`
}

type RangeReport struct {
	From        string            `json:"fecha_desde"`
	To          string            `json:"fecha_hasta"`
	Totals      ReportTotals      `json:"totales"`
	ByMethod    []MethodBreakdown `json:"por_metodo_pago"`
	TopProducts []TopProduct      `json:"productos_mas_vendidos"`
}

func (c *Client) Closings(ctx context.Context) ([]Closing, error) {
	var closings []Closing
	if err := c.get(ctx, "/admin/cierres", "", &closings); err != nil {
		return nil, err
	}
	return closings, nil
}

func (c *Client) CloseRegister(ctx context.Context, in CloseRegisterRequest) (CloseRegisterResponse, error) {
	var out CloseRegisterResponse
	err := c.post(ctx, "/admin/cierre-caja", in, &out)
	return out, err
}

func (c *Client) DailyReport(ctx context.Context, date string) (DailyReport, error) {
	q := url.Values{"fecha": {date}}
	var out DailyReport
	err := c.get(ctx, "/admin/reportes/diario", q.Encode(), &out)
	return out, err
}

func (c *Client) RangeReport(ctx context.Context, from, to string) (RangeReport, error) {
	q := url.Values{"desde": {from}, "hasta": {to}}
	var out RangeReport
	err := c.get(ctx, "/admin/reportes/rango", q.Encode(), &out)
	return out, err
}
