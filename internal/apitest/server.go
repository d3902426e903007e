// Package apitest runs an in-process stand-in for the carniceria backend so
// the client packages can be exercised end to end without a real server.
// It implements the same endpoints with in-memory state and deliberately
// simple semantics; authoritative behavior still lives server-side.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID    int    `json:"id"`
	Name  string `json:"nombre"`
	Cut   string `json:"corte"`
	Price string `json:"precio"`
	Unit  string `json:"unidad"`
}

type Account struct {
	ID       int    `json:"id"`
	Name     string `json:"nombre"`
	Surname  string `json:"apellido"`
	Email    string `json:"email"`
	Phone    string `json:"telefono"`
	Address  string `json:"direccion"`
	Role     string `json:"rol"`
	Password string `json:"-"`
}

type orderItem struct {
	ID       int             `json:"id"`
	Quantity decimal.Decimal `json:"cantidad"`
	Price    decimal.Decimal `json:"precio"`
	Name     string          `json:"nombre"`
	Unit     string          `json:"unidad"`
}

type order struct {
	ID       int
	ClientID int
	Date     string
	Method   string
	Status   string
	Items    []orderItem
	Total    decimal.Decimal
	Edited   bool
}

type closing struct {
	Date     string          `json:"fecha"`
	UserName string          `json:"usuario_nombre"`
	Cash     decimal.Decimal `json:"total_efectivo"`
	Card     decimal.Decimal `json:"total_tarjeta"`
	Transfer decimal.Decimal `json:"total_transferencia"`
	Total    decimal.Decimal `json:"total_general"`
	Count    int             `json:"cantidad_pedidos"`
}

// Server is the fake backend. Mutate the exported knobs between requests to
// steer behavior; all access is mutex-guarded.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	products    []Product
	accounts    []Account
	orders      []order
	closings    []closing
	nextID      int
	nextOrderID int

	// FailNextOrder, when non-empty, makes the next POST /pedidos answer
	// 500 with this error message, then resets.
	FailNextOrder string

	// Today stamps created orders and scopes the daily report.
	Today string
}

func New() *Server {
	s := &Server{nextID: 1, nextOrderID: 1, Today: "2026-08-31"}
	r := chi.NewRouter()

	r.Get("/productos", s.handleProducts)
	r.Post("/clientes/registro", s.handleRegister)
	r.Post("/clientes/login", s.handleLogin)
	r.Post("/pedidos", s.handleCreateOrder)
	r.Get("/pedidos/historial", s.handleHistory)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/pedidos", s.handleAdminOrders)
		r.Put("/pedidos/{id}", s.handleUpdateOrder)
		r.Delete("/pedidos/{id}", s.handleCancelOrder)
		r.Get("/cierres", s.handleClosings)
		r.Post("/cierre-caja", s.handleCloseRegister)
		r.Get("/reportes/diario", s.handleDailyReport)
		r.Get("/reportes/rango", s.handleRangeReport)
		r.Post("/productos", s.handleCreateProduct)
		r.Put("/productos/{id}", s.handleUpdateProduct)
		r.Delete("/productos/{id}", s.handleDeleteProduct)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// SeedProducts replaces the catalog.
func (s *Server) SeedProducts(products ...Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// SeedAccount registers an account directly, returning its id.
func (s *Server) SeedAccount(a Account) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextID
	s.nextID++
	s.accounts = append(s.accounts, a)
	return a.ID
}

// Orders returns a copy of the stored orders.
func (s *Server) Orders() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, map[string]any{
			"id": o.ID, "cliente_id": o.ClientID, "metodo_pago": o.Method,
			"estado": o.Status, "total": o.Total.String(),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.products)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"nombre"`
		Surname  string `json:"apellido"`
		Email    string `json:"email"`
		Phone    string `json:"telefono"`
		Address  string `json:"direccion"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == body.Email {
			writeError(w, http.StatusBadRequest, "El email ya está registrado")
			return
		}
	}
	acct := Account{
		ID: s.nextID, Name: body.Name, Surname: body.Surname, Email: body.Email,
		Phone: body.Phone, Address: body.Address, Role: "cliente", Password: body.Password,
	}
	s.nextID++
	s.accounts = append(s.accounts, acct)
	writeJSON(w, http.StatusCreated, map[string]int{"cliente_id": acct.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == body.Email && a.Password == body.Password {
			writeJSON(w, http.StatusOK, map[string]any{"cliente": a})
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "Email o contraseña incorrectos")
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.FailNextOrder != "" {
		msg := s.FailNextOrder
		s.FailNextOrder = ""
		s.mu.Unlock()
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	s.mu.Unlock()

	var body struct {
		ClientID int         `json:"cliente_id"`
		Items    []orderItem `json:"items"`
		Method   string      `json:"metodo_pago"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if len(body.Items) == 0 {
		writeError(w, http.StatusBadRequest, "El pedido no tiene items")
		return
	}

	total := decimal.Zero
	for _, it := range body.Items {
		total = total.Add(it.Price.Mul(it.Quantity))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o := order{
		ID: s.nextOrderID, ClientID: body.ClientID, Date: s.Today,
		Method: body.Method, Status: "pendiente", Items: body.Items, Total: total,
	}
	s.nextOrderID++
	s.orders = append(s.orders, o)
	writeJSON(w, http.StatusCreated, map[string]int{"pedido_id": o.ID})
}

func (s *Server) account(id int) Account {
	for _, a := range s.accounts {
		if a.ID == id {
			return a
		}
	}
	return Account{}
}

func (s *Server) orderJSON(o order, nameKey, surnameKey string) map[string]any {
	acct := s.account(o.ClientID)
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"nombre": it.Name, "cantidad": it.Quantity, "unidad": it.Unit,
			"precio_unitario": it.Price, "subtotal": it.Price.Mul(it.Quantity),
		})
	}
	return map[string]any{
		"id": o.ID, "fecha": o.Date, nameKey: acct.Name, surnameKey: acct.Surname,
		"email": acct.Email, "telefono": acct.Phone, "total": o.Total,
		"estado": o.Status, "metodo_pago": o.Method, "items": items, "editado": o.Edited,
	}
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, s.orderJSON(o, "nombre", "apellido"))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, s.orderJSON(o, "cliente_nombre", "cliente_apellido"))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) findOrder(id int) *order {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i]
		}
	}
	return nil
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var body struct {
		Status   string `json:"estado"`
		EditedBy int    `json:"editado_por"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.findOrder(id)
	if o == nil {
		writeError(w, http.StatusNotFound, "Pedido no encontrado")
		return
	}
	o.Status = body.Status
	o.Edited = true
	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Pedido actualizado"})
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.findOrder(id)
	if o == nil {
		writeError(w, http.StatusNotFound, "Pedido no encontrado")
		return
	}
	o.Status = "cancelado"
	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Pedido cancelado"})
}

func (s *Server) handleClosings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.closings
	if out == nil {
		out = []closing{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) totalsFor(from, to string) (totals map[string]decimal.Decimal, count int, byMethod map[string]*methodAgg) {
	totals = map[string]decimal.Decimal{
		"efectivo": decimal.Zero, "tarjeta": decimal.Zero, "transferencia": decimal.Zero,
	}
	byMethod = map[string]*methodAgg{}
	for _, o := range s.orders {
		if o.Date < from || o.Date > to || o.Status == "cancelado" {
			continue
		}
		count++
		totals[o.Method] = totals[o.Method].Add(o.Total)
		agg := byMethod[o.Method]
		if agg == nil {
			agg = &methodAgg{}
			byMethod[o.Method] = agg
		}
		agg.Count++
		agg.Total = agg.Total.Add(o.Total)
	}
	return totals, count, byMethod
}

type methodAgg struct {
	Count int
	Total decimal.Decimal
}

func (s *Server) handleCloseRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date   string `json:"fecha"`
		UserID int    `json:"usuario_id"`
		Notes  string `json:"observaciones"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Date == "" {
		writeError(w, http.StatusBadRequest, "Debe indicar una fecha")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	totals, count, _ := s.totalsFor(body.Date, body.Date)
	grand := totals["efectivo"].Add(totals["tarjeta"]).Add(totals["transferencia"])
	c := closing{
		Date: body.Date, UserName: s.account(body.UserID).Name,
		Cash: totals["efectivo"], Card: totals["tarjeta"], Transfer: totals["transferencia"],
		Total: grand, Count: count,
	}
	s.closings = append(s.closings, c)
	writeJSON(w, http.StatusCreated, map[string]any{"totales": map[string]any{
		"total_efectivo": c.Cash, "total_tarjeta": c.Card,
		"total_transferencia": c.Transfer, "total_general": c.Total,
		"cantidad_pedidos": c.Count,
	}})
}

func (s *Server) reportJSON(from, to string) map[string]any {
	_, count, byMethod := s.totalsFor(from, to)
	sales := decimal.Zero
	methods := make([]map[string]any, 0, len(byMethod))
	for _, m := range []string{"efectivo", "tarjeta", "transferencia"} {
		agg := byMethod[m]
		if agg == nil {
			continue
		}
		sales = sales.Add(agg.Total)
		methods = append(methods, map[string]any{"metodo_pago": m, "cantidad": agg.Count, "total": agg.Total})
	}
	avg := decimal.Zero
	if count > 0 {
		avg = sales.Div(decimal.NewFromInt(int64(count))).Round(2)
	}

	type prodAgg struct {
		qty   decimal.Decimal
		total decimal.Decimal
		cut   string
	}
	products := map[string]*prodAgg{}
	for _, o := range s.orders {
		if o.Date < from || o.Date > to || o.Status == "cancelado" {
			continue
		}
		for _, it := range o.Items {
			agg := products[it.Name]
			if agg == nil {
				agg = &prodAgg{}
				products[it.Name] = agg
			}
			agg.qty = agg.qty.Add(it.Quantity)
			agg.total = agg.total.Add(it.Price.Mul(it.Quantity))
		}
	}
	top := make([]map[string]any, 0, len(products))
	for name, agg := range products {
		top = append(top, map[string]any{
			"nombre": name, "corte": agg.cut,
			"cantidad_vendida": agg.qty, "total_vendido": agg.total,
		})
	}

	return map[string]any{
		"totales": map[string]any{
			"total_pedidos": count, "total_ventas": sales, "ticket_promedio": avg,
		},
		"por_metodo_pago":        methods,
		"productos_mas_vendidos": top,
	}
}

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("fecha")
	if date == "" {
		writeError(w, http.StatusBadRequest, "Debe indicar una fecha")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.reportJSON(date, date)
	out["fecha"] = date
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRangeReport(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("desde")
	to := r.URL.Query().Get("hasta")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "Debe indicar ambas fechas")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.reportJSON(from, to)
	out["fecha_desde"] = from
	out["fecha_hasta"] = to
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || strings.TrimSpace(p.Name) == "" {
		writeError(w, http.StatusBadRequest, "Producto inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID
	s.nextID++
	s.products = append(s.products, p)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Producto inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p.ID = id
			s.products[i] = p
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Producto no encontrado")
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Producto eliminado"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Producto no encontrado")
}
