package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"homesteadhub/internal/cart"
	"homesteadhub/internal/catalog"
	"homesteadhub/internal/domain"
	"homesteadhub/internal/payment"
	tokenrepo "homesteadhub/internal/repository/token"
	"homesteadhub/internal/service/checkout"
	"homesteadhub/internal/service/inventory"
	"homesteadhub/internal/service/portal"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func (m *memTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := m.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	m.tokens[t.Token] = t
	return nil
}

func (m *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	if t, ok := m.tokens[token]; ok {
		return &t, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := m.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tokens, token)
	return nil
}

type memOrderRepo struct {
	orders []domain.Order
}

func (m *memOrderRepo) Save(_ context.Context, order domain.Order) (*domain.Order, error) {
	m.orders = append(m.orders, order)
	return &order, nil
}

func (m *memOrderRepo) GetByID(_ context.Context, orderID, customerID string) (*domain.Order, error) {
	for _, o := range m.orders {
		if o.ID == orderID && o.CustomerID == customerID {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memOrderRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrderRepo) ListLines(_ context.Context) ([]domain.LineItem, error) {
	var out []domain.LineItem
	for _, o := range m.orders {
		out = append(out, o.Lines...)
	}
	return out, nil
}

func (m *memOrderRepo) ListLinesToFarmer(_ context.Context, farmerUsername string) ([]domain.LineItem, error) {
	var out []domain.LineItem
	for _, o := range m.orders {
		for _, l := range o.Lines {
			if l.FarmerUsername == farmerUsername {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

type memProductRepo struct {
	stocks map[string]int
}

func (m *memProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (m *memProductRepo) GetBySKU(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (m *memProductRepo) ListAll(_ context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (m *memProductRepo) ListByFarmer(_ context.Context, _ string) ([]domain.Product, error) {
	return nil, nil
}

func (m *memProductRepo) UpdateStock(_ context.Context, sku string, stock int) error {
	m.stocks[sku] = stock
	return nil
}

func testRouter(t *testing.T) (*gin.Engine, *catalog.Store, *memOrderRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("Secret12"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	users := &memUserRepo{users: map[string]*domain.User{
		"alice": {ID: "u1", Username: "alice", PasswordHash: string(hash), Role: domain.RoleCustomer, ShippingAddress: "12 Orchard Ln"},
	}}
	portalSvc := portal.New(users, &memTokenRepo{tokens: make(map[string]tokenrepo.Token)})

	store := catalog.New()
	store.Add(domain.Product{SKU: "APPLE1", Title: "Apples", Stock: 100, UnitPrice: decimal.RequireFromString("9.99"), FarmerUsername: "farmer1"})

	products := &memProductRepo{stocks: make(map[string]int)}
	inventorySvc := inventory.New(store, products, nil)

	registry := payment.NewRegistry()
	registry.Register(payment.MethodCashPickup, payment.NewCashPickup())
	registry.Register(payment.MethodCard, payment.NewCard())

	orders := &memOrderRepo{}
	checkoutSvc := checkout.New(store, registry, orders, products, nil)

	logger := log.New(bytes.NewBuffer(nil), "", 0)
	router := buildRouter(logger, nil, Deps{
		Portal:    portalSvc,
		Inventory: inventorySvc,
		Checkout:  checkoutSvc,
		Carts:     cart.NewStore(),
		Orders:    orders,
	})
	return router, store, orders
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loginAlice(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"username": "alice",
		"password": "Secret12",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.AccessToken
}

func TestHealthz(t *testing.T) {
	router, _, _ := testRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	router, _, _ := testRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"username": "ghost",
		"password": "whatever",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCartRequiresAuth(t *testing.T) {
	router, _, _ := testRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/cart", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCheckoutFlow(t *testing.T) {
	router, store, orders := testRouter(t)
	token := loginAlice(t, router)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", token, map[string]interface{}{
		"sku":      "APPLE1",
		"quantity": 10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add to cart failed with status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/checkout", token, map[string]string{
		"paymentMethod": payment.MethodCashPickup,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Order struct {
			ID     string `json:"id"`
			Total  string `json:"total"`
			Status string `json:"status"`
		} `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode checkout response: %v", err)
	}
	if resp.Order.Total != "99.9" {
		t.Fatalf("expected total 99.9, got %s", resp.Order.Total)
	}
	if resp.Order.Status != string(domain.StatusReadyForPickup) {
		t.Fatalf("expected READY_FOR_PICKUP, got %s", resp.Order.Status)
	}

	p, _ := store.Get("APPLE1")
	if p.Stock != 90 {
		t.Fatalf("expected stock 90, got %d", p.Stock)
	}
	if len(orders.orders) != 1 {
		t.Fatalf("expected 1 persisted order, got %d", len(orders.orders))
	}

	// Cart must be empty after a successful placement.
	rec = doJSON(t, router, http.MethodGet, "/cart", token, nil)
	var cartResp struct {
		Subtotal string `json:"subtotal"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cartResp); err != nil {
		t.Fatalf("decode cart response: %v", err)
	}
	if cartResp.Subtotal != "0.00" {
		t.Fatalf("expected empty cart, got subtotal %s", cartResp.Subtotal)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	router, store, _ := testRouter(t)
	token := loginAlice(t, router)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", token, map[string]interface{}{
		"sku":      "APPLE1",
		"quantity": 101,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add to cart failed with status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/checkout", token, map[string]string{
		"paymentMethod": payment.MethodCard,
		"paymentToken":  "tok",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SKU       string `json:"sku"`
		Requested int    `json:"requested"`
		Available int    `json:"available"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SKU != "APPLE1" || resp.Requested != 101 || resp.Available != 100 {
		t.Fatalf("unexpected rejection detail: %+v", resp)
	}

	p, _ := store.Get("APPLE1")
	if p.Stock != 100 {
		t.Fatalf("expected stock unchanged, got %d", p.Stock)
	}
}

func TestFarmerEndpointsForbiddenForCustomers(t *testing.T) {
	router, _, _ := testRouter(t)
	token := loginAlice(t, router)

	rec := doJSON(t, router, http.MethodGet, "/farmer/orders", token, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
