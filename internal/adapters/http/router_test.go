package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noorulain276775/pizza-delivery-app/internal/adapters/memory"
	"github.com/noorulain276775/pizza-delivery-app/internal/application"
	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
)

type stubPizzaRepo struct {
	pizzas map[int64]domain.Pizza
}

func (s *stubPizzaRepo) GetByID(_ context.Context, id int64) (domain.Pizza, error) {
	pizza, ok := s.pizzas[id]
	if !ok {
		return domain.Pizza{}, domain.ErrNotFound
	}
	return pizza, nil
}

func (s *stubPizzaRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]domain.Pizza, error) {
	out := make(map[int64]domain.Pizza)
	for _, id := range ids {
		if pizza, ok := s.pizzas[id]; ok {
			out[id] = pizza
		}
	}
	return out, nil
}

func (s *stubPizzaRepo) List(_ context.Context) ([]domain.Pizza, error) {
	out := make([]domain.Pizza, 0, len(s.pizzas))
	for _, pizza := range s.pizzas {
		out = append(out, pizza)
	}
	return out, nil
}

type stubOrderRepo struct {
	orders []domain.Order
	nextID int64
}

func (s *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	s.nextID++
	order.ID = s.nextID
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	s.orders = append(s.orders, *order)
	return nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, id int64) (domain.Order, error) {
	for _, order := range s.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (s *stubOrderRepo) ListNewestFirst(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	pizzas := &stubPizzaRepo{pizzas: map[int64]domain.Pizza{
		1: {ID: 1, Name: "Margherita", Ingredients: "tomato, mozzarella", Price: decimal.RequireFromString("12.99")},
		2: {ID: 2, Name: "Pepperoni", Ingredients: "pepperoni, cheese", Price: decimal.RequireFromString("15.99")},
	}}
	orderService := application.NewOrderService(application.OrderServiceDeps{
		Pizzas:  pizzas,
		Orders:  &stubOrderRepo{},
		Ceiling: decimal.RequireFromString("500.00"),
	})
	chatService := application.NewChatService(application.ChatServiceDeps{
		Sessions: memory.NewSessionStore(),
		Limiter:  memory.NewRateLimiter(20, time.Minute),
		Strategy: application.NewResponseStrategy(time.Second, nil),
	})

	server := httptest.NewServer(NewRouter(NewHandler(orderService, chatService)))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, body string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, env
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/orders/", `{
		"customer_name": "Jane Smith",
		"phone_number": "+1234567890",
		"items": [{"pizza_id": 1, "quantity": 2}, {"pizza_id": 2, "quantity": 1}]
	}`)
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if env.Status != "success" {
		t.Fatalf("envelope status = %q", env.Status)
	}

	var order struct {
		ID         int64  `json:"id"`
		TotalPrice string `json:"total_price"`
		Items      []struct {
			PizzaName string `json:"pizza_name"`
		} `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.TotalPrice != "41.97" {
		t.Fatalf("total_price = %q, want 41.97", order.TotalPrice)
	}
	if len(order.Items) != 2 || order.Items[0].PizzaName != "Margherita" {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
}

func TestCreateOrderEndpointValidation(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/orders/", `{
		"customer_name": "",
		"phone_number": "bad",
		"items": []
	}`)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q, want VALIDATION_ERROR", env.Code)
	}
	if !strings.Contains(env.Message, "customer_name") {
		t.Fatalf("message should carry field detail, got %q", env.Message)
	}
}

func TestCreateOrderEndpointRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/orders/", `{
		"customer_name": "Jane Smith",
		"phone_number": "+1234567890",
		"items": [{"pizza_id": 1, "quantity": 1}],
		"total_price": "0.01"
	}`)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q, want VALIDATION_ERROR", env.Code)
	}
}

func TestCreateOrderEndpointCeiling(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/orders/", `{
		"customer_name": "Jane Smith",
		"phone_number": "+1234567890",
		"items": [{"pizza_id": 1, "quantity": 40}]
	}`)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", status)
	}
	if env.Code != "BUSINESS_RULE_VIOLATION" {
		t.Fatalf("code = %q, want BUSINESS_RULE_VIOLATION", env.Code)
	}
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/orders/42", "")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if env.Code != "NOT_FOUND" {
		t.Fatalf("code = %q, want NOT_FOUND", env.Code)
	}
}

func TestGetPizzaEndpointBadID(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/pizzas/abc", "")
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q, want VALIDATION_ERROR", env.Code)
	}
}

func TestListPizzasEndpoint(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/pizzas/", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var pizzas []struct {
		Name  string `json:"name"`
		Price string `json:"price"`
	}
	if err := json.Unmarshal(env.Data, &pizzas); err != nil {
		t.Fatalf("decode pizzas: %v", err)
	}
	if len(pizzas) != 2 {
		t.Fatalf("pizza count = %d, want 2", len(pizzas))
	}
}

func TestChatEndpointFlow(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/chat/", `{"message": "show me the menu"}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var chat struct {
		SessionID string `json:"session_id"`
		Response  string `json:"response"`
	}
	if err := json.Unmarshal(env.Data, &chat); err != nil {
		t.Fatalf("decode chat: %v", err)
	}
	if chat.SessionID == "" || chat.Response == "" {
		t.Fatalf("incomplete chat response: %+v", chat)
	}

	status, env = doJSON(t, http.MethodGet, server.URL+"/api/chat/history/"+chat.SessionID, "")
	if status != http.StatusOK {
		t.Fatalf("history status = %d, want 200", status)
	}
	var history struct {
		History []struct {
			Role string `json:"role"`
		} `json:"history"`
	}
	if err := json.Unmarshal(env.Data, &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(history.History))
	}

	status, env = doJSON(t, http.MethodDelete, server.URL+"/api/chat/clear/"+chat.SessionID, "")
	if status != http.StatusOK {
		t.Fatalf("clear status = %d, want 200", status)
	}
	if env.Message != "chat history cleared" {
		t.Fatalf("clear message = %q", env.Message)
	}
}

func TestChatEndpointRejectsEmptyMessage(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/chat/", `{"message": "  "}`)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q, want VALIDATION_ERROR", env.Code)
	}
}

func TestChatEndpointRateLimit(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	body := `{"session_id": "s1", "message": "hello"}`
	for i := 0; i < 20; i++ {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/api/chat/", body)
		if status != http.StatusOK {
			t.Fatalf("call %d: status = %d, want 200", i+1, status)
		}
	}
	status, env := doJSON(t, http.MethodPost, server.URL+"/api/chat/", body)
	if status != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", status)
	}
	if env.Code != "RATE_LIMITED" {
		t.Fatalf("code = %q, want RATE_LIMITED", env.Code)
	}
}

func TestChatHealthAndStatsEndpoints(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/chat/health", "")
	if status != http.StatusOK {
		t.Fatalf("health status = %d, want 200", status)
	}
	var health struct {
		ModelReady bool `json:"model_ready"`
		Degraded   bool `json:"degraded"`
	}
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.ModelReady {
		t.Fatal("model must not report ready without a loaded generator")
	}

	status, env = doJSON(t, http.MethodGet, server.URL+"/api/chat/stats", "")
	if status != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", status)
	}
	var stats struct {
		FallbackMode bool `json:"fallback_mode"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if !stats.FallbackMode {
		t.Fatal("fallback mode must report true while uninitialized")
	}
}

func TestChatHelpEndpoint(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/chat/help", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var help struct {
		Endpoints map[string]string `json:"endpoints"`
	}
	if err := json.Unmarshal(env.Data, &help); err != nil {
		t.Fatalf("decode help: %v", err)
	}
	if len(help.Endpoints) == 0 {
		t.Fatal("help must enumerate the chat endpoints")
	}
	if _, ok := help.Endpoints["POST /api/chat/"]; !ok {
		t.Fatalf("help must document the chat endpoint, got %v", help.Endpoints)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		status, env := doJSON(t, http.MethodGet, server.URL+path, "")
		if status != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", path, status)
		}
		if env.Status != "success" {
			t.Fatalf("%s envelope status = %q", path, env.Status)
		}
	}
}

func TestRequestIDPropagated(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatal("X-Request-Id header must be set")
	}
}
