package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
)

type fakePizzaRepo struct {
	pizzas map[int64]domain.Pizza
	err    error
}

func (f *fakePizzaRepo) GetByID(_ context.Context, id int64) (domain.Pizza, error) {
	if f.err != nil {
		return domain.Pizza{}, f.err
	}
	pizza, ok := f.pizzas[id]
	if !ok {
		return domain.Pizza{}, domain.ErrNotFound
	}
	return pizza, nil
}

func (f *fakePizzaRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]domain.Pizza, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[int64]domain.Pizza)
	for _, id := range ids {
		if pizza, ok := f.pizzas[id]; ok {
			out[id] = pizza
		}
	}
	return out, nil
}

func (f *fakePizzaRepo) List(_ context.Context) ([]domain.Pizza, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Pizza, 0, len(f.pizzas))
	for _, pizza := range f.pizzas {
		out = append(out, pizza)
	}
	return out, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []domain.Order
	nextID int64
	err    error
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	order.ID = f.nextID
	for i := range order.Items {
		order.Items[i].ID = int64(i + 1)
		order.Items[i].OrderID = order.ID
	}
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (f *fakeOrderRepo) ListNewestFirst(_ context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Order, len(f.orders))
	copy(out, f.orders)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ []byte, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type orderFixture struct {
	service   *OrderService
	orders    *fakeOrderRepo
	publisher *recordingPublisher
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	pizzas := &fakePizzaRepo{pizzas: map[int64]domain.Pizza{
		1: {ID: 1, Name: "Margherita", Price: decimal.RequireFromString("12.99")},
		2: {ID: 2, Name: "Pepperoni", Price: decimal.RequireFromString("15.99")},
		3: {ID: 3, Name: "Hawaiian", Price: decimal.RequireFromString("16.99")},
	}}
	orders := &fakeOrderRepo{}
	publisher := &recordingPublisher{}
	service := NewOrderService(OrderServiceDeps{
		Pizzas:    pizzas,
		Orders:    orders,
		Publisher: publisher,
		Ceiling:   decimal.RequireFromString("500.00"),
	})
	return &orderFixture{service: service, orders: orders, publisher: publisher}
}

func TestCreateOrderComputesTotalServerSide(t *testing.T) {
	t.Parallel()
	fx := newOrderFixture(t)

	resp, err := fx.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerName: "Jane Smith",
		PhoneNumber:  "+1234567890",
		Items: []OrderLineRequest{
			{PizzaID: 1, Quantity: 2},
			{PizzaID: 2, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if resp.TotalPrice.StringFixed(2) != "41.97" {
		t.Fatalf("total = %s, want 41.97", resp.TotalPrice.StringFixed(2))
	}
	if len(resp.Items) != 2 {
		t.Fatalf("item count = %d, want 2", len(resp.Items))
	}
	if resp.Items[0].PizzaName != "Margherita" || resp.Items[0].ItemTotal.StringFixed(2) != "25.98" {
		t.Fatalf("unexpected first item: %+v", resp.Items[0])
	}
	if resp.ID == 0 {
		t.Fatal("order id must be assigned")
	}
	if got := fx.publisher.published(); len(got) != 1 || got[0] != "order.created" {
		t.Fatalf("published events = %v, want [order.created]", got)
	}
}

func TestCreateOrderUnknownPizzaFailsWholeOrder(t *testing.T) {
	t.Parallel()
	fx := newOrderFixture(t)

	_, err := fx.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerName: "Jane Smith",
		PhoneNumber:  "+1234567890",
		Items: []OrderLineRequest{
			{PizzaID: 1, Quantity: 1},
			{PizzaID: 99, Quantity: 1},
		},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	var errs domain.ValidationErrors
	if !errors.As(err, &errs) || errs[0].Field != "items[1].pizza_id" {
		t.Fatalf("expected failure on items[1].pizza_id, got %v", err)
	}
	if len(fx.orders.orders) != 0 {
		t.Fatal("no order may persist when any line is unresolvable")
	}
	if len(fx.publisher.published()) != 0 {
		t.Fatal("no event may publish for a rejected order")
	}
}

func TestCreateOrderCeilingRejectsAndPersistsNothing(t *testing.T) {
	t.Parallel()
	fx := newOrderFixture(t)

	// 40 x 12.99 = 519.60, above the 500.00 ceiling.
	_, err := fx.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerName: "Jane Smith",
		PhoneNumber:  "+1234567890",
		Items:        []OrderLineRequest{{PizzaID: 1, Quantity: 40}},
	})
	var ruleErr *domain.BusinessRuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("expected BusinessRuleError, got %v", err)
	}
	if ruleErr.Actual.StringFixed(2) != "519.60" {
		t.Fatalf("actual = %s, want 519.60", ruleErr.Actual.StringFixed(2))
	}
	if len(fx.orders.orders) != 0 {
		t.Fatal("a ceiling-rejected order must not persist")
	}
}

func TestCreateOrderValidationRunsBeforeCatalog(t *testing.T) {
	t.Parallel()
	pizzas := &fakePizzaRepo{err: errors.New("catalog must not be touched")}
	service := NewOrderService(OrderServiceDeps{
		Pizzas:  pizzas,
		Orders:  &fakeOrderRepo{},
		Ceiling: decimal.RequireFromString("500.00"),
	})

	_, err := service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerName: "",
		PhoneNumber:  "bad",
		Items:        nil,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestCreateOrderPersistenceFailureSurfaces(t *testing.T) {
	t.Parallel()
	pizzas := &fakePizzaRepo{pizzas: map[int64]domain.Pizza{
		1: {ID: 1, Name: "Margherita", Price: decimal.RequireFromString("12.99")},
	}}
	orders := &fakeOrderRepo{err: domain.ErrPersistence}
	publisher := &recordingPublisher{}
	service := NewOrderService(OrderServiceDeps{
		Pizzas:    pizzas,
		Orders:    orders,
		Publisher: publisher,
		Ceiling:   decimal.RequireFromString("500.00"),
	})

	_, err := service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerName: "Jane Smith",
		PhoneNumber:  "+1234567890",
		Items:        []OrderLineRequest{{PizzaID: 1, Quantity: 1}},
	})
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected persistence failure, got %v", err)
	}
	if len(publisher.published()) != 0 {
		t.Fatal("no event may publish when persistence fails")
	}
}

func TestGetOrderNotFound(t *testing.T) {
	t.Parallel()
	fx := newOrderFixture(t)

	_, err := fx.service.GetOrder(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	t.Parallel()
	fx := newOrderFixture(t)

	for i := 0; i < 3; i++ {
		_, err := fx.service.CreateOrder(context.Background(), CreateOrderRequest{
			CustomerName: "Jane Smith",
			PhoneNumber:  "+1234567890",
			Items:        []OrderLineRequest{{PizzaID: 1, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
	}

	list, err := fx.service.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("order count = %d, want 3", len(list))
	}
	if list[0].ID != 3 || list[2].ID != 1 {
		t.Fatalf("orders not newest first: %d, %d, %d", list[0].ID, list[1].ID, list[2].ID)
	}
}
