package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
	"github.com/noorulain276775/pizza-delivery-app/internal/ports"
)

// OrderService orchestrates validate -> resolve -> price -> persist for
// customer orders. Persistence of an order and its items is one atomic unit;
// no partial order is ever observable.
type OrderService struct {
	pizzas    ports.PizzaRepository
	orders    ports.OrderRepository
	publisher ports.EventPublisher
	ceiling   decimal.Decimal
	logger    *slog.Logger
	nowFn     func() time.Time
}

type OrderServiceDeps struct {
	Pizzas    ports.PizzaRepository
	Orders    ports.OrderRepository
	Publisher ports.EventPublisher
	// Ceiling is the maximum permitted order total (business rule).
	Ceiling decimal.Decimal
	Logger  *slog.Logger
}

func NewOrderService(deps OrderServiceDeps) *OrderService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{
		pizzas:    deps.Pizzas,
		orders:    deps.Orders,
		publisher: deps.Publisher,
		ceiling:   deps.Ceiling,
		logger:    logger.With("module", "orders", "layer", "application"),
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder validates, prices and persists a submission. The computed total
// is always derived server-side from unit prices captured at order time; the
// caller's numbers are never trusted.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error) {
	lines := make([]domain.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, domain.OrderLine{PizzaID: item.PizzaID, Quantity: item.Quantity})
	}
	if err := domain.ValidateOrderInput(req.CustomerName, req.PhoneNumber, lines); err != nil {
		return OrderResponse{}, err
	}

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.PizzaID)
	}
	resolved, err := s.pizzas.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.ErrorContext(ctx, "catalog resolution failed", "operation", "create_order", "outcome", "failure", "error", err.Error())
		return OrderResponse{}, fmt.Errorf("resolve catalog: %w", err)
	}

	var missing domain.ValidationErrors
	priced := make([]domain.PricedLine, 0, len(lines))
	for idx, line := range lines {
		pizza, ok := resolved[line.PizzaID]
		if !ok {
			missing = append(missing, &domain.ValidationError{
				Field:  fmt.Sprintf("items[%d].pizza_id", idx),
				Reason: fmt.Sprintf("pizza %d does not exist", line.PizzaID),
			})
			continue
		}
		priced = append(priced, domain.PricedLine{PizzaID: line.PizzaID, Quantity: line.Quantity, UnitPrice: pizza.Price})
	}
	// No partial orders: a single unresolvable line fails the whole submission.
	if len(missing) > 0 {
		return OrderResponse{}, missing
	}

	total, _ := domain.PriceLines(priced)
	if err := domain.CheckOrderCeiling(total, s.ceiling); err != nil {
		return OrderResponse{}, err
	}

	now := s.nowFn()
	order := domain.Order{
		CustomerName: strings.TrimSpace(req.CustomerName),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		TotalPrice:   total,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, line := range priced {
		order.Items = append(order.Items, domain.OrderItem{
			PizzaID:   line.PizzaID,
			PizzaName: resolved[line.PizzaID].Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	if err := s.orders.Create(ctx, &order); err != nil {
		s.logger.ErrorContext(ctx, "order persistence failed", "operation", "create_order", "outcome", "failure", "error", err.Error())
		return OrderResponse{}, fmt.Errorf("create order: %w", err)
	}

	s.publishOrderCreated(ctx, order)
	s.logger.InfoContext(ctx, "order created",
		"operation", "create_order",
		"outcome", "success",
		"order_id", order.ID,
		"item_count", len(order.Items),
		"total_price", order.TotalPrice.StringFixed(2),
	)
	return toOrderResponse(order), nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (OrderResponse, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return toOrderResponse(order), nil
}

// ListOrders returns all orders newest first. The ordering is contractual.
func (s *OrderService) ListOrders(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orders.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	return out, nil
}

func (s *OrderService) ListPizzas(ctx context.Context) ([]PizzaResponse, error) {
	pizzas, err := s.pizzas.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pizzas: %w", err)
	}
	out := make([]PizzaResponse, 0, len(pizzas))
	for _, pizza := range pizzas {
		out = append(out, toPizzaResponse(pizza))
	}
	return out, nil
}

func (s *OrderService) GetPizza(ctx context.Context, id int64) (PizzaResponse, error) {
	pizza, err := s.pizzas.GetByID(ctx, id)
	if err != nil {
		return PizzaResponse{}, fmt.Errorf("get pizza %d: %w", id, err)
	}
	return toPizzaResponse(pizza), nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order domain.Order) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"order_id":      order.ID,
		"customer_name": order.CustomerName,
		"total_price":   order.TotalPrice,
		"item_count":    len(order.Items),
		"created_at":    order.CreatedAt,
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, "order.created", payload, strconv.FormatInt(order.ID, 10)); err != nil {
		// Best effort: the order is already durable, downstream consumers catch up elsewhere.
		s.logger.WarnContext(ctx, "order event publish failed", "operation", "publish_order_created", "outcome", "failure", "order_id", order.ID, "error", err.Error())
	}
}
