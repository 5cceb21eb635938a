package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
)

type OrderLineRequest struct {
	PizzaID  int64 `json:"pizza_id"`
	Quantity int   `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	PhoneNumber  string             `json:"phone_number"`
	Items        []OrderLineRequest `json:"items"`
}

type OrderItemResponse struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	PizzaID   int64           `json:"pizza_id"`
	PizzaName string          `json:"pizza_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ItemTotal decimal.Decimal `json:"item_total"`
}

type OrderResponse struct {
	ID           int64               `json:"id"`
	CustomerName string              `json:"customer_name"`
	PhoneNumber  string              `json:"phone_number"`
	TotalPrice   decimal.Decimal     `json:"total_price"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Items        []OrderItemResponse `json:"items"`
}

type PizzaResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Ingredients string          `json:"ingredients"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string    `json:"session_id"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatMessageResponse struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatHistoryResponse struct {
	SessionID string                `json:"session_id"`
	History   []ChatMessageResponse `json:"history"`
}

type ChatHealthResponse struct {
	ModelReady     bool `json:"model_ready"`
	Degraded       bool `json:"degraded"`
	ActiveSessions int  `json:"active_sessions"`
}

type ChatStatsResponse struct {
	ActiveSessions int  `json:"active_sessions"`
	TotalMessages  int  `json:"total_messages"`
	FallbackMode   bool `json:"fallback_mode"`
}

func toOrderResponse(order domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			OrderID:   item.OrderID,
			PizzaID:   item.PizzaID,
			PizzaName: item.PizzaName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			ItemTotal: item.Total(),
		})
	}
	return OrderResponse{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		PhoneNumber:  order.PhoneNumber,
		TotalPrice:   order.TotalPrice,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
		Items:        items,
	}
}

func toPizzaResponse(pizza domain.Pizza) PizzaResponse {
	return PizzaResponse{
		ID:          pizza.ID,
		Name:        pizza.Name,
		Ingredients: pizza.Ingredients,
		Price:       pizza.Price,
		Image:       pizza.Image,
	}
}
