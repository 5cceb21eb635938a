package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order and every item inside one transaction. A failure
// anywhere rolls the whole unit back; no partial order or partial line set is
// ever visible to readers.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	om := orderModel{
		CustomerName: order.CustomerName,
		PhoneNumber:  order.PhoneNumber,
		TotalPrice:   order.TotalPrice,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&om).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		items := make([]orderItemModel, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, orderItemModel{
				OrderID:   om.ID,
				PizzaID:   item.PizzaID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		for i := range order.Items {
			order.Items[i].ID = items[i].ID
			order.Items[i].OrderID = om.ID
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: create order: %v", domain.ErrPersistence, err)
	}

	order.ID = om.ID
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (domain.Order, error) {
	var m orderModel
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Pizza").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: get order: %v", domain.ErrPersistence, err)
	}
	return toDomainOrder(m), nil
}

func (r *OrderRepository) ListNewestFirst(ctx context.Context) ([]domain.Order, error) {
	var models []orderModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Pizza").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", domain.ErrPersistence, err)
	}
	out := make([]domain.Order, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainOrder(m))
	}
	return out, nil
}
