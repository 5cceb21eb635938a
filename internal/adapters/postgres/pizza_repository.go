package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
)

// PizzaRepository reads the seeded catalog. The table is read-mostly; no write
// path exists at runtime.
type PizzaRepository struct {
	db *gorm.DB
}

func NewPizzaRepository(db *gorm.DB) *PizzaRepository {
	return &PizzaRepository{db: db}
}

func (r *PizzaRepository) GetByID(ctx context.Context, id int64) (domain.Pizza, error) {
	var m pizzaModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Pizza{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Pizza{}, fmt.Errorf("%w: get pizza: %v", domain.ErrPersistence, err)
	}
	return toDomainPizza(m), nil
}

func (r *PizzaRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Pizza, error) {
	var models []pizzaModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: get pizzas: %v", domain.ErrPersistence, err)
	}
	out := make(map[int64]domain.Pizza, len(models))
	for _, m := range models {
		out[m.ID] = toDomainPizza(m)
	}
	return out, nil
}

func (r *PizzaRepository) List(ctx context.Context) ([]domain.Pizza, error) {
	var models []pizzaModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: list pizzas: %v", domain.ErrPersistence, err)
	}
	out := make([]domain.Pizza, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainPizza(m))
	}
	return out, nil
}
