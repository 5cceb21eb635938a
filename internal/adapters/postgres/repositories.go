package postgres

import "gorm.io/gorm"

type Repositories struct {
	Pizzas *PizzaRepository
	Orders *OrderRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Pizzas: NewPizzaRepository(db),
		Orders: NewOrderRepository(db),
	}
}
