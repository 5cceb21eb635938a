package postgres

import "github.com/noorulain276775/pizza-delivery-app/internal/domain"

func toDomainPizza(m pizzaModel) domain.Pizza {
	return domain.Pizza{
		ID:          m.ID,
		Name:        m.Name,
		Ingredients: m.Ingredients,
		Price:       m.Price,
		Image:       m.Image,
	}
}

func toDomainOrder(m orderModel) domain.Order {
	order := domain.Order{
		ID:           m.ID,
		CustomerName: m.CustomerName,
		PhoneNumber:  m.PhoneNumber,
		TotalPrice:   m.TotalPrice,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	for _, item := range m.Items {
		name := ""
		if item.Pizza != nil {
			name = item.Pizza.Name
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			PizzaID:   item.PizzaID,
			PizzaName: name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return order
}
