package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type pizzaModel struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	Name        string          `gorm:"column:name"`
	Ingredients string          `gorm:"column:ingredients"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	Image       string          `gorm:"column:image"`
}

func (pizzaModel) TableName() string { return "pizza" }

type orderModel struct {
	ID           int64            `gorm:"column:id;primaryKey"`
	CustomerName string           `gorm:"column:customer_name"`
	PhoneNumber  string           `gorm:"column:phone_number"`
	TotalPrice   decimal.Decimal  `gorm:"column:total_price;type:numeric(10,2)"`
	CreatedAt    time.Time        `gorm:"column:created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at"`
	Items        []orderItemModel `gorm:"foreignKey:OrderID"`
}

func (orderModel) TableName() string { return "orders" }

type orderItemModel struct {
	ID        int64           `gorm:"column:id;primaryKey"`
	OrderID   int64           `gorm:"column:order_id"`
	PizzaID   int64           `gorm:"column:pizza_id"`
	Quantity  int             `gorm:"column:quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2)"`
	Pizza     *pizzaModel     `gorm:"foreignKey:PizzaID"`
}

func (orderItemModel) TableName() string { return "order_item" }
