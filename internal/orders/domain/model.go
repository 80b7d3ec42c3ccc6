package domain

import "time"

const (
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

type Customer struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey"`
	Name      string    `json:"name" gorm:"column:name"`
	Email     string    `json:"email" gorm:"column:email"`
	Address   *string   `json:"address,omitempty" gorm:"column:address"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Customer) TableName() string { return "customers" }

type Order struct {
	ID         string      `json:"id" gorm:"column:id;primaryKey"`
	CustomerID string      `json:"customer_id" gorm:"column:customer_id"`
	Status     string      `json:"status" gorm:"column:status"`
	Total      float64     `json:"total" gorm:"column:total"`
	OrderedAt  time.Time   `json:"ordered_at" gorm:"column:ordered_at"`
	CreatedAt  time.Time   `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"column:updated_at"`
	Items      []OrderItem `json:"items,omitempty" gorm:"-"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots the product name and unit price at purchase time.
type OrderItem struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey"`
	OrderID     string    `json:"order_id" gorm:"column:order_id"`
	ProductCode string    `json:"product_code" gorm:"column:product_code"`
	ProductName string    `json:"product_name" gorm:"column:product_name"`
	Quantity    int       `json:"quantity" gorm:"column:quantity"`
	UnitPrice   float64   `json:"unit_price" gorm:"column:unit_price"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (OrderItem) TableName() string { return "order_items" }

// RecentOrders is one page of a customer's newest orders. Total counts every
// order of the customer.
type RecentOrders struct {
	CustomerID string  `json:"customer_id"`
	Total      int64   `json:"total"`
	Limit      int     `json:"limit"`
	Orders     []Order `json:"orders"`
}

type OrderDetails struct {
	Order    Order    `json:"order"`
	Customer Customer `json:"customer"`
}

// CancelResult reports the order after a cancellation attempt. Cancelled is
// false when the order was past the Processing stage; Order.Status then
// explains why.
type CancelResult struct {
	Order     Order `json:"order"`
	Cancelled bool  `json:"cancelled"`
}
