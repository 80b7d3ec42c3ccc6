package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository reads are scoped to one customer.
type Repository interface {
	FindCustomer(ctx context.Context, db *gorm.DB, customerID string) (*Customer, error)
	CountOrders(ctx context.Context, db *gorm.DB, customerID string) (int64, error)
	ListRecentOrders(ctx context.Context, db *gorm.DB, customerID string, limit int) ([]Order, error)
	FindOrder(ctx context.Context, db *gorm.DB, customerID, orderID string) (*Order, error)
	ListOrderItems(ctx context.Context, db *gorm.DB, orderIDs []string) ([]OrderItem, error)
	// CancelProcessingOrder reports false when the order was not Processing.
	CancelProcessingOrder(ctx context.Context, db *gorm.DB, customerID, orderID string, at time.Time) (bool, error)
}
