package repository

import (
	"context"
	"time"

	"github.com/smallbiznis/supportly/internal/orders/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindCustomer(ctx context.Context, db *gorm.DB, customerID string) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, address, created_at, updated_at
		 FROM customers
		 WHERE id = ?`,
		customerID,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == "" {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) CountOrders(ctx context.Context, db *gorm.DB, customerID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM orders WHERE customer_id = ?`,
		customerID,
	).Scan(&count).Error
	return count, err
}

// ListRecentOrders returns the newest orders first.
func (r *repo) ListRecentOrders(ctx context.Context, db *gorm.DB, customerID string, limit int) ([]domain.Order, error) {
	var items []domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, status, total, ordered_at, created_at, updated_at
		 FROM orders
		 WHERE customer_id = ?
		 ORDER BY ordered_at DESC, id DESC
		 LIMIT ?`,
		customerID,
		limit,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindOrder(ctx context.Context, db *gorm.DB, customerID, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, status, total, ordered_at, created_at, updated_at
		 FROM orders
		 WHERE id = ? AND customer_id = ?`,
		orderID,
		customerID,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) ListOrderItems(ctx context.Context, db *gorm.DB, orderIDs []string) ([]domain.OrderItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var items []domain.OrderItem
	err := db.WithContext(ctx).Raw(
		`SELECT id, order_id, product_code, product_name, quantity, unit_price, created_at
		 FROM order_items
		 WHERE order_id IN ?
		 ORDER BY order_id, id`,
		orderIDs,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CancelProcessingOrder(ctx context.Context, db *gorm.DB, customerID, orderID string, at time.Time) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE orders
		 SET status = ?, updated_at = ?
		 WHERE id = ? AND customer_id = ? AND status = ?`,
		domain.StatusCancelled,
		at,
		orderID,
		customerID,
		domain.StatusProcessing,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
