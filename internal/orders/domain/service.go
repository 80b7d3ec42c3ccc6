package domain

import (
	"context"
	"errors"
	"strings"
)

type Service interface {
	RecentOrders(ctx context.Context, customerID string, limit int) (*RecentOrders, error)
	GetOrder(ctx context.Context, customerID, orderID string) (*OrderDetails, error)
	CancelOrder(ctx context.Context, customerID, orderID string) (*CancelResult, error)
}

const (
	DefaultRecentLimit = 5
	MaxRecentLimit     = 20
)

var (
	ErrNotFound        = errors.New("not_found")
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidOrderID  = errors.New("invalid_order_id")
)

// NormalizeOrderID upper-cases an order reference, so "ord-101" and
// "ORD-101" name the same order.
func NormalizeOrderID(orderID string) string {
	return strings.ToUpper(strings.TrimSpace(orderID))
}
