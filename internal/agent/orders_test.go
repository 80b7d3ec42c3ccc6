package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	ordersdomain "github.com/smallbiznis/supportly/internal/orders/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrders struct {
	recent  *ordersdomain.RecentOrders
	details *ordersdomain.OrderDetails
	cancel  *ordersdomain.CancelResult
	err     error

	orderID string
}

func (f *fakeOrders) RecentOrders(ctx context.Context, customerID string, limit int) (*ordersdomain.RecentOrders, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.recent == nil {
		return &ordersdomain.RecentOrders{CustomerID: customerID, Limit: limit}, nil
	}
	return f.recent, nil
}

func (f *fakeOrders) GetOrder(ctx context.Context, customerID, orderID string) (*ordersdomain.OrderDetails, error) {
	f.orderID = orderID
	if f.err != nil {
		return nil, f.err
	}
	if f.details == nil {
		return nil, ordersdomain.ErrNotFound
	}
	return f.details, nil
}

func (f *fakeOrders) CancelOrder(ctx context.Context, customerID, orderID string) (*ordersdomain.CancelResult, error) {
	f.orderID = orderID
	if f.err != nil {
		return nil, f.err
	}
	if f.cancel == nil {
		return nil, ordersdomain.ErrNotFound
	}
	return f.cancel, nil
}

func newTestOrdersAgent(orders *fakeOrders) *OrdersAgent {
	return NewOrdersAgent(Params{Log: zap.NewNop(), Orders: orders})
}

var orderDate = time.Date(2026, 2, 24, 12, 0, 0, 0, time.UTC)

func TestOrdersAgentRecent(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		res, err := newTestOrdersAgent(&fakeOrders{}).Recent(ctx, "CUST-404", 5)
		require.NoError(t, err)
		assert.Equal(t, "No orders found for customer CUST-404.", res.Response)
	})

	t.Run("more than shown", func(t *testing.T) {
		orders := &fakeOrders{recent: &ordersdomain.RecentOrders{
			CustomerID: "CUST-002",
			Total:      4,
			Limit:      1,
			Orders: []ordersdomain.Order{{
				ID:        "ORD-107",
				Status:    ordersdomain.StatusProcessing,
				Total:     299.98,
				OrderedAt: orderDate,
				Items: []ordersdomain.OrderItem{
					{ProductName: "Dr. Martens 1460", Quantity: 2, UnitPrice: 149.99},
				},
			}},
		}}

		res, err := newTestOrdersAgent(orders).Recent(ctx, "CUST-002", 1)
		require.NoError(t, err)
		assert.Equal(t, "Found 4 orders for customer CUST-002. Here are the 1 most recent:\n\n"+
			"Order ID: ORD-107\n"+
			"Date: 2026-02-24\n"+
			"Status: Processing\n"+
			"Items: Dr. Martens 1460\n"+
			"Total: $299.98\n\n"+
			"There are 3 more orders not shown.", res.Response)
		assert.Same(t, orders.recent, res.Data)
	})

	t.Run("failure", func(t *testing.T) {
		_, err := newTestOrdersAgent(&fakeOrders{err: errors.New("db down")}).Recent(ctx, "CUST-001", 5)
		assert.EqualError(t, err, "db down")
	})
}

func TestOrdersAgentDetails(t *testing.T) {
	ctx := context.Background()
	address := "456 Oak Ave, Somewhere, USA"
	orders := &fakeOrders{details: &ordersdomain.OrderDetails{
		Order: ordersdomain.Order{
			ID:        "ORD-104",
			Status:    ordersdomain.StatusShipped,
			Total:     129.98,
			OrderedAt: orderDate,
			Items: []ordersdomain.OrderItem{
				{ProductName: "Converse Chuck Taylor All Star", Quantity: 1, UnitPrice: 59.99},
				{ProductName: "Vans Old Skool", Quantity: 1, UnitPrice: 69.99},
			},
		},
		Customer: ordersdomain.Customer{ID: "CUST-002", Name: "Jane Doe", Email: "jane.doe@example.com", Address: &address},
	}}

	res, err := newTestOrdersAgent(orders).Details(ctx, "CUST-002", " ord-104")
	require.NoError(t, err)
	assert.Equal(t, "ORD-104", orders.orderID)
	assert.Equal(t, "Order Details for ORD-104:\n\n"+
		"Date: 2026-02-24\n"+
		"Status: Shipped\n"+
		"Customer: Jane Doe (ID: CUST-002)\n"+
		"Email: jane.doe@example.com\n"+
		"Delivery Address: 456 Oak Ave, Somewhere, USA\n\n"+
		"Items:\n"+
		"- Converse Chuck Taylor All Star (Qty: 1) - $59.99 each\n"+
		"- Vans Old Skool (Qty: 1) - $69.99 each\n"+
		"\nTotal: $129.98", res.Response)

	res, err = newTestOrdersAgent(&fakeOrders{}).Details(ctx, "CUST-001", "ORD-104")
	require.NoError(t, err)
	assert.Nil(t, res.Data)
	assert.Equal(t, "Order ORD-104 not found for customer CUST-001.", res.Response)
}

func TestOrdersAgentCancel(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name   string
		result ordersdomain.CancelResult
		want   string
	}{
		{
			name:   "cancelled",
			result: ordersdomain.CancelResult{Order: ordersdomain.Order{ID: "ORD-107", Status: ordersdomain.StatusCancelled}, Cancelled: true},
			want:   "Order ORD-107 has been successfully cancelled. Your refund will be processed within 3-5 business days.",
		},
		{
			name:   "shipped",
			result: ordersdomain.CancelResult{Order: ordersdomain.Order{ID: "ORD-104", Status: ordersdomain.StatusShipped}},
			want:   "Order ORD-104 has already been shipped. Please initiate a return once you receive it.",
		},
		{
			name:   "delivered",
			result: ordersdomain.CancelResult{Order: ordersdomain.Order{ID: "ORD-101", Status: ordersdomain.StatusDelivered}},
			want:   "Order ORD-101 has already been delivered. Please initiate a return process instead of cancellation.",
		},
		{
			name:   "already cancelled",
			result: ordersdomain.CancelResult{Order: ordersdomain.Order{ID: "ORD-110", Status: ordersdomain.StatusCancelled}},
			want:   "Order ORD-110 has already been cancelled.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.result
			res, err := newTestOrdersAgent(&fakeOrders{cancel: &result}).Cancel(ctx, "CUST-002", tc.result.Order.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Response)
		})
	}

	res, err := newTestOrdersAgent(&fakeOrders{}).Cancel(ctx, "CUST-001", "ord-999")
	require.NoError(t, err)
	assert.Equal(t, "Order ORD-999 not found for customer CUST-001.", res.Response)
}
