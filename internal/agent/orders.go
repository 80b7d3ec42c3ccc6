package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ordersdomain "github.com/smallbiznis/supportly/internal/orders/domain"
	"go.uber.org/zap"
)

const orderDateLayout = "2006-01-02"

// OrdersAgent answers order status, order details and cancellation requests
// for one customer.
type OrdersAgent struct {
	orders ordersdomain.Service
	log    *zap.Logger
}

func NewOrdersAgent(p Params) *OrdersAgent {
	return &OrdersAgent{
		orders: p.Orders,
		log:    p.Log.Named("agent.orders"),
	}
}

func (a *OrdersAgent) Recent(ctx context.Context, customerID string, limit int) (*Result[*ordersdomain.RecentOrders], error) {
	recent, err := a.orders.RecentOrders(ctx, customerID, limit)
	if err != nil {
		return nil, err
	}
	return &Result[*ordersdomain.RecentOrders]{
		Data:     recent,
		Response: formatRecentOrders(recent),
	}, nil
}

// Details answers with the order, its items and the delivery contact. An
// order of another customer reads as not found.
func (a *OrdersAgent) Details(ctx context.Context, customerID, orderID string) (*Result[*ordersdomain.OrderDetails], error) {
	orderID = ordersdomain.NormalizeOrderID(orderID)
	details, err := a.orders.GetOrder(ctx, customerID, orderID)
	if err != nil {
		if errors.Is(err, ordersdomain.ErrNotFound) {
			return &Result[*ordersdomain.OrderDetails]{Response: orderNotFoundText(orderID, customerID)}, nil
		}
		return nil, err
	}
	return &Result[*ordersdomain.OrderDetails]{
		Data:     details,
		Response: formatOrderDetails(details),
	}, nil
}

func (a *OrdersAgent) Cancel(ctx context.Context, customerID, orderID string) (*Result[*ordersdomain.CancelResult], error) {
	orderID = ordersdomain.NormalizeOrderID(orderID)
	result, err := a.orders.CancelOrder(ctx, customerID, orderID)
	if err != nil {
		if errors.Is(err, ordersdomain.ErrNotFound) {
			return &Result[*ordersdomain.CancelResult]{Response: orderNotFoundText(orderID, customerID)}, nil
		}
		return nil, err
	}
	if !result.Cancelled {
		a.log.Debug("order not cancellable",
			zap.String("order_id", result.Order.ID),
			zap.String("status", result.Order.Status),
		)
	}
	return &Result[*ordersdomain.CancelResult]{
		Data:     result,
		Response: formatCancel(result),
	}, nil
}

func orderNotFoundText(orderID, customerID string) string {
	return fmt.Sprintf("Order %s not found for customer %s.", orderID, customerID)
}

func formatRecentOrders(recent *ordersdomain.RecentOrders) string {
	if len(recent.Orders) == 0 {
		return fmt.Sprintf("No orders found for customer %s.", recent.CustomerID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d orders for customer %s. Here are the %d most recent:\n\n", recent.Total, recent.CustomerID, len(recent.Orders))
	for _, order := range recent.Orders {
		names := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			names = append(names, item.ProductName)
		}
		fmt.Fprintf(&b, "Order ID: %s\n", order.ID)
		fmt.Fprintf(&b, "Date: %s\n", order.OrderedAt.Format(orderDateLayout))
		fmt.Fprintf(&b, "Status: %s\n", order.Status)
		fmt.Fprintf(&b, "Items: %s\n", strings.Join(names, ", "))
		fmt.Fprintf(&b, "Total: %s\n\n", money(order.Total))
	}
	if more := recent.Total - int64(recent.Limit); more > 0 {
		fmt.Fprintf(&b, "There are %d more orders not shown.", more)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatOrderDetails(details *ordersdomain.OrderDetails) string {
	order := details.Order
	customer := details.Customer
	address := ""
	if customer.Address != nil {
		address = *customer.Address
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order Details for %s:\n\n", order.ID)
	fmt.Fprintf(&b, "Date: %s\n", order.OrderedAt.Format(orderDateLayout))
	fmt.Fprintf(&b, "Status: %s\n", order.Status)
	fmt.Fprintf(&b, "Customer: %s (ID: %s)\n", customer.Name, customer.ID)
	fmt.Fprintf(&b, "Email: %s\n", customer.Email)
	fmt.Fprintf(&b, "Delivery Address: %s\n\n", address)
	b.WriteString("Items:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s (Qty: %d) - %s each\n", item.ProductName, item.Quantity, money(item.UnitPrice))
	}
	fmt.Fprintf(&b, "\nTotal: %s", money(order.Total))
	return b.String()
}

func formatCancel(result *ordersdomain.CancelResult) string {
	id := result.Order.ID
	if result.Cancelled {
		return fmt.Sprintf("Order %s has been successfully cancelled. Your refund will be processed within 3-5 business days.", id)
	}
	switch result.Order.Status {
	case ordersdomain.StatusShipped:
		return fmt.Sprintf("Order %s has already been shipped. Please initiate a return once you receive it.", id)
	case ordersdomain.StatusCancelled:
		return fmt.Sprintf("Order %s has already been cancelled.", id)
	default:
		return fmt.Sprintf("Order %s has already been delivered. Please initiate a return process instead of cancellation.", id)
	}
}
