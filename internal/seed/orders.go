package seed

import (
	"fmt"

	ordersdomain "github.com/smallbiznis/supportly/internal/orders/domain"
)

type customerSeed struct {
	id      string
	name    string
	email   string
	address string
}

var customerSeeds = []customerSeed{
	{"CUST-001", "John Smith", "john.smith@example.com", "123 Main St, Anytown, USA"},
	{"CUST-002", "Jane Doe", "jane.doe@example.com", "456 Oak Ave, Somewhere, USA"},
	{"CUST-003", "Bob Johnson", "bob.johnson@example.com", "789 Pine Rd, Elsewhere, USA"},
}

type orderProduct struct {
	name  string
	price float64
}

var orderProducts = map[string]orderProduct{
	"PROD-001": {"Nike Air Max 90", 129.99},
	"PROD-002": {"Adidas Ultraboost", 179.99},
	"PROD-003": {"Converse Chuck Taylor All Star", 59.99},
	"PROD-004": {"Timberland Premium 6-Inch", 199.99},
	"PROD-005": {"Jordan 1 Retro High", 169.99},
	"PROD-006": {"Birkenstock Arizona", 99.99},
	"PROD-007": {"Dr. Martens 1460", 149.99},
	"PROD-008": {"New Balance 574", 89.99},
	"PROD-009": {"Vans Old Skool", 69.99},
	"PROD-010": {"Red Wing Iron Ranger", 329.99},
}

type orderSeed struct {
	id       string
	customer string
	daysAgo  int
	status   string
	products []string
}

var orderSeeds = []orderSeed{
	{"ORD-101", "CUST-001", 5, ordersdomain.StatusDelivered, []string{"PROD-001", "PROD-008"}},
	{"ORD-102", "CUST-001", 12, ordersdomain.StatusDelivered, []string{"PROD-002"}},
	{"ORD-103", "CUST-001", 25, ordersdomain.StatusDelivered, []string{"PROD-005"}},
	{"ORD-104", "CUST-002", 3, ordersdomain.StatusShipped, []string{"PROD-003", "PROD-009"}},
	{"ORD-105", "CUST-002", 10, ordersdomain.StatusDelivered, []string{"PROD-006"}},
	{"ORD-106", "CUST-002", 2, ordersdomain.StatusProcessing, []string{"PROD-002"}},
	{"ORD-107", "CUST-002", 1, ordersdomain.StatusProcessing, []string{"PROD-007"}},
	{"ORD-108", "CUST-003", 7, ordersdomain.StatusDelivered, []string{"PROD-004"}},
	{"ORD-109", "CUST-003", 15, ordersdomain.StatusDelivered, []string{"PROD-010"}},
	{"ORD-110", "CUST-003", 0, ordersdomain.StatusCancelled, []string{"PROD-004", "PROD-010"}},
}

func (g *generator) customers() []ordersdomain.Customer {
	out := make([]ordersdomain.Customer, 0, len(customerSeeds))
	for _, c := range customerSeeds {
		out = append(out, ordersdomain.Customer{
			ID:        c.id,
			Name:      c.name,
			Email:     c.email,
			Address:   ptr(c.address),
			CreatedAt: g.now,
			UpdatedAt: g.now,
		})
	}
	return out
}

// orders places every fixture order relative to the reference time, one or
// two of each product per order.
func (g *generator) orders() ([]ordersdomain.Order, []ordersdomain.OrderItem) {
	orders := make([]ordersdomain.Order, 0, len(orderSeeds))
	var items []ordersdomain.OrderItem
	for _, o := range orderSeeds {
		orderedAt := g.now.AddDate(0, 0, -o.daysAgo)
		total := 0.0
		for _, code := range o.products {
			product, ok := orderProducts[code]
			if !ok {
				panic(fmt.Sprintf("seed: order %s references unknown product %s", o.id, code))
			}
			qty := g.between(1, 2)
			items = append(items, ordersdomain.OrderItem{
				ID:          int64(len(items) + 1),
				OrderID:     o.id,
				ProductCode: code,
				ProductName: product.name,
				Quantity:    qty,
				UnitPrice:   product.price,
				CreatedAt:   orderedAt,
			})
			total += product.price * float64(qty)
		}
		orders = append(orders, ordersdomain.Order{
			ID:         o.id,
			CustomerID: o.customer,
			Status:     o.status,
			Total:      round2(total),
			OrderedAt:  orderedAt,
			CreatedAt:  orderedAt,
			UpdatedAt:  orderedAt,
		})
	}
	return orders, items
}
