package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/supportly/internal/clock"
	"github.com/smallbiznis/supportly/internal/orders/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Repo  domain.Repository
	Clock clock.Clock `optional:"true"`
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	clock clock.Clock
}

func New(p Params) domain.Service {
	svc := &Service{
		db:    p.DB,
		log:   p.Log.Named("orders.service"),
		repo:  p.Repo,
		clock: p.Clock,
	}
	if svc.clock == nil {
		svc.clock = clock.NewSystemClock()
	}
	return svc
}

func (s *Service) RecentOrders(ctx context.Context, customerID string, limit int) (*domain.RecentOrders, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, domain.ErrInvalidCustomer
	}
	switch {
	case limit <= 0:
		limit = domain.DefaultRecentLimit
	case limit > domain.MaxRecentLimit:
		limit = domain.MaxRecentLimit
	}

	var (
		total  int64
		orders []domain.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.CountOrders(gctx, s.db, customerID)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.repo.ListRecentOrders(gctx, s.db, customerID, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &domain.RecentOrders{
		CustomerID: customerID,
		Total:      total,
		Limit:      limit,
		Orders:     orders,
	}, nil
}

func (s *Service) GetOrder(ctx context.Context, customerID, orderID string) (*domain.OrderDetails, error) {
	order, err := s.findOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.FindCustomer(ctx, s.db, order.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	orders := []domain.Order{*order}
	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &domain.OrderDetails{Order: orders[0], Customer: *customer}, nil
}

// CancelOrder moves a Processing order to Cancelled. Orders in any other
// status are returned unchanged with Cancelled false.
func (s *Service) CancelOrder(ctx context.Context, customerID, orderID string) (*domain.CancelResult, error) {
	order, err := s.findOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusProcessing {
		return &domain.CancelResult{Order: *order}, nil
	}

	now := s.clock.Now()
	ok, err := s.repo.CancelProcessingOrder(ctx, s.db, order.CustomerID, order.ID, now)
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	if !ok {
		// The status changed between the read and the update.
		order, err = s.findOrder(ctx, customerID, orderID)
		if err != nil {
			return nil, err
		}
		return &domain.CancelResult{Order: *order}, nil
	}

	s.log.Info("order cancelled",
		zap.String("order_id", order.ID),
		zap.String("customer_id", order.CustomerID),
	)
	order.Status = domain.StatusCancelled
	order.UpdatedAt = now
	return &domain.CancelResult{Order: *order, Cancelled: true}, nil
}

func (s *Service) findOrder(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, domain.ErrInvalidCustomer
	}
	orderID = domain.NormalizeOrderID(orderID)
	if orderID == "" {
		return nil, domain.ErrInvalidOrderID
	}

	order, err := s.repo.FindOrder(ctx, s.db, customerID, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	items, err := s.repo.ListOrderItems(ctx, s.db, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}

	byOrder := make(map[string][]domain.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return nil
}
