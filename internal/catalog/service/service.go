package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/supportly/internal/cache"
	"github.com/smallbiznis/supportly/internal/catalog/domain"
	"github.com/smallbiznis/supportly/internal/clock"
	"github.com/smallbiznis/supportly/internal/observability/metrics"
	"github.com/smallbiznis/supportly/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	latestReviewsLimit   = 5
	categoryProductLimit = 10
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Repo  domain.Repository
	Clock clock.Clock           `optional:"true"`
	Cache cache.CatalogCache    `optional:"true"`
	Store *metrics.StoreMetrics `optional:"true"`
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	clock clock.Clock
	cache cache.CatalogCache
	store *metrics.StoreMetrics
}

func New(p Params) domain.Service {
	svc := &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		repo:  p.Repo,
		clock: p.Clock,
		cache: p.Cache,
		store: p.Store,
	}
	if svc.clock == nil {
		svc.clock = clock.NewSystemClock()
	}
	if svc.cache == nil {
		svc.cache = cache.NewCatalogCache()
	}
	return svc
}

func (s *Service) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.SearchResult, error) {
	if filter.PriceMin != nil && *filter.PriceMin < 0 {
		return nil, domain.ErrInvalidSearchFilter
	}
	if filter.PriceMax != nil && *filter.PriceMax < 0 {
		return nil, domain.ErrInvalidSearchFilter
	}
	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		return nil, domain.ErrInvalidSearchFilter
	}

	page := pagination.Normalize(filter.Limit, filter.Offset)
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Size = strings.TrimSpace(filter.Size)
	filter.Color = strings.TrimSpace(filter.Color)
	filter.Limit = page.Limit
	filter.Offset = page.Offset

	start := time.Now()
	items, err := s.repo.SearchProducts(ctx, s.db, filter)
	s.store.ObserveQuery("search_products", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.SearchResult{}
	}
	return items, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.ProductDetail, error) {
	productID, err := parseProductID(id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	item, err := s.repo.FindProductByID(ctx, s.db, productID)
	s.store.ObserveQuery("find_product", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// GetProductDetails loads the product, its inventory, reviews and related
// products concurrently.
func (s *Service) GetProductDetails(ctx context.Context, id string) (*domain.ProductDetails, error) {
	productID, err := parseProductID(id)
	if err != nil {
		return nil, err
	}

	var (
		product   *domain.ProductDetail
		inventory []domain.Inventory
		reviews   []domain.Review
		aggregate *domain.ReviewAggregate
		related   []domain.RelatedProduct
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		product, err = s.repo.FindProductByID(gctx, s.db, productID)
		return err
	})
	g.Go(func() error {
		var err error
		inventory, err = s.repo.ListInventory(gctx, s.db, productID)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = s.repo.ListReviews(gctx, s.db, productID, latestReviewsLimit)
		if err != nil {
			return err
		}
		aggregate, err = s.repo.ReviewAggregate(gctx, s.db, productID)
		return err
	})
	g.Go(func() error {
		var err error
		related, err = s.repo.ListRelated(gctx, s.db, productID, "")
		return err
	})
	err = g.Wait()
	s.store.ObserveQuery("product_details", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	details := &domain.ProductDetails{
		ProductDetail:   *product,
		Inventory:       inventory,
		RelatedProducts: related,
		Reviews: domain.ReviewSummary{
			Latest: reviews,
		},
	}
	if details.Inventory == nil {
		details.Inventory = []domain.Inventory{}
	}
	if details.RelatedProducts == nil {
		details.RelatedProducts = []domain.RelatedProduct{}
	}
	if details.Reviews.Latest == nil {
		details.Reviews.Latest = []domain.Review{}
	}
	if aggregate != nil {
		details.Reviews.Count = int(aggregate.Count)
		details.Reviews.AverageRating = roundTo(aggregate.AvgRating, 1)
	}
	return details, nil
}

func (s *Service) CheckInventory(ctx context.Context, id, size, color string) (*domain.Inventory, error) {
	productID, err := parseProductID(id)
	if err != nil {
		return nil, err
	}
	size = strings.TrimSpace(size)
	if size == "" {
		return nil, domain.ErrInvalidSize
	}
	color = strings.TrimSpace(color)
	if color == "" {
		return nil, domain.ErrInvalidColor
	}

	start := time.Now()
	item, err := s.repo.FindInventory(ctx, s.db, productID, size, color)
	s.store.ObserveQuery("find_inventory", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// GetCategoryProducts returns an empty list when the category does not exist.
func (s *Service) GetCategoryProducts(ctx context.Context, req domain.CategoryProductsRequest) ([]domain.CategoryProduct, error) {
	category, err := s.FindCategory(ctx, req.CategoryName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.CategoryProduct{}, nil
		}
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = categoryProductLimit
	}
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}

	start := time.Now()
	items, err := s.repo.ListCategoryProducts(ctx, s.db, category.ID, req.IncludeSubcategories, limit)
	s.store.ObserveQuery("category_products", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.CategoryProduct{}
	}
	return items, nil
}

func (s *Service) FindCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidCategory
	}
	if cached, ok := s.cache.GetCategory(name); ok {
		return cached, nil
	}

	start := time.Now()
	category, err := s.repo.FindCategoryByName(ctx, s.db, name)
	s.store.ObserveQuery("find_category", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	s.cache.SetCategory(name, category)
	return category, nil
}

func (s *Service) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	if cached, ok := s.cache.GetBrands(); ok {
		return cached, nil
	}
	items, err := s.repo.ListBrands(ctx, s.db)
	if err != nil {
		return nil, err
	}
	s.cache.SetBrands(items)
	return items, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := s.cache.GetCategories(); ok {
		return cached, nil
	}
	items, err := s.repo.ListCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}
	s.cache.SetCategories(items)
	return items, nil
}

func (s *Service) RefreshSearchView(ctx context.Context) error {
	start := time.Now()
	err := s.repo.RefreshSearchView(ctx, s.db)
	s.store.ObserveQuery("refresh_search_view", time.Since(start), err)
	if err != nil {
		return err
	}
	s.store.IncViewRefresh()
	s.log.Info("product_search view refreshed", zap.Duration("elapsed", time.Since(start)))
	return nil
}

func parseProductID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", domain.ErrInvalidID
	}
	return parsed.String(), nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
