package service

import (
	"context"
	"sort"
	"time"

	"github.com/smallbiznis/supportly/internal/catalog/domain"
)

const (
	// reportSampleSize bounds the products that get size and color detail.
	reportSampleSize      = 5
	mostDiscountedDefault = 5
	mostDiscountedMax     = 50
)

func (s *Service) InventoryReport(ctx context.Context, filter domain.InventoryReportFilter) (*domain.InventoryReport, error) {
	start := time.Now()
	report, err := s.inventoryReport(ctx, filter)
	s.store.ObserveQuery("inventory_report", time.Since(start), err)
	return report, err
}

func (s *Service) inventoryReport(ctx context.Context, filter domain.InventoryReportFilter) (*domain.InventoryReport, error) {
	totals, err := s.repo.InventoryTotals(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	brands, err := s.repo.InventoryByBrand(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.InventoryByCategory(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.InventoryProducts(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	for i := range products {
		p := &products[i]
		p.DiscountPercentage = roundTo(domain.DiscountPercent(p.Price, p.SalePrice, p.IsOnSale), 2)
		p.AvailableSizes = []string{}
		p.AvailableColors = []string{}
		if i >= reportSampleSize {
			continue
		}
		items, err := s.repo.ListInventory(ctx, s.db, p.ID)
		if err != nil {
			return nil, err
		}
		p.AvailableSizes, p.AvailableColors = availableVariants(items)
	}

	report := &domain.InventoryReport{
		InventorySummary: *totals,
		BrandSummary:     nonNilGroups(brands),
		CategorySummary:  nonNilGroups(categories),
		Products:         products,
	}
	if report.Products == nil {
		report.Products = []domain.ProductInventory{}
	}
	return report, nil
}

func (s *Service) PriceAnalysis(ctx context.Context, filter domain.PriceAnalysisFilter) (*domain.PriceAnalysis, error) {
	if filter.MinDiscountPercent < 0 || filter.MinDiscountPercent > 100 {
		return nil, domain.ErrInvalidSearchFilter
	}

	start := time.Now()
	analysis, err := s.priceAnalysis(ctx, filter)
	s.store.ObserveQuery("price_analysis", time.Since(start), err)
	return analysis, err
}

func (s *Service) priceAnalysis(ctx context.Context, filter domain.PriceAnalysisFilter) (*domain.PriceAnalysis, error) {
	summary, err := s.repo.DiscountSummary(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	ranges, err := s.repo.PriceRanges(ctx, s.db, filter.CategoryID)
	if err != nil {
		return nil, err
	}
	discounted, err := s.repo.MostDiscounted(ctx, s.db, domain.MostDiscountedFilter{
		Limit:      mostDiscountedMax,
		CategoryID: filter.CategoryID,
	}, filter.MinDiscountPercent)
	if err != nil {
		return nil, err
	}

	summary.AverageDiscount = roundTo(summary.AverageDiscount, 2)
	summary.MaxDiscount = roundTo(summary.MaxDiscount, 2)
	return &domain.PriceAnalysis{
		DiscountSummary:    *summary,
		PriceRanges:        ranges,
		DiscountedProducts: roundDiscounts(discounted),
	}, nil
}

func (s *Service) MostDiscounted(ctx context.Context, filter domain.MostDiscountedFilter) ([]domain.DiscountedProduct, error) {
	if filter.Limit <= 0 {
		filter.Limit = mostDiscountedDefault
	}
	if filter.Limit > mostDiscountedMax {
		filter.Limit = mostDiscountedMax
	}

	start := time.Now()
	items, err := s.repo.MostDiscounted(ctx, s.db, filter, 0)
	s.store.ObserveQuery("most_discounted", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return roundDiscounts(items), nil
}

// availableVariants lists the sizes and colors with stock, sorted.
func availableVariants(items []domain.Inventory) ([]string, []string) {
	sizes := map[string]struct{}{}
	colors := map[string]struct{}{}
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		sizes[item.Size] = struct{}{}
		colors[item.Color] = struct{}{}
	}
	return sortedKeys(sizes), sortedKeys(colors)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func roundDiscounts(items []domain.DiscountedProduct) []domain.DiscountedProduct {
	if items == nil {
		return []domain.DiscountedProduct{}
	}
	for i := range items {
		items[i].DiscountPercentage = roundTo(items[i].DiscountPercentage, 2)
	}
	return items
}

func nonNilGroups(items []domain.GroupInventory) []domain.GroupInventory {
	if items == nil {
		return []domain.GroupInventory{}
	}
	return items
}
