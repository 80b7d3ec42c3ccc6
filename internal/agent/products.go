package agent

import (
	"context"
	"errors"
	"strings"

	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
	"github.com/smallbiznis/supportly/internal/observability/metrics"
	"go.uber.org/zap"
)

const (
	searchLimit          = 10
	categoryLimit        = 10
	maxListedProducts    = 5
	maxRelatedSuggestion = 3
)

// Result pairs the data behind an answer with its formatted text.
type Result[T any] struct {
	Data     T      `json:"data"`
	Response string `json:"response"`
}

type SearchData struct {
	Params  SearchParams                 `json:"params"`
	Results []catalogdomain.SearchResult `json:"results"`
}

type AvailabilityData struct {
	Product   *catalogdomain.ProductDetail `json:"product,omitempty"`
	Inventory *catalogdomain.Inventory     `json:"inventory,omitempty"`
	Available bool                         `json:"available"`
}

// ProductsAgent answers shopping questions from the catalog.
type ProductsAgent struct {
	catalog catalogdomain.Service
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewProductsAgent(p Params) *ProductsAgent {
	return &ProductsAgent{
		catalog: p.Catalog,
		metrics: p.Metrics,
		log:     p.Log.Named("agent.products"),
	}
}

func (a *ProductsAgent) Search(ctx context.Context, text string) (*Result[SearchData], error) {
	params := ExtractSearchParams(text)
	a.log.Debug("extracted search parameters",
		zap.String("query", params.Query),
		zap.String("size", params.Size),
		zap.String("color", params.Color),
	)

	filter := catalogdomain.SearchFilter{
		Query:    params.Query,
		PriceMin: params.PriceMin,
		PriceMax: params.PriceMax,
		Size:     params.Size,
		Color:    params.Color,
		Limit:    searchLimit,
	}
	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		filter.PriceMin, filter.PriceMax = filter.PriceMax, filter.PriceMin
	}

	results, err := a.catalog.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	a.metrics.RecordSearchResults(ctx, "agent", len(results))

	return &Result[SearchData]{
		Data:     SearchData{Params: params, Results: results},
		Response: formatSearch(results, text),
	}, nil
}

// Details answers with the complete product view. A missing or malformed id
// yields a not-found answer rather than an error.
func (a *ProductsAgent) Details(ctx context.Context, productID string) (*Result[*catalogdomain.ProductDetails], error) {
	details, err := a.catalog.GetProductDetails(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrNotFound) || errors.Is(err, catalogdomain.ErrInvalidID) {
			return &Result[*catalogdomain.ProductDetails]{Response: productNotFoundText}, nil
		}
		return nil, err
	}
	return &Result[*catalogdomain.ProductDetails]{
		Data:     details,
		Response: formatDetails(details),
	}, nil
}

func (a *ProductsAgent) Availability(ctx context.Context, productID, size, color string) (*Result[AvailabilityData], error) {
	product, err := a.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrNotFound) || errors.Is(err, catalogdomain.ErrInvalidID) {
			return &Result[AvailabilityData]{Response: productMissingText}, nil
		}
		return nil, err
	}

	size = strings.TrimSpace(size)
	color = strings.TrimSpace(color)
	inventory, err := a.catalog.CheckInventory(ctx, product.ID, size, color)
	if err != nil && !errors.Is(err, catalogdomain.ErrNotFound) {
		return nil, err
	}

	return &Result[AvailabilityData]{
		Data: AvailabilityData{
			Product:   product,
			Inventory: inventory,
			Available: inventory != nil && inventory.Quantity > 0,
		},
		Response: formatAvailability(product, inventory, size, color),
	}, nil
}

func (a *ProductsAgent) CategoryProducts(ctx context.Context, categoryName string) (*Result[[]catalogdomain.CategoryProduct], error) {
	categoryName = strings.TrimSpace(categoryName)
	products, err := a.catalog.GetCategoryProducts(ctx, catalogdomain.CategoryProductsRequest{
		CategoryName:         categoryName,
		IncludeSubcategories: true,
		Limit:                categoryLimit,
	})
	if err != nil {
		return nil, err
	}
	a.metrics.RecordSearchResults(ctx, "category", len(products))

	return &Result[[]catalogdomain.CategoryProduct]{
		Data:     products,
		Response: formatCategory(products, categoryName),
	}, nil
}
