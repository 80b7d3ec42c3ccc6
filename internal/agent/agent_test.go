package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const pegasusID = "0b6f7d8e-1f0a-4d5c-9a7e-1a2b3c4d5e01"

// fakeCatalog implements the catalog methods the agents use; the embedded
// interface panics on anything else.
type fakeCatalog struct {
	catalogdomain.Service

	searchFilter catalogdomain.SearchFilter
	results      []catalogdomain.SearchResult
	details      *catalogdomain.ProductDetails
	product      *catalogdomain.ProductDetail
	inventory    *catalogdomain.Inventory
	categoryRows []catalogdomain.CategoryProduct
	brands       []catalogdomain.Brand
	categories   []catalogdomain.Category
	listErr      error
	reportErr    error

	inventoryFilter catalogdomain.InventoryReportFilter
	inventoryReport *catalogdomain.InventoryReport
	discounted      []catalogdomain.DiscountedProduct
}

func (f *fakeCatalog) Search(ctx context.Context, filter catalogdomain.SearchFilter) ([]catalogdomain.SearchResult, error) {
	f.searchFilter = filter
	return f.results, nil
}

func (f *fakeCatalog) GetProductDetails(ctx context.Context, id string) (*catalogdomain.ProductDetails, error) {
	if f.details == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return f.details, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id string) (*catalogdomain.ProductDetail, error) {
	if f.product == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return f.product, nil
}

func (f *fakeCatalog) CheckInventory(ctx context.Context, id, size, color string) (*catalogdomain.Inventory, error) {
	if f.inventory == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return f.inventory, nil
}

func (f *fakeCatalog) GetCategoryProducts(ctx context.Context, req catalogdomain.CategoryProductsRequest) ([]catalogdomain.CategoryProduct, error) {
	return f.categoryRows, nil
}

func (f *fakeCatalog) ListBrands(ctx context.Context) ([]catalogdomain.Brand, error) {
	return f.brands, f.listErr
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]catalogdomain.Category, error) {
	return f.categories, f.listErr
}

func (f *fakeCatalog) InventoryReport(ctx context.Context, filter catalogdomain.InventoryReportFilter) (*catalogdomain.InventoryReport, error) {
	f.inventoryFilter = filter
	if f.reportErr != nil {
		return nil, f.reportErr
	}
	return f.inventoryReport, nil
}

func (f *fakeCatalog) MostDiscounted(ctx context.Context, filter catalogdomain.MostDiscountedFilter) ([]catalogdomain.DiscountedProduct, error) {
	return f.discounted, f.reportErr
}

type stubLLM struct {
	reply  string
	err    error
	prompt string
}

func (s *stubLLM) Vendor() string { return "stub" }

func (s *stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func newProducts(catalog *fakeCatalog) *ProductsAgent {
	return NewProductsAgent(Params{Log: zap.NewNop(), Catalog: catalog})
}

func TestProductsSearch(t *testing.T) {
	sale := 90.0
	catalog := &fakeCatalog{results: []catalogdomain.SearchResult{
		{Name: "Nike Pegasus", BrandName: "Nike", Price: 120, SalePrice: &sale, IsOnSale: true, AvgRating: 4.5},
		{Name: "Nike Vomero", BrandName: "Nike", Price: 160},
	}}

	res, err := newProducts(catalog).Search(context.Background(), "running shoes by Nike under $100")
	require.NoError(t, err)

	assert.Equal(t, "Nike", catalog.searchFilter.Query)
	require.NotNil(t, catalog.searchFilter.PriceMax)
	assert.Equal(t, 100.0, *catalog.searchFilter.PriceMax)
	assert.Equal(t, searchLimit, catalog.searchFilter.Limit)

	assert.Equal(t, strings.Join([]string{
		"Here are some products that match your search for 'running shoes by Nike under $100':",
		"1. **Nike Pegasus** by Nike - $90.00 (Rating: 4.5/5)",
		"2. **Nike Vomero** by Nike - $160.00",
		"\nWould you like more details about any of these products? Or would you like to refine your search?",
	}, "\n"), res.Response)
	assert.Len(t, res.Data.Results, 2)
}

func TestProductsSearchEmpty(t *testing.T) {
	res, err := newProducts(&fakeCatalog{}).Search(context.Background(), "glass slippers")
	require.NoError(t, err)
	assert.Equal(t, "I'm sorry, I couldn't find any products matching 'glass slippers'. Could you try a different search?", res.Response)
}

func TestProductsDetails(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		res, err := newProducts(&fakeCatalog{}).Details(context.Background(), pegasusID)
		require.NoError(t, err)
		assert.Equal(t, productNotFoundText, res.Response)
		assert.Nil(t, res.Data)
	})

	t.Run("formatted", func(t *testing.T) {
		sale := 90.0
		description := "Responsive daily trainer."
		details := &catalogdomain.ProductDetails{
			ProductDetail: catalogdomain.ProductDetail{
				Product: catalogdomain.Product{
					ID:          pegasusID,
					Name:        "Nike Pegasus",
					Description: &description,
					Price:       120,
					SalePrice:   &sale,
					IsOnSale:    true,
				},
				BrandName:    "Nike",
				CategoryName: "Running",
			},
			Inventory: []catalogdomain.Inventory{
				{Size: "9", Color: "White", Quantity: 2},
				{Size: "10", Color: "Black", Quantity: 1},
				{Size: "11", Color: "Red", Quantity: 0},
			},
			Reviews:         catalogdomain.ReviewSummary{Count: 3, AverageRating: 4.3},
			RelatedProducts: []catalogdomain.RelatedProduct{{Name: "Nike Vomero", Price: 160}},
		}

		res, err := newProducts(&fakeCatalog{details: details}).Details(context.Background(), pegasusID)
		require.NoError(t, err)
		assert.Equal(t, strings.Join([]string{
			"# Nike Pegasus",
			"**Brand**: Nike | **Category**: Running",
			"**Price**: $90.00 ($120.00 - 25% off)",
			"",
			"Responsive daily trainer.",
			"",
			"**Rating**: 4.3/5 (3 reviews)",
			"**Available Sizes**: 10, 9",
			"**Available Colors**: Black, White",
			"\n**You might also like**:",
			"1. Nike Vomero - $160.00",
			"\nWhat would you like to know about this product? You can ask about sizes, colors, or reviews.",
		}, "\n"), res.Response)
	})
}

func TestProductsAvailability(t *testing.T) {
	product := &catalogdomain.ProductDetail{Product: catalogdomain.Product{ID: pegasusID, Name: "Nike Pegasus"}}

	tests := []struct {
		name      string
		inventory *catalogdomain.Inventory
		available bool
		prefix    string
	}{
		{name: "no row", prefix: "I'm sorry, the Nike Pegasus is not available in size 10 and color Black."},
		{name: "out of stock", inventory: &catalogdomain.Inventory{Quantity: 0}, prefix: "I'm sorry, the Nike Pegasus in size 10 and color Black is currently out of stock."},
		{name: "low stock", inventory: &catalogdomain.Inventory{Quantity: 3}, available: true, prefix: "Good news! The Nike Pegasus is available in size 10 and color Black, but there are only 3 left in stock."},
		{name: "in stock", inventory: &catalogdomain.Inventory{Quantity: 12}, available: true, prefix: "Great news! The Nike Pegasus is available in size 10 and color Black. Would you like to add it to your cart?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newProducts(&fakeCatalog{product: product, inventory: tt.inventory}).Availability(context.Background(), pegasusID, "10", "Black")
			require.NoError(t, err)
			assert.Equal(t, tt.available, res.Data.Available)
			assert.True(t, strings.HasPrefix(res.Response, tt.prefix), res.Response)
		})
	}

	t.Run("missing product", func(t *testing.T) {
		res, err := newProducts(&fakeCatalog{}).Availability(context.Background(), pegasusID, "10", "Black")
		require.NoError(t, err)
		assert.False(t, res.Data.Available)
		assert.Equal(t, productMissingText, res.Response)
	})
}

func TestProductsCategory(t *testing.T) {
	res, err := newProducts(&fakeCatalog{}).CategoryProducts(context.Background(), "Ballet")
	require.NoError(t, err)
	assert.Equal(t, "I'm sorry, I couldn't find any products in the 'Ballet' category. Would you like to browse a different category?", res.Response)

	res, err = newProducts(&fakeCatalog{categoryRows: []catalogdomain.CategoryProduct{
		{Name: "Adidas Samba", BrandName: "Adidas", Price: 100},
	}}).CategoryProducts(context.Background(), "Sneakers")
	require.NoError(t, err)
	assert.Contains(t, res.Response, "Here are some popular products in the 'Sneakers' category:\n1. **Adidas Samba** by Adidas - $100.00")
}

func TestDetectReportType(t *testing.T) {
	assert.Equal(t, ReportPriceAnalysis, DetectReportType("Give me a price analysis"))
	assert.Equal(t, ReportPriceAnalysis, DetectReportType("what does our pricing look like"))
	assert.Equal(t, ReportMostDiscounted, DetectReportType("top 3 discounted products"))
	assert.Equal(t, ReportMostDiscounted, DetectReportType("what is on sale?"))
	assert.Equal(t, ReportInventory, DetectReportType("show me the sales data report"))
	assert.Equal(t, ReportInventory, DetectReportType("inventory report"))
}

func TestReportsParseRequest(t *testing.T) {
	catalog := &fakeCatalog{
		brands: []catalogdomain.Brand{{ID: 1, Name: "Nike"}, {ID: 4, Name: "New Balance"}},
		categories: []catalogdomain.Category{
			{ID: 1, Name: "Athletic"},
			{ID: 6, Name: "Running"},
			{ID: 7, Name: "Trail Running"},
		},
	}
	agent := NewReportsAgent(Params{Log: zap.NewNop(), Catalog: catalog})
	ctx := context.Background()

	req, err := agent.ParseRequest(ctx, "Inventory report for New Balance trail running shoes")
	require.NoError(t, err)
	assert.Equal(t, ReportInventory, req.Type)
	require.NotNil(t, req.BrandID)
	assert.Equal(t, int64(4), *req.BrandID)
	require.NotNil(t, req.CategoryID)
	assert.Equal(t, int64(7), *req.CategoryID)

	req, err = agent.ParseRequest(ctx, "price analysis with at least 20% off")
	require.NoError(t, err)
	assert.Equal(t, 20.0, req.MinDiscountPercent)
	assert.Nil(t, req.CategoryID)

	req, err = agent.ParseRequest(ctx, "top 3 deals")
	require.NoError(t, err)
	assert.Equal(t, ReportMostDiscounted, req.Type)
	assert.Equal(t, 3, req.Limit)
}

func TestReportsRespond(t *testing.T) {
	ctx := context.Background()

	t.Run("inventory", func(t *testing.T) {
		sale := 90.0
		catalog := &fakeCatalog{inventoryReport: &catalogdomain.InventoryReport{
			InventorySummary: catalogdomain.InventorySummary{TotalProducts: 1, TotalQuantity: 3, TotalValue: 360, DiscountedValue: 270, TotalDiscount: 90},
			BrandSummary:     []catalogdomain.GroupInventory{{Name: "Nike", Count: 1, TotalQuantity: 3, TotalValue: 360}},
			Products: []catalogdomain.ProductInventory{{
				Name: "Nike Pegasus", Brand: "Nike", Price: 120, SalePrice: &sale, IsOnSale: true,
				TotalQuantity: 3, DiscountPercentage: 25, AvailableSizes: []string{"10", "9"}, AvailableColors: []string{"Black"},
			}},
		}}
		report := NewReportsAgent(Params{Log: zap.NewNop(), Catalog: catalog}).Respond(ctx, "inventory report")

		assert.Equal(t, reportSuggestions(ReportInventory), report.Suggestions)
		assert.Contains(t, report.Response, "## Inventory Report\n\n### Summary\n- Total Product Models: 1\n")
		assert.Contains(t, report.Response, "- Total Discount: $90.00\n\n### Brand Summary\n- Nike: 1 product models, 3 items, value: $360.00\n\n")
		assert.Contains(t, report.Response, "### Sample Products (showing 1 of 1 product models)\n1. **Nike Pegasus** (Nike)\n   Price: $120.00 Sale: $90.00 (25% off)\n")
		assert.Contains(t, report.Response, "   Quantity: 3 items | Sizes: 10, 9... | Colors: Black...\n")
		assert.NotContains(t, report.Response, "Category Summary")
	})

	t.Run("no discounts", func(t *testing.T) {
		report := NewReportsAgent(Params{Log: zap.NewNop(), Catalog: &fakeCatalog{}}).Respond(ctx, "most discounted products")
		assert.Equal(t, "## Most Discounted Products\n\nWe don't currently have any products on sale.\n", report.Response)
	})

	t.Run("report error", func(t *testing.T) {
		catalog := &fakeCatalog{reportErr: errors.New("connection refused")}
		report := NewReportsAgent(Params{Log: zap.NewNop(), Catalog: catalog}).Respond(ctx, "inventory report")
		assert.Equal(t, "I'm sorry, but I encountered an error while generating the report: the report data is unavailable right now", report.Response)
	})

	t.Run("lookup failure falls back to the model", func(t *testing.T) {
		llm := &stubLLM{reply: "Sorry about that!"}
		catalog := &fakeCatalog{listErr: errors.New("timeout")}
		report := NewReportsAgent(Params{Log: zap.NewNop(), Catalog: catalog, LLM: llm}).Respond(ctx, "inventory report")

		assert.Equal(t, "Sorry about that!", report.Response)
		assert.Equal(t, fallbackSuggests, report.Suggestions)
		assert.Contains(t, llm.prompt, "User message: inventory report")
	})
}
