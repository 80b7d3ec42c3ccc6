package domain

import (
	"context"
	"errors"
)

type Service interface {
	Search(ctx context.Context, filter SearchFilter) ([]SearchResult, error)
	GetProduct(ctx context.Context, id string) (*ProductDetail, error)
	GetProductDetails(ctx context.Context, id string) (*ProductDetails, error)
	CheckInventory(ctx context.Context, id, size, color string) (*Inventory, error)
	GetCategoryProducts(ctx context.Context, req CategoryProductsRequest) ([]CategoryProduct, error)
	FindCategory(ctx context.Context, name string) (*Category, error)
	ListBrands(ctx context.Context) ([]Brand, error)
	ListCategories(ctx context.Context) ([]Category, error)
	RefreshSearchView(ctx context.Context) error

	CreateBrand(ctx context.Context, req CreateBrandRequest) (*Brand, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	AddInventory(ctx context.Context, req SetInventoryRequest) (*Inventory, error)
	UpdateStock(ctx context.Context, req SetInventoryRequest) (*Inventory, error)
	AddReview(ctx context.Context, req AddReviewRequest) (*Review, error)
	RelateProducts(ctx context.Context, req RelateProductsRequest) (*ProductRelation, error)

	InventoryReport(ctx context.Context, filter InventoryReportFilter) (*InventoryReport, error)
	PriceAnalysis(ctx context.Context, filter PriceAnalysisFilter) (*PriceAnalysis, error)
	MostDiscounted(ctx context.Context, filter MostDiscountedFilter) ([]DiscountedProduct, error)
}

type SearchFilter struct {
	Query      string   `json:"query,omitempty"`
	CategoryID *int64   `json:"category_id,omitempty"`
	BrandID    *int64   `json:"brand_id,omitempty"`
	PriceMin   *float64 `json:"price_min,omitempty"`
	PriceMax   *float64 `json:"price_max,omitempty"`
	Size       string   `json:"size,omitempty"`
	Color      string   `json:"color,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}

type CategoryProductsRequest struct {
	CategoryName         string
	IncludeSubcategories bool
	Limit                int
}

type CreateBrandRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
	WebsiteURL  *string `json:"website_url"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ParentID    *int64  `json:"parent_id"`
}

type CreateProductRequest struct {
	ID          string         `json:"id"`
	SKU         string         `json:"sku"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	BrandID     int64          `json:"brand_id"`
	CategoryID  int64          `json:"category_id"`
	Price       float64        `json:"price"`
	SalePrice   *float64       `json:"sale_price"`
	IsOnSale    bool           `json:"is_on_sale"`
	IsFeatured  bool           `json:"is_featured"`
	IsActive    *bool          `json:"is_active"`
	Attributes  map[string]any `json:"attributes"`
	Images      []any          `json:"images"`
	Metadata    map[string]any `json:"metadata"`
}

type SetInventoryRequest struct {
	ProductID    string         `json:"product_id"`
	Size         string         `json:"size"`
	Color        string         `json:"color"`
	Quantity     int            `json:"quantity"`
	LocationData map[string]any `json:"location_data"`
}

type AddReviewRequest struct {
	ProductID        string         `json:"product_id"`
	CustomerName     *string        `json:"customer_name"`
	Rating           int            `json:"rating"`
	ReviewText       *string        `json:"review_text"`
	VerifiedPurchase bool           `json:"verified_purchase"`
	Metadata         map[string]any `json:"metadata"`
}

type RelateProductsRequest struct {
	ProductID        string `json:"product_id"`
	RelatedProductID string `json:"related_product_id"`
	RelationType     string `json:"relation_type"`
}

var (
	ErrNotFound            = errors.New("not_found")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidSKU          = errors.New("invalid_sku")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidSalePrice    = errors.New("invalid_sale_price")
	ErrInvalidRating       = errors.New("invalid_rating")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrInvalidSize         = errors.New("invalid_size")
	ErrInvalidColor        = errors.New("invalid_color")
	ErrInvalidRelation     = errors.New("invalid_relation")
	ErrInvalidBrand        = errors.New("invalid_brand")
	ErrInvalidCategory     = errors.New("invalid_category")
	ErrDuplicateSKU        = errors.New("duplicate_sku")
	ErrDuplicateBrand      = errors.New("duplicate_brand")
	ErrDuplicateCategory   = errors.New("duplicate_category")
	ErrDuplicateInventory  = errors.New("duplicate_inventory")
	ErrDuplicateRelation   = errors.New("duplicate_relation")
	ErrInvalidSearchFilter = errors.New("invalid_search_filter")
)
