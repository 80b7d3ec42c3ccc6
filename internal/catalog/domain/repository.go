package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	SearchProducts(ctx context.Context, db *gorm.DB, filter SearchFilter) ([]SearchResult, error)
	FindSearchRow(ctx context.Context, db *gorm.DB, productID string) (*SearchResult, error)
	FindProductByID(ctx context.Context, db *gorm.DB, productID string) (*ProductDetail, error)
	ListInventory(ctx context.Context, db *gorm.DB, productID string) ([]Inventory, error)
	FindInventory(ctx context.Context, db *gorm.DB, productID, size, color string) (*Inventory, error)
	ListReviews(ctx context.Context, db *gorm.DB, productID string, limit int) ([]Review, error)
	ReviewAggregate(ctx context.Context, db *gorm.DB, productID string) (*ReviewAggregate, error)
	ListRelated(ctx context.Context, db *gorm.DB, productID string, relationType string) ([]RelatedProduct, error)
	FindCategoryByName(ctx context.Context, db *gorm.DB, name string) (*Category, error)
	ListCategoryProducts(ctx context.Context, db *gorm.DB, categoryID int64, includeSubcategories bool, limit int) ([]CategoryProduct, error)
	ListBrands(ctx context.Context, db *gorm.DB) ([]Brand, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]Category, error)
	RefreshSearchView(ctx context.Context, db *gorm.DB) error

	CreateBrand(ctx context.Context, db *gorm.DB, brand *Brand) error
	CreateCategory(ctx context.Context, db *gorm.DB, category *Category) error
	CreateProduct(ctx context.Context, db *gorm.DB, product *Product) error
	CreateInventory(ctx context.Context, db *gorm.DB, item *Inventory) error
	UpdateInventoryQuantity(ctx context.Context, db *gorm.DB, id int64, quantity int) error
	CreateReview(ctx context.Context, db *gorm.DB, review *Review) error
	CreateRelation(ctx context.Context, db *gorm.DB, relation *ProductRelation) error

	InventoryTotals(ctx context.Context, db *gorm.DB, filter InventoryReportFilter) (*InventorySummary, error)
	InventoryByBrand(ctx context.Context, db *gorm.DB, filter InventoryReportFilter) ([]GroupInventory, error)
	InventoryByCategory(ctx context.Context, db *gorm.DB, filter InventoryReportFilter) ([]GroupInventory, error)
	InventoryProducts(ctx context.Context, db *gorm.DB, filter InventoryReportFilter) ([]ProductInventory, error)
	DiscountSummary(ctx context.Context, db *gorm.DB, filter PriceAnalysisFilter) (*DiscountSummary, error)
	PriceRanges(ctx context.Context, db *gorm.DB, categoryID *int64) ([]PriceRange, error)
	MostDiscounted(ctx context.Context, db *gorm.DB, filter MostDiscountedFilter, minDiscountPercent float64) ([]DiscountedProduct, error)
}
