package domain

type InventoryReportFilter struct {
	CategoryID *int64
	BrandID    *int64
}

type InventorySummary struct {
	TotalProducts   int64   `json:"total_products"`
	TotalQuantity   int64   `json:"total_quantity"`
	TotalValue      float64 `json:"total_value"`
	DiscountedValue float64 `json:"discounted_value"`
	TotalDiscount   float64 `json:"total_discount"`
}

type GroupInventory struct {
	Name          string  `json:"name" gorm:"column:name"`
	Count         int64   `json:"count" gorm:"column:product_count"`
	TotalQuantity int64   `json:"total_quantity" gorm:"column:total_quantity"`
	TotalValue    float64 `json:"total_value" gorm:"column:total_value"`
}

type ProductInventory struct {
	ID                 string   `json:"id" gorm:"column:id"`
	Name               string   `json:"name" gorm:"column:name"`
	Brand              string   `json:"brand" gorm:"column:brand_name"`
	Category           string   `json:"category" gorm:"column:category_name"`
	Price              float64  `json:"price" gorm:"column:price"`
	SalePrice          *float64 `json:"sale_price" gorm:"column:sale_price"`
	IsOnSale           bool     `json:"is_on_sale" gorm:"column:is_on_sale"`
	TotalQuantity      int64    `json:"total_quantity" gorm:"column:total_quantity"`
	DiscountPercentage float64  `json:"discount_percentage" gorm:"-"`
	AvailableSizes     []string `json:"available_sizes" gorm:"-"`
	AvailableColors    []string `json:"available_colors" gorm:"-"`
}

type InventoryReport struct {
	InventorySummary
	BrandSummary    []GroupInventory   `json:"brand_summary"`
	CategorySummary []GroupInventory   `json:"category_summary"`
	Products        []ProductInventory `json:"inventory_data"`
}

type DiscountSummary struct {
	AverageDiscount float64 `json:"average_discount"`
	MaxDiscount     float64 `json:"max_discount"`
	ProductsOnSale  int64   `json:"products_on_sale"`
}

type PriceRange struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type DiscountedProduct struct {
	ID                 string  `json:"id" gorm:"column:id"`
	Name               string  `json:"name" gorm:"column:name"`
	BrandName          string  `json:"brand_name" gorm:"column:brand_name"`
	Price              float64 `json:"price" gorm:"column:price"`
	SalePrice          float64 `json:"sale_price" gorm:"column:sale_price"`
	DiscountPercentage float64 `json:"discount_percentage" gorm:"column:discount_percentage"`
}

type PriceAnalysisFilter struct {
	MinDiscountPercent float64
	CategoryID         *int64
}

type PriceAnalysis struct {
	DiscountSummary    DiscountSummary     `json:"discount_summary"`
	PriceRanges        []PriceRange        `json:"price_ranges"`
	DiscountedProducts []DiscountedProduct `json:"discounted_products"`
}

type MostDiscountedFilter struct {
	Limit      int
	CategoryID *int64
}
