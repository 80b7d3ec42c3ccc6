package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Brand struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey"`
	Name        string    `json:"name" gorm:"column:name"`
	Slug        *string   `json:"slug,omitempty" gorm:"column:slug"`
	Description *string   `json:"description,omitempty" gorm:"column:description"`
	LogoURL     *string   `json:"logo_url,omitempty" gorm:"column:logo_url"`
	WebsiteURL  *string   `json:"website_url,omitempty" gorm:"column:website_url"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Brand) TableName() string { return "brands" }

type Category struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey"`
	Name        string    `json:"name" gorm:"column:name"`
	Slug        *string   `json:"slug,omitempty" gorm:"column:slug"`
	Description *string   `json:"description,omitempty" gorm:"column:description"`
	ParentID    *int64    `json:"parent_id,omitempty" gorm:"column:parent_id"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID          string         `json:"id" gorm:"column:id;primaryKey"`
	SKU         string         `json:"sku" gorm:"column:sku"`
	Name        string         `json:"name" gorm:"column:name"`
	Description *string        `json:"description,omitempty" gorm:"column:description"`
	BrandID     int64          `json:"brand_id" gorm:"column:brand_id"`
	CategoryID  int64          `json:"category_id" gorm:"column:category_id"`
	Price       float64        `json:"price" gorm:"column:price"`
	SalePrice   *float64       `json:"sale_price" gorm:"column:sale_price"`
	IsOnSale    bool           `json:"is_on_sale" gorm:"column:is_on_sale"`
	IsFeatured  bool           `json:"is_featured" gorm:"column:is_featured"`
	IsActive    bool           `json:"is_active" gorm:"column:is_active"`
	Attributes  datatypes.JSON `json:"attributes" gorm:"column:attributes"`
	Images      datatypes.JSON `json:"images" gorm:"column:images"`
	Metadata    datatypes.JSON `json:"metadata" gorm:"column:metadata"`
	CreatedAt   time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"column:updated_at"`
}

func (Product) TableName() string { return "products" }

type Inventory struct {
	ID           int64          `json:"id" gorm:"column:id;primaryKey"`
	ProductID    string         `json:"product_id" gorm:"column:product_id"`
	Size         string         `json:"size" gorm:"column:size"`
	Color        string         `json:"color" gorm:"column:color"`
	Quantity     int            `json:"quantity" gorm:"column:quantity"`
	LocationData datatypes.JSON `json:"location_data" gorm:"column:location_data"`
	CreatedAt    time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"column:updated_at"`
}

func (Inventory) TableName() string { return "inventory" }

type Review struct {
	ID               int64          `json:"id" gorm:"column:id;primaryKey"`
	ProductID        string         `json:"product_id" gorm:"column:product_id"`
	CustomerName     *string        `json:"customer_name" gorm:"column:customer_name"`
	Rating           int            `json:"rating" gorm:"column:rating"`
	ReviewText       *string        `json:"review_text" gorm:"column:review_text"`
	VerifiedPurchase bool           `json:"verified_purchase" gorm:"column:verified_purchase"`
	Metadata         datatypes.JSON `json:"metadata" gorm:"column:metadata"`
	CreatedAt        time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time      `json:"updated_at" gorm:"column:updated_at"`
}

func (Review) TableName() string { return "reviews" }

type ProductRelation struct {
	ID               int64     `json:"id" gorm:"column:id;primaryKey"`
	ProductID        string    `json:"product_id" gorm:"column:product_id"`
	RelatedProductID string    `json:"related_product_id" gorm:"column:related_product_id"`
	RelationType     string    `json:"relation_type" gorm:"column:relation_type"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
}

func (ProductRelation) TableName() string { return "product_relations" }

const (
	RelationSimilar         = "similar"
	RelationAlternative     = "alternative"
	RelationAccessory       = "accessory"
	RelationRecommendedWith = "recommended_with"
)

// SearchResult is one row of the product_search view.
type SearchResult struct {
	ID               string         `json:"id" gorm:"column:id"`
	SKU              string         `json:"sku" gorm:"column:sku"`
	Name             string         `json:"name" gorm:"column:name"`
	Description      *string        `json:"description,omitempty" gorm:"column:description"`
	BrandID          int64          `json:"brand_id" gorm:"column:brand_id"`
	BrandName        string         `json:"brand_name" gorm:"column:brand_name"`
	CategoryID       int64          `json:"category_id" gorm:"column:category_id"`
	CategoryName     string         `json:"category_name" gorm:"column:category_name"`
	CategoryParentID *int64         `json:"category_parent_id,omitempty" gorm:"column:category_parent_id"`
	Price            float64        `json:"price" gorm:"column:price"`
	SalePrice        *float64       `json:"sale_price" gorm:"column:sale_price"`
	IsOnSale         bool           `json:"is_on_sale" gorm:"column:is_on_sale"`
	IsFeatured       bool           `json:"is_featured" gorm:"column:is_featured"`
	IsActive         bool           `json:"is_active" gorm:"column:is_active"`
	Attributes       datatypes.JSON `json:"attributes" gorm:"column:attributes"`
	Images           datatypes.JSON `json:"images" gorm:"column:images"`
	Metadata         datatypes.JSON `json:"metadata" gorm:"column:metadata"`
	Inventory        datatypes.JSON `json:"inventory" gorm:"column:inventory"`
	AvgRating        float64        `json:"avg_rating" gorm:"column:avg_rating"`
	ReviewCount      int64          `json:"review_count" gorm:"column:review_count"`
}

func (r SearchResult) EffectivePrice() float64 {
	return EffectivePrice(r.Price, r.SalePrice, r.IsOnSale)
}

// ProductDetail is a product joined with its brand and category names.
type ProductDetail struct {
	Product
	BrandName    string `json:"brand_name" gorm:"column:brand_name"`
	CategoryName string `json:"category_name" gorm:"column:category_name"`
}

func (p ProductDetail) EffectivePrice() float64 {
	return EffectivePrice(p.Price, p.SalePrice, p.IsOnSale)
}

type RelatedProduct struct {
	RelationID   int64    `json:"relation_id" gorm:"column:relation_id"`
	RelationType string   `json:"relation_type" gorm:"column:relation_type"`
	ID           string   `json:"id" gorm:"column:id"`
	SKU          string   `json:"sku" gorm:"column:sku"`
	Name         string   `json:"name" gorm:"column:name"`
	BrandID      int64    `json:"brand_id" gorm:"column:brand_id"`
	BrandName    string   `json:"brand_name" gorm:"column:brand_name"`
	Price        float64  `json:"price" gorm:"column:price"`
	SalePrice    *float64 `json:"sale_price" gorm:"column:sale_price"`
	IsOnSale     bool     `json:"is_on_sale" gorm:"column:is_on_sale"`
}

func (p RelatedProduct) EffectivePrice() float64 {
	return EffectivePrice(p.Price, p.SalePrice, p.IsOnSale)
}

type CategoryProduct struct {
	ID           string   `json:"id" gorm:"column:id"`
	SKU          string   `json:"sku" gorm:"column:sku"`
	Name         string   `json:"name" gorm:"column:name"`
	BrandID      int64    `json:"brand_id" gorm:"column:brand_id"`
	BrandName    string   `json:"brand_name" gorm:"column:brand_name"`
	CategoryID   int64    `json:"category_id" gorm:"column:category_id"`
	CategoryName string   `json:"category_name" gorm:"column:category_name"`
	Price        float64  `json:"price" gorm:"column:price"`
	SalePrice    *float64 `json:"sale_price" gorm:"column:sale_price"`
	IsOnSale     bool     `json:"is_on_sale" gorm:"column:is_on_sale"`
	IsFeatured   bool     `json:"is_featured" gorm:"column:is_featured"`
}

func (p CategoryProduct) EffectivePrice() float64 {
	return EffectivePrice(p.Price, p.SalePrice, p.IsOnSale)
}

type ReviewAggregate struct {
	Count     int64   `json:"count" gorm:"column:review_count"`
	AvgRating float64 `json:"avg_rating" gorm:"column:avg_rating"`
}

type ReviewSummary struct {
	Count         int      `json:"count"`
	AverageRating float64  `json:"average_rating"`
	Latest        []Review `json:"latest"`
}

// ProductDetails is the complete view of a product used by the details endpoints.
type ProductDetails struct {
	ProductDetail
	Inventory       []Inventory      `json:"inventory"`
	Reviews         ReviewSummary    `json:"reviews"`
	RelatedProducts []RelatedProduct `json:"related_products"`
}

// EffectivePrice is the sale price when the product is on sale, the list price otherwise.
func EffectivePrice(price float64, salePrice *float64, onSale bool) float64 {
	if onSale && salePrice != nil {
		return *salePrice
	}
	return price
}

// DiscountPercent returns the percentage saved by the sale price, or zero.
func DiscountPercent(price float64, salePrice *float64, onSale bool) float64 {
	if !onSale || salePrice == nil || price <= 0 {
		return 0
	}
	return (price - *salePrice) / price * 100
}
