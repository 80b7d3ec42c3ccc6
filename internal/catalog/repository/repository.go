package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/supportly/internal/catalog/domain"
	pkgdb "github.com/smallbiznis/supportly/pkg/db"
	"gorm.io/gorm"
)

const effectivePriceExpr = "CASE WHEN %[1]s.is_on_sale AND %[1]s.sale_price IS NOT NULL THEN %[1]s.sale_price ELSE %[1]s.price END"

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const searchColumns = `ps.id, ps.sku, ps.name, ps.description, ps.brand_id, ps.brand_name,
	ps.category_id, ps.category_name, ps.category_parent_id, ps.price, ps.sale_price,
	ps.is_on_sale, ps.is_featured, ps.is_active, ps.attributes, ps.images, ps.metadata,
	ps.inventory, ps.avg_rating, ps.review_count`

func (r *repo) SearchProducts(ctx context.Context, db *gorm.DB, filter domain.SearchFilter) ([]domain.SearchResult, error) {
	price := effectivePrice("ps")

	var (
		where = []string{"ps.is_active = TRUE"}
		args  []any
	)

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		where = append(where, "(LOWER(ps.name) LIKE ? OR LOWER(COALESCE(ps.description, '')) LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if filter.CategoryID != nil {
		where = append(where, "(ps.category_id = ? OR ps.category_parent_id = ?)")
		args = append(args, *filter.CategoryID, *filter.CategoryID)
	}
	if filter.BrandID != nil {
		where = append(where, "ps.brand_id = ?")
		args = append(args, *filter.BrandID)
	}
	if filter.PriceMin != nil {
		where = append(where, price+" >= ?")
		args = append(args, *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		where = append(where, price+" <= ?")
		args = append(args, *filter.PriceMax)
	}

	size := strings.TrimSpace(filter.Size)
	color := strings.TrimSpace(filter.Color)
	if size != "" || color != "" {
		clause := "EXISTS (SELECT 1 FROM inventory i WHERE i.product_id = ps.id"
		if size != "" {
			clause += " AND i.size = ?"
			args = append(args, size)
		}
		if color != "" {
			clause += " AND LOWER(i.color) = LOWER(?)"
			args = append(args, color)
		}
		where = append(where, clause+")")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := `SELECT ` + searchColumns + `
		FROM product_search ps
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY ps.is_featured DESC, ps.avg_rating DESC, ` + price + ` ASC, ps.name ASC
		LIMIT ? OFFSET ?`

	var items []domain.SearchResult
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindSearchRow(ctx context.Context, db *gorm.DB, productID string) (*domain.SearchResult, error) {
	var row domain.SearchResult
	err := db.WithContext(ctx).Raw(
		`SELECT `+searchColumns+` FROM product_search ps WHERE ps.id = ?`,
		productID,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, nil
	}
	return &row, nil
}

func (r *repo) FindProductByID(ctx context.Context, db *gorm.DB, productID string) (*domain.ProductDetail, error) {
	var p domain.ProductDetail
	err := db.WithContext(ctx).Raw(
		`SELECT p.id, p.sku, p.name, p.description, p.brand_id, p.category_id, p.price, p.sale_price,
			p.is_on_sale, p.is_featured, p.is_active, p.attributes, p.images, p.metadata,
			p.created_at, p.updated_at, b.name AS brand_name, c.name AS category_name
		 FROM products p
		 JOIN brands b ON b.id = p.brand_id
		 JOIN categories c ON c.id = p.category_id
		 WHERE p.id = ? AND p.is_active = TRUE`,
		productID,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) ListInventory(ctx context.Context, db *gorm.DB, productID string) ([]domain.Inventory, error) {
	var items []domain.Inventory
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, size, color, quantity, location_data, created_at, updated_at
		 FROM inventory WHERE product_id = ? ORDER BY size, color`,
		productID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindInventory(ctx context.Context, db *gorm.DB, productID, size, color string) (*domain.Inventory, error) {
	var item domain.Inventory
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, size, color, quantity, location_data, created_at, updated_at
		 FROM inventory
		 WHERE product_id = ? AND size = ? AND LOWER(color) = LOWER(?)`,
		productID,
		size,
		color,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) ListReviews(ctx context.Context, db *gorm.DB, productID string, limit int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 5
	}
	var items []domain.Review
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, customer_name, rating, review_text, verified_purchase, metadata, created_at, updated_at
		 FROM reviews WHERE product_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		productID,
		limit,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ReviewAggregate(ctx context.Context, db *gorm.DB, productID string) (*domain.ReviewAggregate, error) {
	var agg domain.ReviewAggregate
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS review_count, COALESCE(AVG(rating), 0) AS avg_rating
		 FROM reviews WHERE product_id = ?`,
		productID,
	).Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *repo) ListRelated(ctx context.Context, db *gorm.DB, productID string, relationType string) ([]domain.RelatedProduct, error) {
	query := `SELECT pr.id AS relation_id, pr.relation_type, p.id, p.sku, p.name, p.brand_id,
			b.name AS brand_name, p.price, p.sale_price, p.is_on_sale
		 FROM product_relations pr
		 JOIN products p ON p.id = pr.related_product_id
		 JOIN brands b ON b.id = p.brand_id
		 WHERE pr.product_id = ? AND p.is_active = TRUE`
	args := []any{productID}
	if relationType = strings.TrimSpace(relationType); relationType != "" {
		query += " AND pr.relation_type = ?"
		args = append(args, relationType)
	}
	query += " ORDER BY p.is_featured DESC, p.price ASC"

	var items []domain.RelatedProduct
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindCategoryByName(ctx context.Context, db *gorm.DB, name string) (*domain.Category, error) {
	var c domain.Category
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, description, parent_id, created_at, updated_at
		 FROM categories
		 WHERE LOWER(name) = LOWER(?) OR LOWER(COALESCE(slug, '')) = LOWER(?)
		 ORDER BY id
		 LIMIT 1`,
		name,
		name,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) ListCategoryProducts(ctx context.Context, db *gorm.DB, categoryID int64, includeSubcategories bool, limit int) ([]domain.CategoryProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	categoryClause := "p.category_id = ?"
	args := []any{categoryID}
	if includeSubcategories {
		categoryClause = "(p.category_id = ? OR c.parent_id = ?)"
		args = append(args, categoryID)
	}
	args = append(args, limit)

	var items []domain.CategoryProduct
	err := db.WithContext(ctx).Raw(
		`SELECT p.id, p.sku, p.name, p.brand_id, b.name AS brand_name, p.category_id,
			c.name AS category_name, p.price, p.sale_price, p.is_on_sale, p.is_featured
		 FROM products p
		 JOIN brands b ON b.id = p.brand_id
		 JOIN categories c ON c.id = p.category_id
		 WHERE `+categoryClause+` AND p.is_active = TRUE
		 ORDER BY p.is_featured DESC, `+effectivePrice("p")+` ASC, p.name ASC
		 LIMIT ?`,
		args...,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListBrands(ctx context.Context, db *gorm.DB) ([]domain.Brand, error) {
	var items []domain.Brand
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, description, logo_url, website_url, created_at, updated_at
		 FROM brands ORDER BY name`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var items []domain.Category
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, description, parent_id, created_at, updated_at
		 FROM categories ORDER BY id`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RefreshSearchView rebuilds the materialized view. Other dialects use a plain view.
func (r *repo) RefreshSearchView(ctx context.Context, db *gorm.DB) error {
	if !pkgdb.IsPostgres(db) {
		return nil
	}
	return db.WithContext(ctx).Exec(`REFRESH MATERIALIZED VIEW product_search`).Error
}

func (r *repo) CreateBrand(ctx context.Context, db *gorm.DB, brand *domain.Brand) error {
	return db.WithContext(ctx).Raw(
		`INSERT INTO brands (name, slug, description, logo_url, website_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		brand.Name,
		brand.Slug,
		brand.Description,
		brand.LogoURL,
		brand.WebsiteURL,
		brand.CreatedAt,
		brand.UpdatedAt,
	).Scan(&brand.ID).Error
}

func (r *repo) CreateCategory(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Raw(
		`INSERT INTO categories (name, slug, description, parent_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		category.Name,
		category.Slug,
		category.Description,
		category.ParentID,
		category.CreatedAt,
		category.UpdatedAt,
	).Scan(&category.ID).Error
}

func (r *repo) CreateProduct(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, sku, name, description, brand_id, category_id, price, sale_price,
			is_on_sale, is_featured, is_active, attributes, images, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.SKU,
		product.Name,
		product.Description,
		product.BrandID,
		product.CategoryID,
		product.Price,
		product.SalePrice,
		product.IsOnSale,
		product.IsFeatured,
		product.IsActive,
		product.Attributes,
		product.Images,
		product.Metadata,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) CreateInventory(ctx context.Context, db *gorm.DB, item *domain.Inventory) error {
	return db.WithContext(ctx).Raw(
		`INSERT INTO inventory (product_id, size, color, quantity, location_data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		item.ProductID,
		item.Size,
		item.Color,
		item.Quantity,
		item.LocationData,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID).Error
}

func (r *repo) UpdateInventoryQuantity(ctx context.Context, db *gorm.DB, id int64, quantity int) error {
	return db.WithContext(ctx).Exec(
		`UPDATE inventory SET quantity = ? WHERE id = ?`,
		quantity,
		id,
	).Error
}

func (r *repo) CreateReview(ctx context.Context, db *gorm.DB, review *domain.Review) error {
	return db.WithContext(ctx).Raw(
		`INSERT INTO reviews (product_id, customer_name, rating, review_text, verified_purchase, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		review.ProductID,
		review.CustomerName,
		review.Rating,
		review.ReviewText,
		review.VerifiedPurchase,
		review.Metadata,
		review.CreatedAt,
		review.UpdatedAt,
	).Scan(&review.ID).Error
}

func (r *repo) CreateRelation(ctx context.Context, db *gorm.DB, relation *domain.ProductRelation) error {
	return db.WithContext(ctx).Raw(
		`INSERT INTO product_relations (product_id, related_product_id, relation_type, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		relation.ProductID,
		relation.RelatedProductID,
		relation.RelationType,
		relation.CreatedAt,
	).Scan(&relation.ID).Error
}

func effectivePrice(alias string) string {
	return fmt.Sprintf(effectivePriceExpr, alias)
}
