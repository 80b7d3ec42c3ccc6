package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/smallbiznis/supportly/internal/catalog/domain"
	"gorm.io/gorm"
)

// priceBuckets are ordered by lower bound; labels are stable for report output.
var priceBuckets = []struct {
	label string
	upper float64
}{
	{label: "Under $50", upper: 50},
	{label: "$50 - $99", upper: 100},
	{label: "$100 - $149", upper: 150},
	{label: "$150 - $199", upper: 200},
	{label: "$200 and above", upper: 0},
}

func inventoryFilterClause(filter domain.InventoryReportFilter) (string, []any) {
	clauses := []string{"p.is_active = TRUE"}
	var args []any
	if filter.CategoryID != nil {
		clauses = append(clauses, "(p.category_id = ? OR c.parent_id = ?)")
		args = append(args, *filter.CategoryID, *filter.CategoryID)
	}
	if filter.BrandID != nil {
		clauses = append(clauses, "p.brand_id = ?")
		args = append(args, *filter.BrandID)
	}
	return strings.Join(clauses, " AND "), args
}

// stockedProducts is one row per active product with its summed inventory quantity.
const stockedProducts = `SELECT p.id, p.name, p.brand_id, b.name AS brand_name, p.category_id,
		c.name AS category_name, p.price, p.sale_price, p.is_on_sale,
		COALESCE((SELECT SUM(i.quantity) FROM inventory i WHERE i.product_id = p.id), 0) AS total_quantity
	FROM products p
	JOIN brands b ON b.id = p.brand_id
	JOIN categories c ON c.id = p.category_id
	WHERE `

func (r *repo) InventoryTotals(ctx context.Context, db *gorm.DB, filter domain.InventoryReportFilter) (*domain.InventorySummary, error) {
	where, args := inventoryFilterClause(filter)
	price := effectivePrice("sp")

	var summary domain.InventorySummary
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS total_products,
			COALESCE(SUM(sp.total_quantity), 0) AS total_quantity,
			COALESCE(SUM(sp.total_quantity * sp.price), 0) AS total_value,
			COALESCE(SUM(sp.total_quantity * `+price+`), 0) AS discounted_value
		 FROM (`+stockedProducts+where+`) sp`,
		args...,
	).Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	summary.TotalDiscount = summary.TotalValue - summary.DiscountedValue
	return &summary, nil
}

func (r *repo) InventoryByBrand(ctx context.Context, db *gorm.DB, filter domain.InventoryReportFilter) ([]domain.GroupInventory, error) {
	return r.inventoryGroup(ctx, db, filter, "brand_name")
}

func (r *repo) InventoryByCategory(ctx context.Context, db *gorm.DB, filter domain.InventoryReportFilter) ([]domain.GroupInventory, error) {
	return r.inventoryGroup(ctx, db, filter, "category_name")
}

func (r *repo) inventoryGroup(ctx context.Context, db *gorm.DB, filter domain.InventoryReportFilter, column string) ([]domain.GroupInventory, error) {
	where, args := inventoryFilterClause(filter)

	var items []domain.GroupInventory
	err := db.WithContext(ctx).Raw(
		`SELECT sp.`+column+` AS name,
			COUNT(*) AS product_count,
			COALESCE(SUM(sp.total_quantity), 0) AS total_quantity,
			COALESCE(SUM(sp.total_quantity * sp.price), 0) AS total_value
		 FROM (`+stockedProducts+where+`) sp
		 GROUP BY sp.`+column+`
		 ORDER BY total_value DESC, name ASC`,
		args...,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) InventoryProducts(ctx context.Context, db *gorm.DB, filter domain.InventoryReportFilter) ([]domain.ProductInventory, error) {
	where, args := inventoryFilterClause(filter)

	var items []domain.ProductInventory
	err := db.WithContext(ctx).Raw(
		`SELECT sp.id, sp.name, sp.brand_name, sp.category_name, sp.price, sp.sale_price,
			sp.is_on_sale, sp.total_quantity
		 FROM (`+stockedProducts+where+`) sp
		 ORDER BY sp.total_quantity DESC, sp.name ASC`,
		args...,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

const discountExpr = "(p.price - p.sale_price) / p.price * 100"

func discountFilterClause(minDiscountPercent float64, categoryID *int64) (string, []any) {
	clauses := []string{
		"p.is_active = TRUE",
		"p.is_on_sale = TRUE",
		"p.sale_price IS NOT NULL",
		"p.price > 0",
	}
	var args []any
	if minDiscountPercent > 0 {
		clauses = append(clauses, discountExpr+" >= ?")
		args = append(args, minDiscountPercent)
	}
	if categoryID != nil {
		clauses = append(clauses, "p.category_id = ?")
		args = append(args, *categoryID)
	}
	return strings.Join(clauses, " AND "), args
}

func (r *repo) DiscountSummary(ctx context.Context, db *gorm.DB, filter domain.PriceAnalysisFilter) (*domain.DiscountSummary, error) {
	where, args := discountFilterClause(filter.MinDiscountPercent, filter.CategoryID)

	var summary domain.DiscountSummary
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(AVG(`+discountExpr+`), 0) AS average_discount,
			COALESCE(MAX(`+discountExpr+`), 0) AS max_discount,
			COUNT(*) AS products_on_sale
		 FROM products p
		 WHERE `+where,
		args...,
	).Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *repo) PriceRanges(ctx context.Context, db *gorm.DB, categoryID *int64) ([]domain.PriceRange, error) {
	price := effectivePrice("p")

	bucket := "CASE"
	for _, b := range priceBuckets {
		if b.upper == 0 {
			continue
		}
		bucket += " WHEN " + price + " < " + formatBound(b.upper) + " THEN '" + b.label + "'"
	}
	bucket += " ELSE '" + priceBuckets[len(priceBuckets)-1].label + "' END"

	where := "p.is_active = TRUE"
	var args []any
	if categoryID != nil {
		where += " AND p.category_id = ?"
		args = append(args, *categoryID)
	}

	var rows []domain.PriceRange
	err := db.WithContext(ctx).Raw(
		`SELECT t.label, COUNT(*) AS count
		 FROM (SELECT `+bucket+` AS label FROM products p WHERE `+where+`) t
		 GROUP BY t.label`,
		args...,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Label] = row.Count
	}
	out := make([]domain.PriceRange, 0, len(priceBuckets))
	for _, b := range priceBuckets {
		if n, ok := counts[b.label]; ok {
			out = append(out, domain.PriceRange{Label: b.label, Count: n})
		}
	}
	return out, nil
}

func (r *repo) MostDiscounted(ctx context.Context, db *gorm.DB, filter domain.MostDiscountedFilter, minDiscountPercent float64) ([]domain.DiscountedProduct, error) {
	where, args := discountFilterClause(minDiscountPercent, filter.CategoryID)
	limit := filter.Limit
	if limit <= 0 {
		limit = 5
	}
	args = append(args, limit)

	var items []domain.DiscountedProduct
	err := db.WithContext(ctx).Raw(
		`SELECT p.id, p.name, b.name AS brand_name, p.price, p.sale_price,
			`+discountExpr+` AS discount_percentage
		 FROM products p
		 JOIN brands b ON b.id = p.brand_id
		 WHERE `+where+`
		 ORDER BY discount_percentage DESC, p.name ASC
		 LIMIT ?`,
		args...,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
