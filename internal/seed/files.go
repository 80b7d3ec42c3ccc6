package seed

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// File names match the table each one seeds.
const (
	brandsFile     = "brands.json"
	categoriesFile = "categories.json"
	productsFile   = "products.json"
	inventoryFile  = "inventory.json"
	reviewsFile    = "reviews.json"
	relationsFile  = "product_relations.json"
	customersFile  = "customers.json"
	ordersFile     = "orders.json"
	orderItemsFile = "order_items.json"
)

// sqlBatchSize bounds the rows per INSERT so the product_search refresh
// triggers fire once per batch instead of once per row.
const sqlBatchSize = 250

// WriteJSON stores every table of the dataset as an indented JSON array under dir.
func WriteJSON(dir string, ds *Dataset) error {
	if ds == nil {
		return errors.New("seed dataset is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	files := []struct {
		name string
		rows any
	}{
		{brandsFile, ds.Brands},
		{categoriesFile, ds.Categories},
		{productsFile, ds.Products},
		{inventoryFile, ds.Inventory},
		{reviewsFile, ds.Reviews},
		{relationsFile, ds.Relations},
		{customersFile, ds.Customers},
		{ordersFile, ds.Orders},
		{orderItemsFile, ds.OrderItems},
	}
	for _, f := range files {
		raw, err := json.MarshalIndent(f.rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), append(raw, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}

// ReadJSON loads a dataset written by WriteJSON. Missing files yield empty tables.
func ReadJSON(dir string) (*Dataset, error) {
	ds := &Dataset{}
	files := []struct {
		name string
		dst  any
	}{
		{brandsFile, &ds.Brands},
		{categoriesFile, &ds.Categories},
		{productsFile, &ds.Products},
		{inventoryFile, &ds.Inventory},
		{reviewsFile, &ds.Reviews},
		{relationsFile, &ds.Relations},
		{customersFile, &ds.Customers},
		{ordersFile, &ds.Orders},
		{orderItemsFile, &ds.OrderItems},
	}
	for _, f := range files {
		raw, err := os.ReadFile(filepath.Join(dir, f.name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}
	return ds, nil
}

type sqlTable struct {
	name    string
	columns []string
	rows    [][]string
	serial  bool
}

// WriteSQL renders the dataset as PostgreSQL INSERT statements in dependency
// order, resets the serial sequences and refreshes product_search.
func WriteSQL(w io.Writer, ds *Dataset) error {
	if ds == nil {
		return errors.New("seed dataset is required")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "-- Supportly Shoe Store seed data\n")
	fmt.Fprint(bw, "-- Generated by supportly seed sql\n\n")

	tables := sqlTables(ds)
	for _, t := range tables {
		fmt.Fprintf(bw, "-- %s data\n-- %d records\n\n", t.name, len(t.rows))
		for start := 0; start < len(t.rows); start += sqlBatchSize {
			end := min(start+sqlBatchSize, len(t.rows))
			fmt.Fprintf(bw, "INSERT INTO %s (%s) VALUES\n", t.name, strings.Join(t.columns, ", "))
			for i, row := range t.rows[start:end] {
				sep := ","
				if start+i == end-1 {
					sep = "\nON CONFLICT DO NOTHING;"
				}
				fmt.Fprintf(bw, "    (%s)%s\n", strings.Join(row, ", "), sep)
			}
		}
		fmt.Fprint(bw, "\n")
	}

	fmt.Fprint(bw, "-- Align serial sequences with the explicit ids above\n")
	for _, t := range tables {
		if !t.serial {
			continue
		}
		fmt.Fprintf(bw, "SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %[1]s));\n", t.name)
	}

	fmt.Fprint(bw, "\n-- Refresh materialized view\n")
	fmt.Fprint(bw, "REFRESH MATERIALIZED VIEW product_search;\n")
	return bw.Flush()
}

func sqlTables(ds *Dataset) []sqlTable {
	brands := sqlTable{
		name:    "brands",
		columns: []string{"id", "name", "slug", "description", "logo_url", "website_url", "created_at", "updated_at"},
		serial:  true,
	}
	for _, b := range ds.Brands {
		brands.rows = append(brands.rows, []string{
			sqlInt(b.ID), sqlText(b.Name), sqlNullText(b.Slug), sqlNullText(b.Description),
			sqlNullText(b.LogoURL), sqlNullText(b.WebsiteURL), sqlTime(b.CreatedAt), sqlTime(b.UpdatedAt),
		})
	}

	categories := sqlTable{
		name:    "categories",
		columns: []string{"id", "name", "slug", "description", "parent_id", "created_at", "updated_at"},
		serial:  true,
	}
	for _, c := range ds.Categories {
		parent := "NULL"
		if c.ParentID != nil {
			parent = sqlInt(*c.ParentID)
		}
		categories.rows = append(categories.rows, []string{
			sqlInt(c.ID), sqlText(c.Name), sqlNullText(c.Slug), sqlNullText(c.Description),
			parent, sqlTime(c.CreatedAt), sqlTime(c.UpdatedAt),
		})
	}

	products := sqlTable{
		name: "products",
		columns: []string{
			"id", "sku", "name", "description", "brand_id", "category_id", "price", "sale_price",
			"is_on_sale", "is_featured", "is_active", "attributes", "images", "metadata", "created_at", "updated_at",
		},
	}
	for _, p := range ds.Products {
		sale := "NULL"
		if p.SalePrice != nil {
			sale = sqlFloat(*p.SalePrice)
		}
		products.rows = append(products.rows, []string{
			sqlText(p.ID), sqlText(p.SKU), sqlText(p.Name), sqlNullText(p.Description),
			sqlInt(p.BrandID), sqlInt(p.CategoryID), sqlFloat(p.Price), sale,
			sqlBool(p.IsOnSale), sqlBool(p.IsFeatured), sqlBool(p.IsActive),
			sqlJSON(p.Attributes), sqlJSON(p.Images), sqlJSON(p.Metadata),
			sqlTime(p.CreatedAt), sqlTime(p.UpdatedAt),
		})
	}

	inventory := sqlTable{
		name:    "inventory",
		columns: []string{"id", "product_id", "size", "color", "quantity", "location_data", "created_at", "updated_at"},
		serial:  true,
	}
	for _, i := range ds.Inventory {
		inventory.rows = append(inventory.rows, []string{
			sqlInt(i.ID), sqlText(i.ProductID), sqlText(i.Size), sqlText(i.Color),
			strconv.Itoa(i.Quantity), sqlJSON(i.LocationData), sqlTime(i.CreatedAt), sqlTime(i.UpdatedAt),
		})
	}

	reviews := sqlTable{
		name: "reviews",
		columns: []string{
			"id", "product_id", "customer_name", "rating", "review_text", "verified_purchase",
			"metadata", "created_at", "updated_at",
		},
		serial: true,
	}
	for _, r := range ds.Reviews {
		reviews.rows = append(reviews.rows, []string{
			sqlInt(r.ID), sqlText(r.ProductID), sqlNullText(r.CustomerName), strconv.Itoa(r.Rating),
			sqlNullText(r.ReviewText), sqlBool(r.VerifiedPurchase), sqlJSON(r.Metadata),
			sqlTime(r.CreatedAt), sqlTime(r.UpdatedAt),
		})
	}

	relations := sqlTable{
		name:    "product_relations",
		columns: []string{"id", "product_id", "related_product_id", "relation_type", "created_at"},
		serial:  true,
	}
	for _, r := range ds.Relations {
		relations.rows = append(relations.rows, []string{
			sqlInt(r.ID), sqlText(r.ProductID), sqlText(r.RelatedProductID), sqlText(r.RelationType),
			sqlTime(r.CreatedAt),
		})
	}

	customers := sqlTable{
		name:    "customers",
		columns: []string{"id", "name", "email", "address", "created_at", "updated_at"},
	}
	for _, c := range ds.Customers {
		customers.rows = append(customers.rows, []string{
			sqlText(c.ID), sqlText(c.Name), sqlText(c.Email), sqlNullText(c.Address),
			sqlTime(c.CreatedAt), sqlTime(c.UpdatedAt),
		})
	}

	orders := sqlTable{
		name:    "orders",
		columns: []string{"id", "customer_id", "status", "total", "ordered_at", "created_at", "updated_at"},
	}
	for _, o := range ds.Orders {
		orders.rows = append(orders.rows, []string{
			sqlText(o.ID), sqlText(o.CustomerID), sqlText(o.Status), sqlFloat(o.Total),
			sqlTime(o.OrderedAt), sqlTime(o.CreatedAt), sqlTime(o.UpdatedAt),
		})
	}

	orderItems := sqlTable{
		name:    "order_items",
		columns: []string{"id", "order_id", "product_code", "product_name", "quantity", "unit_price", "created_at"},
		serial:  true,
	}
	for _, i := range ds.OrderItems {
		orderItems.rows = append(orderItems.rows, []string{
			sqlInt(i.ID), sqlText(i.OrderID), sqlText(i.ProductCode), sqlText(i.ProductName),
			strconv.Itoa(i.Quantity), sqlFloat(i.UnitPrice), sqlTime(i.CreatedAt),
		})
	}

	return []sqlTable{brands, categories, products, inventory, reviews, relations, customers, orders, orderItems}
}

func sqlText(s string) string { return pq.QuoteLiteral(s) }

func sqlNullText(s *string) string {
	if s == nil {
		return "NULL"
	}
	return pq.QuoteLiteral(*s)
}

func sqlInt(v int64) string { return strconv.FormatInt(v, 10) }

func sqlFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func sqlBool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// sqlJSON leaves empty documents to the column default.
func sqlJSON(v datatypes.JSON) string {
	if len(v) == 0 {
		return "DEFAULT"
	}
	return pq.QuoteLiteral(string(v)) + "::jsonb"
}

func sqlTime(t time.Time) string {
	if t.IsZero() {
		return "DEFAULT"
	}
	return pq.QuoteLiteral(t.UTC().Format(time.RFC3339Nano))
}
