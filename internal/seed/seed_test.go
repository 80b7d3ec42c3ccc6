package seed

import (
	"bytes"
	"context"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/supportly/internal/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

var referenceTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.ApplySQLiteSchema(context.Background(), db))
	return db
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(42, WithNow(referenceTime))
	b := Generate(42, WithNow(referenceTime))
	assert.Equal(t, a, b)

	c := Generate(43, WithNow(referenceTime))
	assert.NotEqual(t, a.Products[0].ID, c.Products[0].ID)
}

func TestGenerateShape(t *testing.T) {
	ds := Generate(7, WithNow(referenceTime))

	require.Len(t, ds.Brands, 12)
	assert.Equal(t, "Nike", ds.Brands[0].Name)
	assert.Equal(t, "under-armour", *ds.Brands[9].Slug)

	require.Len(t, ds.Categories, 26)
	for _, c := range ds.Categories {
		if c.ID <= 5 {
			assert.Nil(t, c.ParentID, c.Name)
		} else {
			require.NotNil(t, c.ParentID, c.Name)
			assert.LessOrEqual(t, *c.ParentID, int64(5))
		}
	}

	require.Len(t, ds.Products, 19)
	assert.Equal(t, "NIKE-06-0001", ds.Products[0].SKU)
	assert.Equal(t, "Nike Air Zoom Pegasus", ds.Products[0].Name)
	assert.Equal(t, "ADID-06-0011", ds.Products[10].SKU)

	skuPattern := regexp.MustCompile(`^[A-Z]{4}-\d{2}-\d{4}$`)
	for _, p := range ds.Products {
		assert.Regexp(t, skuPattern, p.SKU)
		assert.True(t, p.IsActive)
		if p.IsOnSale {
			require.NotNil(t, p.SalePrice, p.SKU)
			assert.Less(t, *p.SalePrice, p.Price)
			assert.GreaterOrEqual(t, *p.SalePrice, p.Price*0.6-0.01)
		} else {
			assert.Nil(t, p.SalePrice, p.SKU)
		}

		gender := gjson.GetBytes(p.Attributes, "gender").String()
		assert.Contains(t, []string{"Men", "Women"}, gender)
		assert.Equal(t, int64(3), gjson.GetBytes(p.Images, "#").Int())
		assert.True(t, gjson.GetBytes(p.Images, "0.is_primary").Bool())
		assert.Contains(t, gjson.GetBytes(p.Metadata, "search_keywords").String(), strings.ToLower(gender))
	}
}

func TestGenerateInventory(t *testing.T) {
	ds := Generate(11, WithNow(referenceTime))
	require.NotEmpty(t, ds.Inventory)

	colorsByProduct := map[string]map[string]bool{}
	seen := map[string]bool{}
	for _, item := range ds.Inventory {
		assert.GreaterOrEqual(t, item.Quantity, 0)
		key := item.ProductID + "|" + item.Size + "|" + item.Color
		assert.False(t, seen[key], "duplicate variant %s", key)
		seen[key] = true

		if colorsByProduct[item.ProductID] == nil {
			colorsByProduct[item.ProductID] = map[string]bool{}
		}
		colorsByProduct[item.ProductID][item.Color] = true
		assert.NotEmpty(t, gjson.GetBytes(item.LocationData, "color_hex").String())
	}

	require.Len(t, colorsByProduct, len(ds.Products))
	for _, p := range ds.Products {
		n := len(colorsByProduct[p.ID])
		assert.GreaterOrEqual(t, n, 3, p.SKU)
		assert.LessOrEqual(t, n, 6, p.SKU)

		sizes := sizesFor(gjson.GetBytes(p.Attributes, "gender").String())
		for _, item := range ds.Inventory {
			if item.ProductID == p.ID {
				assert.True(t, slices.Contains(sizes, item.Size), item.Size)
			}
		}
	}
}

func TestGenerateReviewsAndRelations(t *testing.T) {
	ds := Generate(3, WithNow(referenceTime))
	require.NotEmpty(t, ds.Reviews)

	names := map[string]string{}
	for _, p := range ds.Products {
		names[p.ID] = p.Name
	}
	for _, r := range ds.Reviews {
		assert.GreaterOrEqual(t, r.Rating, 1)
		assert.LessOrEqual(t, r.Rating, 5)
		assert.False(t, r.CreatedAt.After(referenceTime))
		assert.False(t, r.CreatedAt.Before(referenceTime.AddDate(-1, 0, 0)))

		text := *r.ReviewText
		if !strings.HasPrefix(text, "Good looking shoes") {
			assert.Contains(t, text, names[r.ProductID])
		}
		purchase := gjson.GetBytes(r.Metadata, "purchase_date")
		assert.Equal(t, r.VerifiedPurchase, purchase.Type == gjson.String)
	}

	require.NotEmpty(t, ds.Relations)
	triples := map[string]bool{}
	for _, rel := range ds.Relations {
		assert.NotEqual(t, rel.ProductID, rel.RelatedProductID)
		key := rel.ProductID + "|" + rel.RelatedProductID + "|" + rel.RelationType
		assert.False(t, triples[key], "duplicate relation %s", key)
		triples[key] = true
	}

	// Every Nike running shoe has three similar Nike running shoes to pick from.
	pegasus := ds.Products[0].ID
	similar := 0
	for _, rel := range ds.Relations {
		if rel.ProductID == pegasus && rel.RelationType == "similar" {
			similar++
		}
	}
	assert.Equal(t, 3, similar)
}

func TestJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := Generate(5, WithNow(referenceTime))
	require.NoError(t, WriteJSON(dir, ds))

	loaded, err := ReadJSON(dir)
	require.NoError(t, err)
	assert.Equal(t, ds.Counts(), loaded.Counts())
	assert.Equal(t, ds.Brands, loaded.Brands)
	assert.Equal(t, ds.Products[0].ID, loaded.Products[0].ID)
	assert.JSONEq(t, string(ds.Products[0].Attributes), string(loaded.Products[0].Attributes))
	assert.Equal(t, ds.Products[0].SalePrice, loaded.Products[0].SalePrice)
	assert.Equal(t, ds.Reviews[0].CreatedAt, loaded.Reviews[0].CreatedAt)

	empty, err := ReadJSON(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, empty.Products)
}

func TestWriteSQL(t *testing.T) {
	ds := Generate(9, WithNow(referenceTime))

	var buf bytes.Buffer
	require.NoError(t, WriteSQL(&buf, ds))
	out := buf.String()

	brands := strings.Index(out, "INSERT INTO brands (")
	products := strings.Index(out, "INSERT INTO products (")
	relations := strings.Index(out, "INSERT INTO product_relations (")
	require.GreaterOrEqual(t, brands, 0)
	assert.Less(t, brands, products)
	assert.Less(t, products, relations)
	customers := strings.Index(out, "INSERT INTO customers (")
	orders := strings.Index(out, "INSERT INTO orders (")
	orderItems := strings.Index(out, "INSERT INTO order_items (")
	assert.Less(t, relations, customers)
	assert.Less(t, customers, orders)
	assert.Less(t, orders, orderItems)
	assert.Contains(t, out, "'ORD-110', 'CUST-003', 'Cancelled'")
	assert.Contains(t, out, "SELECT setval(pg_get_serial_sequence('order_items', 'id')")

	assert.Contains(t, out, "'Nike'")
	assert.Contains(t, out, "that''s been a staple")
	assert.Contains(t, out, "::jsonb")
	assert.Contains(t, out, "SELECT setval(pg_get_serial_sequence('reviews', 'id')")
	assert.NotContains(t, out, "pg_get_serial_sequence('products'")
	assert.True(t, strings.HasSuffix(out, "REFRESH MATERIALIZED VIEW product_search;\n"))
	assert.Equal(t, strings.Count(out, "ON CONFLICT DO NOTHING;"), strings.Count(out, "INSERT INTO "))
}

func TestLoad(t *testing.T) {
	db := setupTestDB(t, "seed_load")
	ctx := context.Background()
	ds := Generate(21, WithNow(referenceTime))

	require.NoError(t, Load(ctx, db, ds))

	counts := func() map[string]int {
		out := map[string]int{}
		for table := range ds.Counts() {
			var n int64
			require.NoError(t, db.Table(table).Count(&n).Error)
			out[table] = int(n)
		}
		return out
	}
	assert.Equal(t, ds.Counts(), counts())

	// A second load of the same dataset inserts nothing new.
	require.NoError(t, Load(ctx, db, Generate(21, WithNow(referenceTime))))
	assert.Equal(t, ds.Counts(), counts())

	var reviewCount int64
	require.NoError(t, db.Raw(`SELECT COALESCE(SUM(review_count), 0) FROM product_search`).Scan(&reviewCount).Error)
	assert.Equal(t, int64(len(ds.Reviews)), reviewCount)

	assert.Error(t, Load(ctx, nil, ds))
	assert.Error(t, Load(ctx, db, nil))
}

func TestGenerateOrders(t *testing.T) {
	ds := Generate(11, WithNow(referenceTime))

	require.Len(t, ds.Customers, 3)
	assert.Equal(t, "CUST-001", ds.Customers[0].ID)
	assert.Equal(t, "John Smith", ds.Customers[0].Name)

	require.Len(t, ds.Orders, 10)
	require.Len(t, ds.OrderItems, 13)

	items := map[string][]float64{}
	for i, item := range ds.OrderItems {
		assert.Equal(t, int64(i+1), item.ID)
		assert.GreaterOrEqual(t, item.Quantity, 1)
		assert.LessOrEqual(t, item.Quantity, 2)
		items[item.OrderID] = append(items[item.OrderID], item.UnitPrice*float64(item.Quantity))
	}
	for _, order := range ds.Orders {
		var total float64
		for _, line := range items[order.ID] {
			total += line
		}
		assert.InDelta(t, total, order.Total, 0.001, order.ID)
	}

	byID := map[string]int{}
	for i, order := range ds.Orders {
		byID[order.ID] = i
	}
	assert.Equal(t, "Processing", ds.Orders[byID["ORD-107"]].Status)
	assert.Equal(t, referenceTime.AddDate(0, 0, -1), ds.Orders[byID["ORD-107"]].OrderedAt)
	assert.Equal(t, "Cancelled", ds.Orders[byID["ORD-110"]].Status)
	assert.Equal(t, "CUST-003", ds.Orders[byID["ORD-110"]].CustomerID)
}
