package seed

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/supportly/internal/catalog/domain"
	ordersdomain "github.com/smallbiznis/supportly/internal/orders/domain"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
)

// Dataset is a complete synthetic catalog plus the demo customer orders, in
// insertion order.
type Dataset struct {
	Brands     []domain.Brand
	Categories []domain.Category
	Products   []domain.Product
	Inventory  []domain.Inventory
	Reviews    []domain.Review
	Relations  []domain.ProductRelation
	Customers  []ordersdomain.Customer
	Orders     []ordersdomain.Order
	OrderItems []ordersdomain.OrderItem
}

// Tables lists the seeded tables in load order.
var Tables = []string{
	"brands", "categories", "products", "inventory", "reviews", "product_relations",
	"customers", "orders", "order_items",
}

// Counts reports the number of rows per table.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		"brands":            len(d.Brands),
		"categories":        len(d.Categories),
		"products":          len(d.Products),
		"inventory":         len(d.Inventory),
		"reviews":           len(d.Reviews),
		"product_relations": len(d.Relations),
		"customers":         len(d.Customers),
		"orders":            len(d.Orders),
		"order_items":       len(d.OrderItems),
	}
}

type Option func(*generator)

// WithNow fixes the reference time used for timestamps and review dates.
func WithNow(now time.Time) Option {
	return func(g *generator) {
		g.now = now.UTC()
	}
}

type generator struct {
	rng *rand.Rand
	now time.Time
}

// Generate builds the synthetic catalog. The same seed and reference time
// always produce the same dataset.
func Generate(seed int64, opts ...Option) *Dataset {
	g := &generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(g)
	}

	ds := &Dataset{
		Brands:     g.brands(),
		Categories: g.categories(),
	}
	ds.Products = g.products(ds.Brands, ds.Categories)
	ds.Inventory = g.inventory(ds.Products)
	ds.Reviews = g.reviews(ds.Products)
	ds.Relations = g.relations(ds.Products)
	ds.Customers = g.customers()
	ds.Orders, ds.OrderItems = g.orders()
	return ds
}

func (g *generator) brands() []domain.Brand {
	out := make([]domain.Brand, 0, len(brandSeeds))
	for _, b := range brandSeeds {
		out = append(out, domain.Brand{
			ID:          b.id,
			Name:        b.name,
			Slug:        ptr(slug.Make(b.name)),
			Description: ptr(b.description),
			LogoURL:     ptr("https://example.com/logos/" + b.logo + ".png"),
			WebsiteURL:  ptr(b.website),
			CreatedAt:   g.now,
			UpdatedAt:   g.now,
		})
	}
	return out
}

func (g *generator) categories() []domain.Category {
	out := make([]domain.Category, 0, len(categorySeeds))
	for _, c := range categorySeeds {
		category := domain.Category{
			ID:          c.id,
			Name:        c.name,
			Slug:        ptr(slug.Make(c.name)),
			Description: ptr(c.description),
			CreatedAt:   g.now,
			UpdatedAt:   g.now,
		}
		if c.parent != 0 {
			category.ParentID = ptr(c.parent)
		}
		out = append(out, category)
	}
	return out
}

type specifications struct {
	Weight      string `json:"weight"`
	HeelDrop    string `json:"heel_drop"`
	ArchSupport string `json:"arch_support"`
	Closure     string `json:"closure"`
	Outsole     string `json:"outsole"`
	Midsole     string `json:"midsole"`
}

type productAttributes struct {
	Gender           string         `json:"gender"`
	Materials        []string       `json:"materials"`
	Features         []string       `json:"features"`
	Specifications   specifications `json:"specifications"`
	CareInstructions string         `json:"care_instructions"`
}

type productImage struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

type productMetadata struct {
	SearchKeywords []string `json:"search_keywords"`
}

func (g *generator) products(brands []domain.Brand, categories []domain.Category) []domain.Product {
	categoryNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	var out []domain.Product
	counter := 1
	for _, brand := range brands {
		groups, ok := productTemplates[brand.Name]
		if !ok {
			continue
		}
		prefix := skuPrefix(brand.Name)

		for _, group := range groups {
			categoryName, ok := categoryNames[group.categoryID]
			if !ok {
				categoryName = "General"
			}

			for _, tpl := range group.templates {
				sku := fmt.Sprintf("%s-%02d-%04d", prefix, group.categoryID, counter)
				price := g.price(group.categoryID)
				salePrice, onSale := g.salePrice(price)
				features := g.features(group.categoryID)
				attrs := g.attributes(tpl, features)

				keywords := []string{
					strings.ToLower(brand.Name),
					strings.ToLower(tpl.name),
					strings.ToLower(categoryName),
					strings.ToLower(attrs.Gender),
				}
				for _, m := range attrs.Materials {
					keywords = append(keywords, strings.ToLower(m))
				}

				images := make([]productImage, 0, 3)
				for i := 1; i <= 3; i++ {
					images = append(images, productImage{
						URL:       fmt.Sprintf("https://example.com/images/%s_%d.jpg", sku, i),
						IsPrimary: i == 1,
					})
				}

				out = append(out, domain.Product{
					ID:          uuid.Must(uuid.NewRandomFromReader(g.rng)).String(),
					SKU:         sku,
					Name:        brand.Name + " " + tpl.name,
					Description: ptr(describe(tpl.description, features)),
					BrandID:     brand.ID,
					CategoryID:  group.categoryID,
					Price:       price,
					SalePrice:   salePrice,
					IsOnSale:    onSale,
					IsFeatured:  g.rng.Float64() < 0.2,
					IsActive:    true,
					Attributes:  mustJSON(attrs),
					Images:      mustJSON(images),
					Metadata:    mustJSON(productMetadata{SearchKeywords: keywords}),
					CreatedAt:   g.now,
					UpdatedAt:   g.now,
				})
				counter++
			}
		}
	}
	return out
}

func (g *generator) attributes(tpl productTemplate, features []string) productAttributes {
	gender := tpl.gender
	if gender == "" {
		gender = g.choice([]string{"Men", "Women"})
	}
	return productAttributes{
		Gender:    gender,
		Materials: g.sample(materials, g.between(1, 3)),
		Features:  features,
		Specifications: specifications{
			Weight:      fmt.Sprintf("%d g", g.between(200, 450)),
			HeelDrop:    fmt.Sprintf("%d mm", g.between(0, 12)),
			ArchSupport: g.choice(archSupports),
			Closure:     g.choice(closures),
			Outsole:     g.choice(outsoles),
			Midsole:     g.choice(midsoles),
		},
		CareInstructions: careInstructions,
	}
}

func (g *generator) features(categoryID int64) []string {
	group, ok := featureGroups[categoryID]
	if !ok {
		group = "Casual"
	}
	return g.sample(featureDescriptions[group], g.between(2, 4))
}

func describe(base string, features []string) string {
	if len(features) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\nFeatures:")
	for _, f := range features {
		b.WriteString("\n• ")
		b.WriteString(f)
	}
	return b.String()
}

func (g *generator) price(categoryID int64) float64 {
	r, ok := categoryPriceRanges[categoryID]
	if !ok {
		r = defaultPriceRange
	}
	return round2(g.uniform(r.min, r.max))
}

func (g *generator) salePrice(price float64) (*float64, bool) {
	if g.rng.Float64() >= 0.3 {
		return nil, false
	}
	discount := g.uniform(0.1, 0.4)
	return ptr(round2(price * (1 - discount))), true
}

type locationData struct {
	Warehouse string `json:"warehouse"`
	Aisle     string `json:"aisle"`
	Shelf     int    `json:"shelf"`
	ColorHex  string `json:"color_hex"`
}

func (g *generator) inventory(products []domain.Product) []domain.Inventory {
	var out []domain.Inventory
	var id int64 = 1
	for _, p := range products {
		sizes := sizesFor(gjson.GetBytes(p.Attributes, "gender").String())
		picked := g.sampleColors(g.between(3, 6))

		// Middle sizes stock up to twice as many pairs as the extremes.
		mid := len(sizes) / 2
		maxDistance := max(mid, len(sizes)-mid-1)

		for i, size := range sizes {
			for _, c := range picked {
				popularity := 1.0
				if maxDistance > 0 {
					popularity = 1 - float64(abs(i-mid))/float64(maxDistance)
				}
				quantity := int(math.Round(float64(g.between(3, 20)) * (1 + popularity)))
				if g.rng.Float64() < 0.1 {
					quantity = 0
				}

				out = append(out, domain.Inventory{
					ID:        id,
					ProductID: p.ID,
					Size:      size,
					Color:     c.name,
					Quantity:  quantity,
					LocationData: mustJSON(locationData{
						Warehouse: g.choice(warehouses),
						Aisle:     fmt.Sprintf("%s%d", g.choice(aisles), g.between(1, 20)),
						Shelf:     g.between(1, 5),
						ColorHex:  c.hex,
					}),
					CreatedAt: g.now,
					UpdatedAt: g.now,
				})
				id++
			}
		}
	}
	return out
}

type reviewMetadata struct {
	HelpfulVotes int     `json:"helpful_votes"`
	PurchaseDate *string `json:"purchase_date"`
	ReviewedOn   string  `json:"reviewed_on"`
}

func (g *generator) reviews(products []domain.Product) []domain.Review {
	start := g.now.AddDate(0, 0, -365)

	var out []domain.Review
	var id int64 = 1
	for _, p := range products {
		count := g.between(0, 10)
		if p.IsFeatured {
			count = g.between(5, 20)
		}
		if p.IsOnSale {
			count += g.between(0, 5)
		}

		for range count {
			rating := g.rating()
			verified := g.rng.Float64() < 0.7
			reviewedOn := start.AddDate(0, 0, g.rng.Intn(365))

			votes := g.between(0, 5)
			if rating == 1 || rating == 5 {
				votes = g.between(0, 20)
			}
			meta := reviewMetadata{
				HelpfulVotes: votes,
				ReviewedOn:   reviewedOn.Format(time.RFC3339),
			}
			if verified {
				purchased := reviewedOn.AddDate(0, 0, -g.between(7, 90))
				meta.PurchaseDate = ptr(purchased.Format(time.RFC3339))
			}

			out = append(out, domain.Review{
				ID:               id,
				ProductID:        p.ID,
				CustomerName:     ptr(g.choice(customerNames)),
				Rating:           rating,
				ReviewText:       ptr(g.reviewText(p.Name, rating)),
				VerifiedPurchase: verified,
				Metadata:         mustJSON(meta),
				CreatedAt:        reviewedOn,
				UpdatedAt:        reviewedOn,
			})
			id++
		}
	}
	return out
}

func (g *generator) rating() int {
	roll := g.rng.Float64()
	for i, w := range ratingWeights {
		if roll < w {
			return i + 1
		}
		roll -= w
	}
	return len(ratingWeights)
}

func (g *generator) reviewText(productName string, rating int) string {
	templates := negativeReviews
	switch {
	case rating >= 4:
		templates = positiveReviews
	case rating >= 3:
		templates = neutralReviews
	}
	return strings.ReplaceAll(g.choice(templates), "%s", productName)
}

type brandCategory struct {
	brandID    int64
	categoryID int64
}

func (g *generator) relations(products []domain.Product) []domain.ProductRelation {
	groups := make(map[brandCategory][]int)
	var brandOrder []int64
	categoryOrder := make(map[int64][]int64)
	for i, p := range products {
		key := brandCategory{p.BrandID, p.CategoryID}
		if _, ok := categoryOrder[p.BrandID]; !ok {
			brandOrder = append(brandOrder, p.BrandID)
		}
		if _, ok := groups[key]; !ok {
			categoryOrder[p.BrandID] = append(categoryOrder[p.BrandID], p.CategoryID)
		}
		groups[key] = append(groups[key], i)
	}

	var out []domain.ProductRelation
	var id int64 = 1
	add := func(from int, related []int, relationType string) {
		for _, idx := range related {
			out = append(out, domain.ProductRelation{
				ID:               id,
				ProductID:        products[from].ID,
				RelatedProductID: products[idx].ID,
				RelationType:     relationType,
				CreatedAt:        g.now,
			})
			id++
		}
	}

	for i, p := range products {
		similar := without(groups[brandCategory{p.BrandID, p.CategoryID}], i)
		add(i, g.sampleIndexes(similar, min(len(similar), 3)), domain.RelationSimilar)

		var alternatives []int
		for _, brandID := range brandOrder {
			if brandID != p.BrandID {
				alternatives = append(alternatives, groups[brandCategory{brandID, p.CategoryID}]...)
			}
		}
		add(i, g.sampleIndexes(alternatives, min(len(alternatives), 2)), domain.RelationAlternative)

		var accessories []int
		for _, categoryID := range categoryOrder[p.BrandID] {
			if categoryID != p.CategoryID {
				accessories = append(accessories, groups[brandCategory{p.BrandID, categoryID}]...)
			}
		}
		add(i, g.sampleIndexes(accessories, min(len(accessories), 1)), domain.RelationAccessory)

		if g.rng.Float64() < 0.3 && len(products) > 1 {
			others := make([]int, 0, len(products)-1)
			for j := range products {
				if j != i {
					others = append(others, j)
				}
			}
			add(i, g.sampleIndexes(others, g.between(1, min(2, len(others)))), domain.RelationRecommendedWith)
		}
	}
	return out
}

// between returns a uniform integer in [lo, hi].
func (g *generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *generator) choice(items []string) string {
	return items[g.rng.Intn(len(items))]
}

func (g *generator) sample(items []string, n int) []string {
	n = min(n, len(items))
	out := make([]string, 0, n)
	for _, idx := range g.rng.Perm(len(items))[:n] {
		out = append(out, items[idx])
	}
	return out
}

func (g *generator) sampleColors(n int) []color {
	n = min(n, len(colors))
	out := make([]color, 0, n)
	for _, idx := range g.rng.Perm(len(colors))[:n] {
		out = append(out, colors[idx])
	}
	return out
}

func (g *generator) sampleIndexes(items []int, n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, 0, n)
	for _, idx := range g.rng.Perm(len(items))[:n] {
		out = append(out, items[idx])
	}
	return out
}

func skuPrefix(brandName string) string {
	name := strings.ReplaceAll(brandName, " ", "")
	if len(name) > 4 {
		name = name[:4]
	}
	return strings.ToUpper(name)
}

func without(items []int, skip int) []int {
	out := make([]int, 0, len(items))
	for _, v := range items {
		if v != skip {
			out = append(out, v)
		}
	}
	return out
}

func mustJSON(v any) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("seed: marshal %T: %v", v, err))
	}
	return datatypes.JSON(raw)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func ptr[T any](v T) *T {
	return &v
}
