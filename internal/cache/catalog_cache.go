package cache

import (
	"strings"
	"time"

	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
)

const (
	defaultCategoryTTL = 10 * time.Minute
	defaultListTTL     = 5 * time.Minute
	brandsKey          = "brands"
	categoriesKey      = "categories"
)

// CatalogCache stores slow-changing catalog lookups used by the agents.
type CatalogCache interface {
	GetCategory(name string) (*catalogdomain.Category, bool)
	SetCategory(name string, category *catalogdomain.Category)
	GetBrands() ([]catalogdomain.Brand, bool)
	SetBrands(brands []catalogdomain.Brand)
	GetCategories() ([]catalogdomain.Category, bool)
	SetCategories(categories []catalogdomain.Category)
	Invalidate()
}

type catalogCache struct {
	categories  Cache[string, *catalogdomain.Category]
	brandList   Cache[string, []catalogdomain.Brand]
	categoryAll Cache[string, []catalogdomain.Category]
	categoryTTL time.Duration
	listTTL     time.Duration
}

// NewCatalogCache returns an in-memory catalog lookup cache.
func NewCatalogCache() CatalogCache {
	return &catalogCache{
		categories:  NewTTLCache[string, *catalogdomain.Category](),
		brandList:   NewTTLCache[string, []catalogdomain.Brand](),
		categoryAll: NewTTLCache[string, []catalogdomain.Category](),
		categoryTTL: defaultCategoryTTL,
		listTTL:     defaultListTTL,
	}
}

func (c *catalogCache) GetCategory(name string) (*catalogdomain.Category, bool) {
	return c.categories.Get(cacheKey("category", name))
}

func (c *catalogCache) SetCategory(name string, category *catalogdomain.Category) {
	if category == nil {
		return
	}
	c.categories.Set(cacheKey("category", name), category, c.categoryTTL)
}

func (c *catalogCache) GetBrands() ([]catalogdomain.Brand, bool) {
	return c.brandList.Get(brandsKey)
}

func (c *catalogCache) SetBrands(brands []catalogdomain.Brand) {
	if len(brands) == 0 {
		return
	}
	c.brandList.Set(brandsKey, brands, c.listTTL)
}

func (c *catalogCache) GetCategories() ([]catalogdomain.Category, bool) {
	return c.categoryAll.Get(categoriesKey)
}

func (c *catalogCache) SetCategories(categories []catalogdomain.Category) {
	if len(categories) == 0 {
		return
	}
	c.categoryAll.Set(categoriesKey, categories, c.listTTL)
}

// Invalidate drops every cached lookup, used after catalog writes.
func (c *catalogCache) Invalidate() {
	c.categories.Purge()
	c.brandList.Purge()
	c.categoryAll.Purge()
}

func cacheKey(parts ...string) string {
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		values = append(values, strings.ToLower(trimmed))
	}
	return strings.Join(values, "|")
}
