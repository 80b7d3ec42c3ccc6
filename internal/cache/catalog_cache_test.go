package cache

import (
	"testing"

	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
)

func TestCatalogCache(t *testing.T) {
	c := NewCatalogCache()

	_, ok := c.GetCategory("Running")
	assert.False(t, ok)

	c.SetCategory("Running", &catalogdomain.Category{ID: 6, Name: "Running"})
	c.SetCategory("Ghost", nil)

	got, ok := c.GetCategory(" running ")
	assert.True(t, ok)
	assert.Equal(t, int64(6), got.ID)

	_, ok = c.GetCategory("ghost")
	assert.False(t, ok)

	c.SetBrands([]catalogdomain.Brand{{ID: 1, Name: "Nike"}})
	brands, ok := c.GetBrands()
	assert.True(t, ok)
	assert.Len(t, brands, 1)

	c.Invalidate()
	_, ok = c.GetBrands()
	assert.False(t, ok)
	_, ok = c.GetCategory("running")
	assert.False(t, ok)
}
