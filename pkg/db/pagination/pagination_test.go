package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Page{Limit: 10, Offset: 0}, Normalize(0, -4))
	assert.Equal(t, Page{Limit: 100, Offset: 20}, Normalize(500, 20))
	assert.Equal(t, Page{Limit: 5, Offset: 5}, Normalize(5, 5))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(1, 0))
	assert.False(t, Valid(0, 0))
	assert.False(t, Valid(101, 0))
	assert.False(t, Valid(10, -1))
}
