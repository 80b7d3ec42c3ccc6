package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smallbiznis/supportly/internal/config"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.True(t, IsDuplicateKeyErr(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicateKeyErr(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key"})))
	assert.False(t, IsDuplicateKeyErr(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: brands.name")))
	assert.False(t, IsDuplicateKeyErr(errors.New("connection refused")))
}

func TestIsCheckViolationErr(t *testing.T) {
	assert.False(t, IsCheckViolationErr(nil))
	assert.True(t, IsCheckViolationErr(gorm.ErrCheckConstraintViolated))
	assert.True(t, IsCheckViolationErr(&pgconn.PgError{Code: "23514", ConstraintName: "reviews_rating_check"}))
	assert.True(t, IsCheckViolationErr(errors.New("CHECK constraint failed: rating >= 1 AND rating <= 5")))
	assert.False(t, IsCheckViolationErr(errors.New("UNIQUE constraint failed: brands.name")))
}

func TestIsForeignKeyErr(t *testing.T) {
	assert.True(t, IsForeignKeyErr(errors.New("FOREIGN KEY constraint failed")))
	assert.True(t, IsForeignKeyErr(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyErr(errors.New("boom")))
}

func TestDialect(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		d, err := Dialect(config.Config{DBType: "postgres", DBHost: "db", DBPort: "5432"})
		assert.NoError(t, err)
		assert.Equal(t, "postgres", d.Name())
	})
	t.Run("sqlite", func(t *testing.T) {
		d, err := Dialect(config.Config{DBType: "sqlite"})
		assert.NoError(t, err)
		assert.Equal(t, "sqlite", d.Name())
	})
	t.Run("unsupported", func(t *testing.T) {
		_, err := Dialect(config.Config{DBType: "oracle"})
		assert.Error(t, err)
	})
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.Config{DBHost: "h", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "1", DBSSLMode: "disable"})
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable TimeZone=UTC", dsn)
}
