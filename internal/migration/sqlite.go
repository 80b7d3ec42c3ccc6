package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// sqliteSchema mirrors the PostgreSQL migrations for local development and tests.
// product_search is a plain view here, so it is always current.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS brands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		slug TEXT UNIQUE,
		description TEXT,
		logo_url TEXT,
		website_url TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		slug TEXT UNIQUE,
		description TEXT,
		parent_id INTEGER REFERENCES categories(id),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		sku TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT,
		brand_id INTEGER NOT NULL REFERENCES brands(id),
		category_id INTEGER NOT NULL REFERENCES categories(id),
		price REAL NOT NULL CHECK (price >= 0),
		sale_price REAL CHECK (sale_price IS NULL OR sale_price >= 0),
		is_on_sale BOOLEAN NOT NULL DEFAULT 0,
		is_featured BOOLEAN NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		attributes TEXT NOT NULL DEFAULT '{}',
		images TEXT NOT NULL DEFAULT '[]',
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		size TEXT NOT NULL,
		color TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		location_data TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (product_id, size, color)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		customer_name TEXT,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		review_text TEXT,
		verified_purchase BOOLEAN NOT NULL DEFAULT 0,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS product_relations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		related_product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		relation_type TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (product_id, related_product_id, relation_type),
		CHECK (product_id <> related_product_id)
	)`,
	`CREATE VIEW IF NOT EXISTS product_search AS
	SELECT
		p.id,
		p.sku,
		p.name,
		p.description,
		p.brand_id,
		b.name AS brand_name,
		p.category_id,
		c.name AS category_name,
		c.parent_id AS category_parent_id,
		p.price,
		p.sale_price,
		p.is_on_sale,
		p.is_featured,
		p.is_active,
		p.attributes,
		p.images,
		p.metadata,
		COALESCE((
			SELECT json_group_array(json_object('size', i.size, 'color', i.color, 'quantity', i.quantity))
			FROM inventory i
			WHERE i.product_id = p.id
		), '[]') AS inventory,
		COALESCE((
			SELECT ROUND(AVG(r.rating), 2)
			FROM reviews r
			WHERE r.product_id = p.id
		), 0) AS avg_rating,
		(
			SELECT COUNT(*)
			FROM reviews r
			WHERE r.product_id = p.id
		) AS review_count
	FROM products p
	JOIN brands b ON b.id = p.brand_id
	JOIN categories c ON c.id = p.category_id`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL DEFAULT 'anonymous',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGINT PRIMARY KEY,
		conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		sender TEXT NOT NULL CHECK (sender IN ('user', 'ai')),
		message_text TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_surveys (
		id TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		satisfaction INTEGER NOT NULL CHECK (satisfaction BETWEEN 1 AND 5),
		feedback TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		address TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		status TEXT NOT NULL CHECK (status IN ('Processing', 'Shipped', 'Delivered', 'Cancelled')),
		total REAL NOT NULL DEFAULT 0 CHECK (total >= 0),
		ordered_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_code TEXT NOT NULL,
		product_name TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price REAL NOT NULL CHECK (unit_price >= 0),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

var sqliteUpdatedAtTables = []string{"brands", "categories", "products", "inventory", "reviews", "conversations", "messages", "customers", "orders"}

// ApplySQLiteSchema creates the catalog, conversation and orders schema on a SQLite handle.
func ApplySQLiteSchema(ctx context.Context, conn *gorm.DB) error {
	db := conn.WithContext(ctx)
	for _, stmt := range sqliteSchema {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	for _, table := range sqliteUpdatedAtTables {
		stmt := fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS %[1]s_set_updated_at
			AFTER UPDATE ON %[1]s FOR EACH ROW WHEN NEW.updated_at = OLD.updated_at
			BEGIN
				UPDATE %[1]s SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
			END`, table)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create %s updated_at trigger: %w", table, err)
		}
	}
	return nil
}
