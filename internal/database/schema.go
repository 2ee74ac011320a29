package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full DDL. The unique constraint on (cart_id,
// product_variant_id) backs the atomic cart-line upsert; quantity checks
// enforce the minimums the services assume.
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'customer',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) UNIQUE NOT NULL,
		price DECIMAL(10, 2) NOT NULL,
		description TEXT NOT NULL,
		micro_story TEXT NOT NULL,
		images JSONB NOT NULL DEFAULT '[]',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS product_variants (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		color VARCHAR(100) NOT NULL,
		sku VARCHAR(100) UNIQUE NOT NULL,
		stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0)
	);

	CREATE TABLE IF NOT EXISTS carts (
		id UUID PRIMARY KEY,
		user_id UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS cart_items (
		id UUID PRIMARY KEY,
		cart_id UUID NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
		product_variant_id UUID NOT NULL REFERENCES product_variants(id),
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		UNIQUE (cart_id, product_variant_id)
	);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		total_amount DECIMAL(10, 2) NOT NULL,
		payment_provider VARCHAR(30) NOT NULL,
		tracking_number VARCHAR(100),
		cancellation_reason VARCHAR(255),
		refund_status VARCHAR(20),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_variant_id UUID NOT NULL REFERENCES product_variants(id),
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		price_at_purchase DECIMAL(10, 2) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY,
		order_id UUID UNIQUE NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		provider VARCHAR(30) NOT NULL,
		status VARCHAR(20) NOT NULL,
		external_id VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_product_variants_product_id ON product_variants(product_id);
	CREATE INDEX IF NOT EXISTS idx_carts_user_id ON carts(user_id);
	CREATE INDEX IF NOT EXISTS idx_cart_items_cart_id ON cart_items(cart_id);
	CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

// Migrate applies the schema. All statements are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
