package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the full marketplace schema. Orders deliberately carry no
// foreign keys: an order may outlive its product, and cancellation then
// skips the stock restore.
const Schema = `
	CREATE TABLE IF NOT EXISTS farmers (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(50) NOT NULL,
		location VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS buyers (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(50) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price NUMERIC(10, 2) NOT NULL CHECK (price > 0),
		category VARCHAR(100) NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 0),
		farmer_id UUID NOT NULL REFERENCES farmers(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		buyer_id UUID NOT NULL,
		product_id UUID NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		total_price NUMERIC(12, 2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_products_farmer ON products(farmer_id);
	CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id);
	CREATE INDEX IF NOT EXISTS idx_orders_product ON orders(product_id);
`

// Migrate applies the schema. Statements are idempotent so repeated
// startups are safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info().Msg("database schema applied")
	return nil
}
