package repository

import (
	"context"
	"fmt"

	"farm-market/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, price, category, quantity, farmer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Category, product.Quantity,
		product.FarmerID, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Msg("product created")
	return nil
}

// GetAll retrieves all products with owner details joined, newest-first.
func (r *productRepository) GetAll(ctx context.Context) ([]model.ProductWithFarmer, error) {
	query := `
		SELECT p.id, p.name, p.price, p.category, p.quantity, p.farmer_id,
		       p.created_at, p.updated_at,
		       f.name, f.location, f.phone
		FROM products p
		JOIN farmers f ON f.id = p.farmer_id
		ORDER BY p.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.ProductWithFarmer
	for rows.Next() {
		var p model.ProductWithFarmer
		err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Category, &p.Quantity, &p.FarmerID,
			&p.CreatedAt, &p.UpdatedAt,
			&p.FarmerName, &p.FarmerLocation, &p.FarmerPhone)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT id, name, price, category, quantity, farmer_id, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Category, &p.Quantity, &p.FarmerID,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, category = $4, quantity = $5, updated_at = now()
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Category, product.Quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// ReserveStock decrements quantity only when enough units are on hand.
// The conditional WHERE clause makes the check-and-decrement a single
// atomic statement, so concurrent orders cannot both pass the check.
func (r *productRepository) ReserveStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, qty int) error {
	query := `
		UPDATE products
		SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2
	`

	ct, err := tx.Exec(ctx, query, id, qty)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Int("qty", qty).
			Msg("failed to reserve stock")
		return fmt.Errorf("failed to reserve stock: %w", err)
	}

	if ct.RowsAffected() == 0 {
		r.logger.Debug().Str("product_id", id.String()).Int("qty", qty).
			Msg("insufficient stock")
		return model.ErrInsufficientStock
	}

	return nil
}

// RestoreStock puts cancelled-order units back. A vanished product is
// tolerated: the order is cancelled either way.
func (r *productRepository) RestoreStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, qty int) error {
	query := `
		UPDATE products
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1
	`

	ct, err := tx.Exec(ctx, query, id, qty)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Int("qty", qty).
			Msg("failed to restore stock")
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	if ct.RowsAffected() == 0 {
		r.logger.Warn().Str("product_id", id.String()).Int("qty", qty).
			Msg("product gone, stock restore skipped")
	}

	return nil
}
