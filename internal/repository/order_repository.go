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

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order within the provided transaction.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, buyer_id, product_id, quantity, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.BuyerID, order.ProductID, order.Quantity,
		order.TotalPrice, order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().Str("order_id", order.ID.String()).Msg("order created")
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT id, buyer_id, product_id, quantity, total_price, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var o model.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.BuyerID, &o.ProductID, &o.Quantity, &o.TotalPrice,
		&o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &o, nil
}

// ListByBuyer retrieves a buyer's orders newest-first. The product join
// is a LEFT JOIN so orders survive product deletion.
func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]model.BuyerOrder, error) {
	query := `
		SELECT o.id, o.buyer_id, o.product_id, o.quantity, o.total_price,
		       o.status, o.created_at, o.updated_at,
		       COALESCE(p.name, ''), COALESCE(p.price, 0)
		FROM orders o
		LEFT JOIN products p ON p.id = o.product_id
		WHERE o.buyer_id = $1
		ORDER BY o.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, buyerID)
	if err != nil {
		r.logger.Error().Err(err).Str("buyer_id", buyerID.String()).Msg("failed to query buyer orders")
		return nil, fmt.Errorf("failed to query buyer orders: %w", err)
	}
	defer rows.Close()

	var orders []model.BuyerOrder
	for rows.Next() {
		var o model.BuyerOrder
		err := rows.Scan(
			&o.ID, &o.BuyerID, &o.ProductID, &o.Quantity, &o.TotalPrice,
			&o.Status, &o.CreatedAt, &o.UpdatedAt,
			&o.ProductName, &o.ProductPrice)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan buyer order row")
			return nil, fmt.Errorf("failed to scan buyer order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating buyer order rows")
		return nil, fmt.Errorf("error iterating buyer orders: %w", err)
	}

	return orders, nil
}

// ListByFarmer retrieves orders against the farmer's products newest-first.
// The product join is inner: an order only shows up here while the
// product that ties it to the farmer still exists.
func (r *orderRepository) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]model.FarmerOrder, error) {
	query := `
		SELECT o.id, o.buyer_id, o.product_id, o.quantity, o.total_price,
		       o.status, o.created_at, o.updated_at,
		       p.name, p.price,
		       COALESCE(b.name, ''), COALESCE(b.email, ''), COALESCE(b.phone, '')
		FROM orders o
		JOIN products p ON p.id = o.product_id
		LEFT JOIN buyers b ON b.id = o.buyer_id
		WHERE p.farmer_id = $1
		ORDER BY o.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, farmerID)
	if err != nil {
		r.logger.Error().Err(err).Str("farmer_id", farmerID.String()).Msg("failed to query farmer orders")
		return nil, fmt.Errorf("failed to query farmer orders: %w", err)
	}
	defer rows.Close()

	var orders []model.FarmerOrder
	for rows.Next() {
		var o model.FarmerOrder
		err := rows.Scan(
			&o.ID, &o.BuyerID, &o.ProductID, &o.Quantity, &o.TotalPrice,
			&o.Status, &o.CreatedAt, &o.UpdatedAt,
			&o.ProductName, &o.ProductPrice,
			&o.BuyerName, &o.BuyerEmail, &o.BuyerPhone)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan farmer order row")
			return nil, fmt.Errorf("failed to scan farmer order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating farmer order rows")
		return nil, fmt.Errorf("error iterating farmer orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}

func (r *orderRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	_, err := tx.Exec(ctx, query, id, status)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}
