package repository

import (
	"context"
	"errors"
	"fmt"

	"farm-market/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// buyerRepository implements the BuyerRepository interface using PostgreSQL.
type buyerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBuyerRepository creates a new PostgreSQL-backed buyer repository.
func NewBuyerRepository(pool *pgxpool.Pool, logger zerolog.Logger) BuyerRepository {
	return &buyerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "buyer").Logger(),
	}
}

func (r *buyerRepository) Create(ctx context.Context, buyer *model.Buyer) error {
	query := `
		INSERT INTO buyers (id, name, email, phone, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		buyer.ID, buyer.Name, buyer.Email, buyer.Phone, buyer.PasswordHash, buyer.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrDuplicateEmail
		}
		r.logger.Error().Err(err).Str("email", buyer.Email).Msg("failed to create buyer")
		return fmt.Errorf("failed to create buyer: %w", err)
	}

	r.logger.Debug().Str("buyer_id", buyer.ID.String()).Msg("buyer created")
	return nil
}

func (r *buyerRepository) GetAll(ctx context.Context) ([]model.Buyer, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at
		FROM buyers
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query buyers")
		return nil, fmt.Errorf("failed to query buyers: %w", err)
	}
	defer rows.Close()

	var buyers []model.Buyer
	for rows.Next() {
		var b model.Buyer
		err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.PasswordHash, &b.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan buyer row")
			return nil, fmt.Errorf("failed to scan buyer: %w", err)
		}
		buyers = append(buyers, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating buyer rows")
		return nil, fmt.Errorf("error iterating buyers: %w", err)
	}

	return buyers, nil
}

func (r *buyerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Buyer, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at
		FROM buyers
		WHERE id = $1
	`

	var b model.Buyer
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.PasswordHash, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("buyer_id", id.String()).Msg("buyer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("buyer_id", id.String()).Msg("failed to query buyer")
		return nil, fmt.Errorf("failed to query buyer: %w", err)
	}

	return &b, nil
}

func (r *buyerRepository) GetByEmail(ctx context.Context, email string) (*model.Buyer, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at
		FROM buyers
		WHERE email = $1
	`

	var b model.Buyer
	err := r.pool.QueryRow(ctx, query, email).
		Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.PasswordHash, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query buyer by email")
		return nil, fmt.Errorf("failed to query buyer by email: %w", err)
	}

	return &b, nil
}

func (r *buyerRepository) Update(ctx context.Context, buyer *model.Buyer) error {
	query := `
		UPDATE buyers
		SET name = $2, email = $3, phone = $4, password_hash = $5
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		buyer.ID, buyer.Name, buyer.Email, buyer.Phone, buyer.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrDuplicateEmail
		}
		r.logger.Error().Err(err).Str("buyer_id", buyer.ID.String()).Msg("failed to update buyer")
		return fmt.Errorf("failed to update buyer: %w", err)
	}

	return nil
}

func (r *buyerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM buyers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("buyer_id", id.String()).Msg("failed to delete buyer")
		return fmt.Errorf("failed to delete buyer: %w", err)
	}

	r.logger.Debug().Str("buyer_id", id.String()).Msg("buyer deleted")
	return nil
}
