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

const uniqueViolation = "23505"

// farmerRepository implements the FarmerRepository interface using PostgreSQL.
type farmerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFarmerRepository creates a new PostgreSQL-backed farmer repository.
func NewFarmerRepository(pool *pgxpool.Pool, logger zerolog.Logger) FarmerRepository {
	return &farmerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "farmer").Logger(),
	}
}

func (r *farmerRepository) Create(ctx context.Context, farmer *model.Farmer) error {
	query := `
		INSERT INTO farmers (id, name, email, phone, location, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		farmer.ID, farmer.Name, farmer.Email, farmer.Phone, farmer.Location,
		farmer.PasswordHash, farmer.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrDuplicateEmail
		}
		r.logger.Error().Err(err).Str("email", farmer.Email).Msg("failed to create farmer")
		return fmt.Errorf("failed to create farmer: %w", err)
	}

	r.logger.Debug().Str("farmer_id", farmer.ID.String()).Msg("farmer created")
	return nil
}

func (r *farmerRepository) GetAll(ctx context.Context) ([]model.Farmer, error) {
	query := `
		SELECT id, name, email, phone, location, password_hash, created_at
		FROM farmers
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query farmers")
		return nil, fmt.Errorf("failed to query farmers: %w", err)
	}
	defer rows.Close()

	var farmers []model.Farmer
	for rows.Next() {
		var f model.Farmer
		err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Phone, &f.Location, &f.PasswordHash, &f.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan farmer row")
			return nil, fmt.Errorf("failed to scan farmer: %w", err)
		}
		farmers = append(farmers, f)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating farmer rows")
		return nil, fmt.Errorf("error iterating farmers: %w", err)
	}

	return farmers, nil
}

func (r *farmerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Farmer, error) {
	query := `
		SELECT id, name, email, phone, location, password_hash, created_at
		FROM farmers
		WHERE id = $1
	`

	var f model.Farmer
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&f.ID, &f.Name, &f.Email, &f.Phone, &f.Location, &f.PasswordHash, &f.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("farmer_id", id.String()).Msg("farmer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("farmer_id", id.String()).Msg("failed to query farmer")
		return nil, fmt.Errorf("failed to query farmer: %w", err)
	}

	return &f, nil
}

func (r *farmerRepository) GetByEmail(ctx context.Context, email string) (*model.Farmer, error) {
	query := `
		SELECT id, name, email, phone, location, password_hash, created_at
		FROM farmers
		WHERE email = $1
	`

	var f model.Farmer
	err := r.pool.QueryRow(ctx, query, email).
		Scan(&f.ID, &f.Name, &f.Email, &f.Phone, &f.Location, &f.PasswordHash, &f.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query farmer by email")
		return nil, fmt.Errorf("failed to query farmer by email: %w", err)
	}

	return &f, nil
}

func (r *farmerRepository) Update(ctx context.Context, farmer *model.Farmer) error {
	query := `
		UPDATE farmers
		SET name = $2, email = $3, phone = $4, location = $5, password_hash = $6
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		farmer.ID, farmer.Name, farmer.Email, farmer.Phone, farmer.Location, farmer.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrDuplicateEmail
		}
		r.logger.Error().Err(err).Str("farmer_id", farmer.ID.String()).Msg("failed to update farmer")
		return fmt.Errorf("failed to update farmer: %w", err)
	}

	return nil
}

func (r *farmerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM farmers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("farmer_id", id.String()).Msg("failed to delete farmer")
		return fmt.Errorf("failed to delete farmer: %w", err)
	}

	r.logger.Debug().Str("farmer_id", id.String()).Msg("farmer deleted")
	return nil
}
