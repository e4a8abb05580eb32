package service

import (
	"context"
	"fmt"
	"time"

	"farm-market/internal/auth"
	"farm-market/internal/model"
	"farm-market/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// buyerService implements BuyerService.
type buyerService struct {
	buyerRepo repository.BuyerRepository
	tokens    *auth.TokenManager
	logger    zerolog.Logger
}

// NewBuyerService creates a new buyer service.
func NewBuyerService(
	buyerRepo repository.BuyerRepository,
	tokens *auth.TokenManager,
	logger zerolog.Logger,
) BuyerService {
	return &buyerService{
		buyerRepo: buyerRepo,
		tokens:    tokens,
		logger:    logger.With().Str("service", "buyer").Logger(),
	}
}

func (s *buyerService) Register(ctx context.Context, req *model.BuyerRegisterRequest) (*model.Buyer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.buyerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to register buyer: %w", err)
	}
	if existing != nil {
		s.logger.Warn().Str("email", req.Email).Msg("buyer email already registered")
		return nil, model.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to register buyer: %w", err)
	}

	buyer := &model.Buyer{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.buyerRepo.Create(ctx, buyer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("buyer_id", buyer.ID.String()).Msg("buyer registered")
	return buyer, nil
}

func (s *buyerService) Login(ctx context.Context, req *model.LoginRequest) (*model.BuyerLoginResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	buyer, err := s.buyerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to log in buyer: %w", err)
	}
	if buyer == nil {
		return nil, model.ErrBuyerNotFound
	}

	if err := auth.CheckPassword(buyer.PasswordHash, req.Password); err != nil {
		s.logger.Warn().Str("buyer_id", buyer.ID.String()).Msg("bad buyer password")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(buyer.ID, model.RoleBuyer)
	if err != nil {
		return nil, fmt.Errorf("failed to issue buyer token: %w", err)
	}

	s.logger.Debug().Str("buyer_id", buyer.ID.String()).Msg("buyer logged in")
	return &model.BuyerLoginResponse{Token: token, Buyer: *buyer}, nil
}

func (s *buyerService) GetAll(ctx context.Context) ([]model.Buyer, error) {
	buyers, err := s.buyerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyers: %w", err)
	}
	return buyers, nil
}

func (s *buyerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Buyer, error) {
	buyer, err := s.buyerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer: %w", err)
	}
	if buyer == nil {
		return nil, model.ErrBuyerNotFound
	}
	return buyer, nil
}

func (s *buyerService) Update(ctx context.Context, id uuid.UUID, req *model.BuyerRegisterRequest) (*model.Buyer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	buyer, err := s.buyerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update buyer: %w", err)
	}
	if buyer == nil {
		return nil, model.ErrBuyerNotFound
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to update buyer: %w", err)
	}

	buyer.Name = req.Name
	buyer.Email = req.Email
	buyer.Phone = req.Phone
	buyer.PasswordHash = hash

	if err := s.buyerRepo.Update(ctx, buyer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("buyer_id", id.String()).Msg("buyer updated")
	return buyer, nil
}

func (s *buyerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.buyerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete buyer: %w", err)
	}
	s.logger.Info().Str("buyer_id", id.String()).Msg("buyer deleted")
	return nil
}
