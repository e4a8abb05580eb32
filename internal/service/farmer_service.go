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

// farmerService implements FarmerService.
type farmerService struct {
	farmerRepo repository.FarmerRepository
	tokens     *auth.TokenManager
	logger     zerolog.Logger
}

// NewFarmerService creates a new farmer service.
func NewFarmerService(
	farmerRepo repository.FarmerRepository,
	tokens *auth.TokenManager,
	logger zerolog.Logger,
) FarmerService {
	return &farmerService{
		farmerRepo: farmerRepo,
		tokens:     tokens,
		logger:     logger.With().Str("service", "farmer").Logger(),
	}
}

func (s *farmerService) Register(ctx context.Context, req *model.FarmerRegisterRequest) (*model.Farmer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.farmerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to register farmer: %w", err)
	}
	if existing != nil {
		s.logger.Warn().Str("email", req.Email).Msg("farmer email already registered")
		return nil, model.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to register farmer: %w", err)
	}

	farmer := &model.Farmer{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Location:     req.Location,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.farmerRepo.Create(ctx, farmer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("farmer_id", farmer.ID.String()).Msg("farmer registered")
	return farmer, nil
}

func (s *farmerService) Login(ctx context.Context, req *model.LoginRequest) (string, error) {
	if err := validateStruct(req); err != nil {
		return "", err
	}

	farmer, err := s.farmerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("failed to log in farmer: %w", err)
	}
	if farmer == nil {
		return "", model.ErrInvalidCredentials
	}

	if err := auth.CheckPassword(farmer.PasswordHash, req.Password); err != nil {
		s.logger.Warn().Str("farmer_id", farmer.ID.String()).Msg("bad farmer password")
		return "", model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(farmer.ID, model.RoleFarmer)
	if err != nil {
		return "", fmt.Errorf("failed to issue farmer token: %w", err)
	}

	s.logger.Debug().Str("farmer_id", farmer.ID.String()).Msg("farmer logged in")
	return token, nil
}

func (s *farmerService) GetAll(ctx context.Context) ([]model.Farmer, error) {
	farmers, err := s.farmerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get farmers: %w", err)
	}
	return farmers, nil
}

func (s *farmerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Farmer, error) {
	farmer, err := s.farmerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get farmer: %w", err)
	}
	if farmer == nil {
		return nil, model.ErrFarmerNotFound
	}
	return farmer, nil
}

func (s *farmerService) Update(ctx context.Context, id uuid.UUID, req *model.FarmerRegisterRequest) (*model.Farmer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	farmer, err := s.farmerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update farmer: %w", err)
	}
	if farmer == nil {
		return nil, model.ErrFarmerNotFound
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to update farmer: %w", err)
	}

	farmer.Name = req.Name
	farmer.Email = req.Email
	farmer.Phone = req.Phone
	farmer.Location = req.Location
	farmer.PasswordHash = hash

	if err := s.farmerRepo.Update(ctx, farmer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("farmer_id", id.String()).Msg("farmer updated")
	return farmer, nil
}

func (s *farmerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.farmerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete farmer: %w", err)
	}
	s.logger.Info().Str("farmer_id", id.String()).Msg("farmer deleted")
	return nil
}
