package service

import (
	"context"
	"fmt"
	"time"

	"farm-market/internal/model"
	"farm-market/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

func (s *productService) List(ctx context.Context) ([]model.ProductWithFarmer, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")
	return products, nil
}

func (s *productService) Create(ctx context.Context, farmerID uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &model.Product{
		ID:        uuid.New(),
		Name:      req.Name,
		Price:     req.Price,
		Category:  req.Category,
		Quantity:  req.Quantity,
		FarmerID:  farmerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("farmer_id", farmerID.String()).
		Msg("product created")
	return product, nil
}

func (s *productService) Update(ctx context.Context, farmerID, productID uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	if product.FarmerID != farmerID {
		s.logger.Warn().
			Str("product_id", productID.String()).
			Str("farmer_id", farmerID.String()).
			Msg("farmer does not own product")
		return nil, model.ErrNotProductOwner
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Category = req.Category
	product.Quantity = req.Quantity

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", productID.String()).Msg("product updated")
	return product, nil
}

func (s *productService) Delete(ctx context.Context, farmerID, productID uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	if product.FarmerID != farmerID {
		s.logger.Warn().
			Str("product_id", productID.String()).
			Str("farmer_id", farmerID.String()).
			Msg("farmer does not own product")
		return model.ErrNotProductOwner
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", productID.String()).Msg("product deleted")
	return nil
}
