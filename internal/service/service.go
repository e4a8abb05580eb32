package service

import (
	"context"

	"farm-market/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// validate checks request payloads at the service boundary so
// physically meaningless values never reach the store.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs struct validation and converts failures into a
// domain error the handlers map to a 400.
func validateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return model.NewDomainError(model.ErrCodeValidationFailed, err.Error())
	}
	return nil
}

// FarmerService defines operations for farmer accounts.
type FarmerService interface {
	// Register creates a farmer account with a hashed password.
	Register(ctx context.Context, req *model.FarmerRegisterRequest) (*model.Farmer, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, req *model.LoginRequest) (string, error)

	// GetAll retrieves all farmers.
	GetAll(ctx context.Context) ([]model.Farmer, error)

	// GetByID retrieves a farmer by id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Farmer, error)

	// Update replaces a farmer's profile fields.
	Update(ctx context.Context, id uuid.UUID, req *model.FarmerRegisterRequest) (*model.Farmer, error)

	// Delete removes a farmer account.
	Delete(ctx context.Context, id uuid.UUID) error
}

// BuyerService defines operations for buyer accounts.
type BuyerService interface {
	// Register creates a buyer account with a hashed password.
	Register(ctx context.Context, req *model.BuyerRegisterRequest) (*model.Buyer, error)

	// Login verifies credentials and issues an access token together
	// with the buyer record.
	Login(ctx context.Context, req *model.LoginRequest) (*model.BuyerLoginResponse, error)

	// GetAll retrieves all buyers.
	GetAll(ctx context.Context) ([]model.Buyer, error)

	// GetByID retrieves a buyer by id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Buyer, error)

	// Update replaces a buyer's profile fields.
	Update(ctx context.Context, id uuid.UUID, req *model.BuyerRegisterRequest) (*model.Buyer, error)

	// Delete removes a buyer account.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductService defines operations for the product inventory.
type ProductService interface {
	// List retrieves the public catalogue with farmer details.
	List(ctx context.Context) ([]model.ProductWithFarmer, error)

	// Create adds a product owned by the calling farmer.
	Create(ctx context.Context, farmerID uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Update replaces a product's fields. Only the owning farmer may call it.
	Update(ctx context.Context, farmerID, productID uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product. Only the owning farmer may call it.
	Delete(ctx context.Context, farmerID, productID uuid.UUID) error
}

// OrderService defines the order lifecycle operations.
type OrderService interface {
	// Place creates a pending order and atomically reserves stock.
	Place(ctx context.Context, buyerID uuid.UUID, req *model.PlaceOrderRequest) (*model.Order, error)

	// ListForBuyer retrieves the buyer's own orders, newest-first.
	ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]model.BuyerOrder, error)

	// ListForFarmer retrieves orders placed against the farmer's
	// products, newest-first.
	ListForFarmer(ctx context.Context, farmerID uuid.UUID) ([]model.FarmerOrder, error)

	// UpdateStatus advances an order's status. Only the farmer owning the
	// order's product may call it, and only legal forward transitions
	// are accepted.
	UpdateStatus(ctx context.Context, farmerID, orderID uuid.UUID, status string) (*model.Order, error)

	// Cancel cancels a pending order owned by the calling buyer and
	// restores the reserved stock.
	Cancel(ctx context.Context, buyerID, orderID uuid.UUID) error
}
