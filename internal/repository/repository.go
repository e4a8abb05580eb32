package repository

import (
	"context"

	"farm-market/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FarmerRepository defines data access for farmer accounts.
type FarmerRepository interface {
	// Create inserts a new farmer. Returns model.ErrDuplicateEmail when
	// the email is already registered.
	Create(ctx context.Context, farmer *model.Farmer) error

	// GetAll retrieves all farmers.
	GetAll(ctx context.Context) ([]model.Farmer, error)

	// GetByID retrieves a farmer by id. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Farmer, error)

	// GetByEmail retrieves a farmer by email. Returns (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*model.Farmer, error)

	// Update persists changes to an existing farmer.
	Update(ctx context.Context, farmer *model.Farmer) error

	// Delete removes a farmer. Owned products cascade-delete.
	Delete(ctx context.Context, id uuid.UUID) error
}

// BuyerRepository defines data access for buyer accounts.
type BuyerRepository interface {
	// Create inserts a new buyer. Returns model.ErrDuplicateEmail when
	// the email is already registered.
	Create(ctx context.Context, buyer *model.Buyer) error

	// GetAll retrieves all buyers.
	GetAll(ctx context.Context) ([]model.Buyer, error)

	// GetByID retrieves a buyer by id. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Buyer, error)

	// GetByEmail retrieves a buyer by email. Returns (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*model.Buyer, error)

	// Update persists changes to an existing buyer.
	Update(ctx context.Context, buyer *model.Buyer) error

	// Delete removes a buyer.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines data access for the product inventory.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// GetAll retrieves all products with owner details joined, newest-first.
	GetAll(ctx context.Context) ([]model.ProductWithFarmer, error)

	// GetByID retrieves a product by id. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Update persists changes to an existing product.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error

	// ReserveStock decrements quantity by qty within the given transaction,
	// but only when at least qty units are on hand. Returns
	// model.ErrInsufficientStock when the conditional update applies to no
	// row, so concurrent orders can never oversell.
	ReserveStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, qty int) error

	// RestoreStock increments quantity by qty within the given transaction.
	// A missing product is not an error; the restore is simply skipped.
	RestoreStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, qty int) error
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by id. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByBuyer retrieves a buyer's orders with product details joined,
	// newest-first.
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]model.BuyerOrder, error)

	// ListByFarmer retrieves all orders referencing the farmer's products,
	// with product and buyer details joined, newest-first.
	ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]model.FarmerOrder, error)

	// UpdateStatus sets an order's status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error

	// UpdateStatusTx sets an order's status within the provided transaction.
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus) error
}
