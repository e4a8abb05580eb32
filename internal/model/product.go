package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable item owned by exactly one farmer.
// Quantity is the stock on hand and never goes negative.
type Product struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Category  string    `json:"category" db:"category"`
	Quantity  int       `json:"quantity" db:"quantity"`
	FarmerID  uuid.UUID `json:"farmerId" db:"farmer_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductWithFarmer is a product joined with its owner's public details
// for the public catalogue listing.
type ProductWithFarmer struct {
	Product
	FarmerName     string `json:"farmerName"`
	FarmerLocation string `json:"farmerLocation"`
	FarmerPhone    string `json:"farmerPhone"`
}

// ProductRequest is the payload for creating or updating a product.
// Price and quantity are validated here so physically meaningless
// values never reach the store.
type ProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Category string  `json:"category" validate:"required"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}
