package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles carried in access tokens.
const (
	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"
)

// Farmer represents a seller account. Farmers own products.
type Farmer struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	Location     string    `json:"location" db:"location"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// FarmerRegisterRequest is the payload for farmer registration and the
// unrestricted farmer create/update endpoints.
type FarmerRegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Location string `json:"location" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for farmer and buyer logins.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}
