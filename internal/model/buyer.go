package model

import (
	"time"

	"github.com/google/uuid"
)

// Buyer represents a buyer account. Buyers place orders.
type Buyer struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// BuyerRegisterRequest is the payload for buyer registration and profile updates.
type BuyerRegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// BuyerLoginResponse carries the token together with the buyer record,
// matching what the buyer-facing client expects.
type BuyerLoginResponse struct {
	Token string `json:"token"`
	Buyer Buyer  `json:"buyer"`
}
