package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// validNext holds the allowed forward transitions. Delivered and
// cancelled are terminal.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusDelivered: true},
	StatusDelivered: {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether the status may move to the given state.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	return validNext[s][to]
}

// ParseOrderStatus converts a wire value into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Order represents a buyer's purchase of a single product.
// TotalPrice is computed at placement time and never changes.
type Order struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	BuyerID    uuid.UUID   `json:"buyerId" db:"buyer_id"`
	ProductID  uuid.UUID   `json:"productId" db:"product_id"`
	Quantity   int         `json:"quantity" db:"quantity"`
	TotalPrice float64     `json:"totalPrice" db:"total_price"`
	Status     OrderStatus `json:"status" db:"status"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time   `json:"updatedAt" db:"updated_at"`
}

// BuyerOrder is an order joined with product details for the buyer's
// own order listing.
type BuyerOrder struct {
	Order
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
}

// FarmerOrder is an order joined with product and buyer details for the
// farmer's incoming-order listing.
type FarmerOrder struct {
	Order
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	BuyerName    string  `json:"buyerName"`
	BuyerEmail   string  `json:"buyerEmail"`
	BuyerPhone   string  `json:"buyerPhone"`
}

// PlaceOrderRequest is the payload for placing an order.
type PlaceOrderRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

// UpdateOrderStatusRequest is the payload for the farmer-driven status update.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
