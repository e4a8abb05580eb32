package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeDuplicateEmail     = "DUPLICATE_EMAIL"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeFarmerNotFound     = "FARMER_NOT_FOUND"
	ErrCodeBuyerNotFound      = "BUYER_NOT_FOUND"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeIllegalTransition  = "ILLEGAL_TRANSITION"
	ErrCodeNotCancellable     = "ORDER_NOT_CANCELLABLE"
	ErrCodeNotOwner           = "NOT_OWNER"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation reported to the caller,
// as opposed to an unexpected system fault.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrDuplicateEmail     = NewDomainError(ErrCodeDuplicateEmail, "An account with this email already exists")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid email or password")
	ErrFarmerNotFound     = NewDomainError(ErrCodeFarmerNotFound, "Farmer not found")
	ErrBuyerNotFound      = NewDomainError(ErrCodeBuyerNotFound, "Buyer not found")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInsufficientStock  = NewDomainError(ErrCodeInsufficientStock, "Not enough stock available")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidStatus      = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrIllegalTransition  = NewDomainError(ErrCodeIllegalTransition, "Order status cannot move to the requested state")
	ErrNotCancellable     = NewDomainError(ErrCodeNotCancellable, "Only pending orders can be cancelled")
	ErrNotProductOwner    = NewDomainError(ErrCodeNotOwner, "Not authorised to modify this product")
	ErrNotOrderOwner      = NewDomainError(ErrCodeNotOwner, "Not authorised to modify this order")
)
