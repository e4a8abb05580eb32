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

// orderService implements OrderService. It is the only component with
// cross-entity invariants: every stock mutation happens in the same
// transaction as the order write it belongs to.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Place creates a pending order. The stock check and decrement are one
// conditional UPDATE inside the transaction that also inserts the
// order, so two concurrent orders can never both drain the same units.
func (s *orderService) Place(ctx context.Context, buyerID uuid.UUID, req *model.PlaceOrderRequest) (*model.Order, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.productRepo.ReserveStock(ctx, tx, product.ID, req.Quantity); err != nil {
		s.logger.Warn().
			Str("product_id", product.ID.String()).
			Int("requested", req.Quantity).
			Int("on_hand", product.Quantity).
			Err(err).
			Msg("stock reservation failed")
		return nil, err
	}

	now := time.Now()
	order := &model.Order{
		ID:         uuid.New(),
		BuyerID:    buyerID,
		ProductID:  product.ID,
		Quantity:   req.Quantity,
		TotalPrice: product.Price * float64(req.Quantity),
		Status:     model.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("buyer_id", buyerID.String()).
		Str("product_id", product.ID.String()).
		Int("quantity", req.Quantity).
		Float64("total_price", order.TotalPrice).
		Msg("order placed")

	return order, nil
}

func (s *orderService) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]model.BuyerOrder, error) {
	orders, err := s.orderRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list buyer orders: %w", err)
	}
	if orders == nil {
		orders = []model.BuyerOrder{}
	}
	return orders, nil
}

func (s *orderService) ListForFarmer(ctx context.Context, farmerID uuid.UUID) ([]model.FarmerOrder, error) {
	orders, err := s.orderRepo.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list farmer orders: %w", err)
	}
	// A farmer with no products simply has no orders.
	if orders == nil {
		orders = []model.FarmerOrder{}
	}
	return orders, nil
}

// UpdateStatus advances an order through the forward transitions
// pending -> confirmed -> delivered. Cancellation is buyer-only and
// goes through Cancel, never through here.
func (s *orderService) UpdateStatus(ctx context.Context, farmerID, orderID uuid.UUID, status string) (*model.Order, error) {
	to, err := model.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	if to == model.StatusCancelled {
		return nil, model.ErrIllegalTransition
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	product, err := s.productRepo.GetByID(ctx, order.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if product == nil || product.FarmerID != farmerID {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("farmer_id", farmerID.String()).
			Msg("farmer does not own ordered product")
		return nil, model.ErrNotOrderOwner
	}

	if !order.Status.CanTransitionTo(to) {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("from", string(order.Status)).
			Str("to", string(to)).
			Msg("illegal status transition")
		return nil, model.ErrIllegalTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, to); err != nil {
		return nil, err
	}

	order.Status = to
	order.UpdatedAt = time.Now()

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("status", string(to)).
		Msg("order status updated")

	return order, nil
}

// Cancel flips a pending order to cancelled and restores its stock in
// one transaction. The record is kept for history rather than deleted.
func (s *orderService) Cancel(ctx context.Context, buyerID, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}

	if order.BuyerID != buyerID {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("buyer_id", buyerID.String()).
			Msg("buyer does not own order")
		return model.ErrNotOrderOwner
	}

	if order.Status != model.StatusPending {
		return model.ErrNotCancellable
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.productRepo.RestoreStock(ctx, tx, order.ProductID, order.Quantity); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	if err = s.orderRepo.UpdateStatusTx(ctx, tx, orderID, model.StatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("buyer_id", buyerID.String()).
		Int("quantity", order.Quantity).
		Msg("order cancelled, stock restored")

	return nil
}
