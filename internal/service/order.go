package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/repository"
)

// OrderService handles business logic for orders.
type OrderService struct {
	repo   repository.OrderRepository
	logger *slog.Logger
}

func NewOrderService(repo repository.OrderRepository, logger *slog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

// OrderItemInput is one checkout line as submitted by the client. The name
// and price become denormalized snapshots on the order item.
type OrderItemInput struct {
	ProductID int64       `json:"id"`
	Name      string      `json:"name"`
	Price     model.Money `json:"price"`
	Quantity  int         `json:"quantity"`
}

// Create records a new order for userID as one atomic unit.
//
// The total is taken from the client and stored as-is; it is NOT revalidated
// against current product prices, and stock is not decremented. Both are
// deliberate carry-overs from the existing checkout contract — changing them
// is a product decision, not a porting one.
func (s *OrderService) Create(ctx context.Context, userID int64, items []OrderItemInput, total model.Money) (*model.Order, error) {
	if len(items) == 0 {
		return nil, apperror.ValidationFailed("items", "order must contain at least one item")
	}
	if total.IsNegative() {
		return nil, apperror.ValidationFailed("total", "total must not be negative")
	}

	orderItems := make([]model.OrderItem, 0, len(items))
	for i, in := range items {
		if strings.TrimSpace(in.Name) == "" {
			return nil, apperror.ValidationFailed("items", fmt.Sprintf("item %d: name is required", i))
		}
		if in.Quantity < 1 {
			return nil, apperror.ValidationFailed("items", fmt.Sprintf("item %d: quantity must be at least 1", i))
		}
		if in.Price.IsNegative() {
			return nil, apperror.ValidationFailed("items", fmt.Sprintf("item %d: price must not be negative", i))
		}
		orderItems = append(orderItems, model.OrderItem{
			ProductID:       in.ProductID,
			ProductName:     in.Name,
			Quantity:        in.Quantity,
			PriceAtPurchase: in.Price,
		})
	}

	order := &model.Order{
		Reference:   uuid.NewString(),
		UserID:      userID,
		TotalAmount: total,
		Status:      model.StatusPreparing,
		Items:       orderItems,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		s.logger.Error("failed to create order",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating order: %w", err)
	}

	s.logger.Info("order created",
		slog.Int64("orderID", order.ID),
		slog.Int64("userID", userID),
		slog.String("total", total.String()),
		slog.Int("items", len(orderItems)),
	)

	return order, nil
}

// ListForUser returns the caller's own orders, newest first, items nested.
func (s *OrderService) ListForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list orders",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

// ListAll returns every order with the buyer's email, for the admin view.
func (s *OrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.repo.ListAllOrders(ctx)
	if err != nil {
		s.logger.Error("failed to list all orders", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing all orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets an order's status. Status is a free-form non-empty
// string — admins type whatever their fulfilment flow needs.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return apperror.ValidationFailed("status", "status is required")
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info("order status updated",
		slog.Int64("orderID", id),
		slog.String("status", status),
	)
	return nil
}
