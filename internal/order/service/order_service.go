package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"brutus/internal/domain"
	apperrors "brutus/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	Delete(ctx context.Context, tx *sql.Tx, id int64) error
	ListNewestFirst(ctx context.Context) ([]domain.Order, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (int64, error)
	DeleteByOrder(ctx context.Context, tx *sql.Tx, orderID int64) error
}

// Notifier is the outbound port to the external messaging collaborator.
// Delivery is best effort; the service never lets a notifier error
// reach the caller.
type Notifier interface {
	PublishOrderCreated(ctx context.Context, order domain.Order) error
}

const notifyTimeout = 10 * time.Second

type OrderService struct {
	db        TransactionManager
	orderRepo OrderRepository
	itemRepo  OrderItemRepository
	notifier  Notifier
	logger    *zap.Logger
}

func NewOrderService(
	db TransactionManager,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	notifier Notifier,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		db:        db,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// Create persists the order and all its line snapshots as one
// transaction; a failing line insert rolls everything back so the
// caller never sees a partial order. On success the order-created
// notification is dispatched on its own goroutine after commit.
func (s *OrderService) Create(ctx context.Context, order domain.Order) (int64, error) {
	order.Status = domain.StatusPending

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return 0, apperrors.NewInternalError("creating order", err)
	}
	// MySQL ignores the rollback once the tx is committed.
	defer tx.Rollback()

	orderID, err := s.orderRepo.Insert(ctx, tx, order)
	if err != nil {
		s.logger.Error("failed to insert order", zap.Error(err))
		return 0, apperrors.NewInternalError("creating order", err)
	}

	for _, item := range order.Items {
		item.OrderID = orderID
		if _, err := s.itemRepo.Insert(ctx, tx, item); err != nil {
			s.logger.Error("failed to insert order item",
				zap.Int64("orderId", orderID),
				zap.Int64("productId", item.ProductID),
				zap.Error(err))
			return 0, apperrors.NewInternalError("creating order", err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit order", zap.Int64("orderId", orderID), zap.Error(err))
		return 0, apperrors.NewInternalError("creating order", err)
	}

	s.logger.Info("order created",
		zap.Int64("orderId", orderID),
		zap.Float64("total", order.Total),
		zap.Int("items", len(order.Items)))

	order.ID = orderID
	go s.notifyCreated(order)

	return orderID, nil
}

// notifyCreated reaches the messaging collaborator after the order is
// committed. Failures are logged and swallowed; they never roll back
// the order or delay the customer-facing response.
func (s *OrderService) notifyCreated(order domain.Order) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Warn("order-created notification failed",
			zap.Int64("orderId", order.ID),
			zap.Error(err))
		return
	}

	s.logger.Info("order-created notification published", zap.Int64("orderId", order.ID))
}

// UpdateStatus moves an order to the requested status, enforcing the
// one-step rule. Requesting the current status is an accepted no-op;
// archiving is allowed from any non-archived state.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, to domain.Status) error {
	if !to.Valid() {
		return apperrors.NewValidationError("unknown status", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("status must be one of %v", domain.StatusOrder),
		})
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanTransition(order.Status, to) {
		return apperrors.NewValidationError("invalid status transition", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("cannot move from %s to %s", order.Status, to),
		})
	}

	if order.Status == to {
		return nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, to); err != nil {
		return err
	}

	s.logger.Info("order status updated",
		zap.Int64("orderId", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(to)))
	return nil
}

// Advance moves the order one step forward, stopping at delivered.
// Archiving is a deliberate action, never the result of one advance too
// many; archived orders are left untouched.
func (s *OrderService) Advance(ctx context.Context, id int64) (domain.Status, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	next := order.Status.Next()
	if next == order.Status || next == domain.StatusArchived {
		return order.Status, nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, next); err != nil {
		return "", err
	}
	return next, nil
}

// Regress moves the order one step backward. Pending orders are left
// untouched.
func (s *OrderService) Regress(ctx context.Context, id int64) (domain.Status, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	prev := order.Status.Prev()
	if prev == order.Status {
		return order.Status, nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, prev); err != nil {
		return "", err
	}
	return prev, nil
}

// Archive sends the order to the archived column from any state.
func (s *OrderService) Archive(ctx context.Context, id int64) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == domain.StatusArchived {
		return nil
	}
	return s.orderRepo.UpdateStatus(ctx, id, domain.StatusArchived)
}

// Remove hard deletes the order and its lines. Irreversible.
func (s *OrderService) Remove(ctx context.Context, id int64) error {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewInternalError("removing order", err)
	}
	defer tx.Rollback()

	if err := s.itemRepo.DeleteByOrder(ctx, tx, id); err != nil {
		return apperrors.NewInternalError("removing order", err)
	}
	if err := s.orderRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("removing order", err)
	}

	s.logger.Info("order removed", zap.Int64("orderId", id))
	return nil
}

// List returns every order, newest first, with line items attached.
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.ListNewestFirst(ctx)
}
