package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bunaihills/shop-service/internal/entities"
	"github.com/bunaihills/shop-service/pkg/trm"
	"github.com/bunaihills/shop-service/pkg/utils"

	"github.com/google/uuid"
)

type OrderRepo interface {
	SaveOrder(ctx context.Context, o entities.Order) error
	SaveCustomerInfo(ctx context.Context, orderID string, c entities.CustomerInfo) error
	SaveItems(ctx context.Context, orderID string, items []json.RawMessage) error

	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus) (entities.Order, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Remove(key string)
}

type Notifier interface {
	Notify(ctx context.Context, order entities.Order) NotifyResult
}

type EventPublisher interface {
	OrderCreated(ctx context.Context, order entities.Order) error
	OrderStatusChanged(ctx context.Context, order entities.Order) error
}

type OrderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
	notifier  Notifier
	events    EventPublisher
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	cache Cache,
	notifier Notifier,
	events EventPublisher,
) *OrderService {
	return &OrderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
		notifier:  notifier,
		events:    events,
	}
}

// SubmitOrder validates the raw payload, persists the order atomically
// and returns it. The confirmation mail and the order-created event run
// detached after the commit point: once the store write succeeds their
// outcome can no longer change the result of this call.
func (s *OrderService) SubmitOrder(ctx context.Context, body []byte) (entities.Order, error) {
	order, err := ParseOrder(body)
	if err != nil {
		ordersSubmitted.WithLabelValues("invalid").Inc()
		return entities.Order{}, err
	}

	order.ID = uuid.NewString()
	now := time.Now().UTC()
	order.CreatedAt, order.UpdatedAt = now, now

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.SaveOrder(ctx, order); err != nil {
			return err
		}
		if err := s.repo.SaveCustomerInfo(ctx, order.ID, order.CustomerInfo); err != nil {
			return err
		}
		return s.repo.SaveItems(ctx, order.ID, order.Items)
	})
	if err != nil {
		ordersSubmitted.WithLabelValues("error").Inc()
		return entities.Order{}, fmt.Errorf("failed to persist order: %w", err)
	}

	ordersSubmitted.WithLabelValues("accepted").Inc()
	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Float64("total_amount", order.TotalAmount))

	// commit point reached: detach from the request so a client
	// disconnect cannot abandon the dispatch mid-flight
	detached := context.WithoutCancel(ctx)
	go func() {
		s.notifier.Notify(detached, order)
		if err := s.events.OrderCreated(detached, order); err != nil {
			s.logger.Error("failed to publish order created event",
				slog.String("order_id", order.ID), slog.Any("error", err))
		}
	}()

	return order, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	if data, ok := s.cache.Get(orderID); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err == nil {
			return order, nil
		}
		// a broken entry is dropped and the store consulted instead
		s.cache.Remove(orderID)
	}

	var order entities.Order
	err := utils.Retry(utils.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		Multiplier:   2,
	}, func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		return err
	}, entities.ErrOrderNotFound)
	if err != nil {
		return entities.Order{}, err
	}

	if data, err := order.Marshal(); err == nil {
		s.cache.Set(orderID, data)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]entities.Order, error) {
	return s.repo.ListOrders(ctx)
}

// UpdateOrderStatus applies a lifecycle transition. The requested
// status is checked against the transition table before anything is
// written, the store itself performs no transition logic.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, requested string) (entities.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		statusUpdates.WithLabelValues("not_found").Inc()
		return entities.Order{}, err
	}

	if err := entities.CheckTransition(order.Status, requested); err != nil {
		statusUpdates.WithLabelValues("rejected").Inc()
		return entities.Order{}, err
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, orderID, entities.OrderStatus(requested))
	if err != nil {
		statusUpdates.WithLabelValues("error").Inc()
		return entities.Order{}, err
	}

	// refresh the cached row in place; a racing read may still re-fill
	// the previous row, which then expires with the TTL
	if data, err := updated.Marshal(); err == nil {
		s.cache.Set(orderID, data)
	} else {
		s.cache.Remove(orderID)
	}

	statusUpdates.WithLabelValues("applied").Inc()
	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", orderID),
		slog.String("from", string(order.Status)),
		slog.String("to", requested))

	detached := context.WithoutCancel(ctx)
	go func() {
		if err := s.events.OrderStatusChanged(detached, updated); err != nil {
			s.logger.Error("failed to publish status changed event",
				slog.String("order_id", orderID), slog.Any("error", err))
		}
	}()

	return updated, nil
}
