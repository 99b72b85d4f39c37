package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/bunaihills/shop-service/internal/entities"
	"github.com/bunaihills/shop-service/internal/service"
	"github.com/bunaihills/shop-service/pkg/trm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepo) SaveCustomerInfo(ctx context.Context, orderID string, c entities.CustomerInfo) error {
	return m.Called(ctx, orderID, c).Error(0)
}

func (m *mockOrderRepo) SaveItems(ctx context.Context, orderID string, items []json.RawMessage) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *mockOrderRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderRepo) ListOrders(ctx context.Context) ([]entities.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus) (entities.Order, error) {
	args := m.Called(ctx, orderID, status)
	return args.Get(0).(entities.Order), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(key string) ([]byte, bool) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1)
}

func (m *mockCache) Set(key string, value []byte) {
	m.Called(key, value)
}

func (m *mockCache) Remove(key string) {
	m.Called(key)
}

// passthroughTx runs the callback directly, no transaction involved.
type passthroughTx struct{}

func (passthroughTx) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return ctx, nil, nil
}

func (passthroughTx) Do(ctx context.Context, cb func(ctx context.Context) error) error {
	return cb(ctx)
}

// recordingNotifier records dispatched orders and signals done, so
// tests can wait for the detached goroutine.
type recordingNotifier struct {
	mu     sync.Mutex
	orders []entities.Order
	result service.NotifyResult
	done   chan struct{}
}

func newRecordingNotifier(result service.NotifyResult) *recordingNotifier {
	return &recordingNotifier{result: result, done: make(chan struct{}, 1)}
}

func (n *recordingNotifier) Notify(_ context.Context, order entities.Order) service.NotifyResult {
	n.mu.Lock()
	n.orders = append(n.orders, order)
	n.mu.Unlock()
	n.done <- struct{}{}
	return n.result
}

func (n *recordingNotifier) wait(t *testing.T) entities.Order {
	t.Helper()
	select {
	case <-n.done:
	case <-time.After(time.Second):
		t.Fatal("notification was never dispatched")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.orders[len(n.orders)-1]
}

type recordingEvents struct {
	mu      sync.Mutex
	created []entities.Order
	changed []entities.Order
	err     error
	done    chan struct{}
}

func newRecordingEvents(err error) *recordingEvents {
	return &recordingEvents{err: err, done: make(chan struct{}, 2)}
}

func (e *recordingEvents) OrderCreated(_ context.Context, order entities.Order) error {
	e.mu.Lock()
	e.created = append(e.created, order)
	e.mu.Unlock()
	e.done <- struct{}{}
	return e.err
}

func (e *recordingEvents) OrderStatusChanged(_ context.Context, order entities.Order) error {
	e.mu.Lock()
	e.changed = append(e.changed, order)
	e.mu.Unlock()
	e.done <- struct{}{}
	return e.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validSubmission() []byte {
	return []byte(`{
		"customerInfo": {
			"fullName": "Asha Negi",
			"email": "asha@example.com",
			"phone": "9876543210",
			"address": "12 Mall Road",
			"city": "Shimla",
			"state": "Himachal Pradesh",
			"pincode": "171001"
		},
		"items": [{"productId": "p1", "qty": 1, "price": 1500}],
		"totalAmount": 1500,
		"paymentMethod": "cod"
	}`)
}

func TestOrderService_SubmitOrder(t *testing.T) {
	t.Run("persists and dispatches detached", func(t *testing.T) {
		repo := new(mockOrderRepo)
		repo.On("SaveOrder", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("SaveCustomerInfo", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("SaveItems", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		notifier := newRecordingNotifier(service.NotifyResult{Sent: true})
		events := newRecordingEvents(nil)

		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, new(mockCache), notifier, events)

		order, err := svc.SubmitOrder(context.Background(), validSubmission())
		require.NoError(t, err)

		assert.NotEmpty(t, order.ID)
		assert.Equal(t, entities.StatusPending, order.Status)
		assert.Equal(t, "Asha Negi", order.CustomerInfo.FullName)
		assert.Equal(t, 1500.0, order.TotalAmount)
		require.Len(t, order.Items, 1)

		notified := notifier.wait(t)
		assert.Equal(t, order.ID, notified.ID)

		select {
		case <-events.done:
		case <-time.After(time.Second):
			t.Fatal("order created event was never published")
		}

		repo.AssertExpectations(t)
	})

	t.Run("invalid payload is rejected before the store", func(t *testing.T) {
		repo := new(mockOrderRepo)
		notifier := newRecordingNotifier(service.NotifyResult{Sent: true})
		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, new(mockCache), notifier, newRecordingEvents(nil))

		_, err := svc.SubmitOrder(context.Background(), []byte(`{"items":[]}`))

		var ve *entities.ValidationError
		require.ErrorAs(t, err, &ve)
		repo.AssertNotCalled(t, "SaveOrder", mock.Anything, mock.Anything)
		assert.Empty(t, notifier.orders)
	})

	t.Run("store failure means no notification", func(t *testing.T) {
		dbErr := errors.New("db error")

		repo := new(mockOrderRepo)
		repo.On("SaveOrder", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("SaveCustomerInfo", mock.Anything, mock.Anything, mock.Anything).Return(dbErr).Once()

		notifier := newRecordingNotifier(service.NotifyResult{Sent: true})
		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, new(mockCache), notifier, newRecordingEvents(nil))

		_, err := svc.SubmitOrder(context.Background(), validSubmission())
		require.ErrorIs(t, err, dbErr)

		assert.Empty(t, notifier.orders)
		repo.AssertNotCalled(t, "SaveItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("notification failure does not change the result", func(t *testing.T) {
		repo := new(mockOrderRepo)
		repo.On("SaveOrder", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("SaveCustomerInfo", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("SaveItems", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		notifier := newRecordingNotifier(service.NotifyResult{Sent: false, Reason: service.ReasonTransportError})
		events := newRecordingEvents(errors.New("broker down"))

		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, new(mockCache), notifier, events)

		order, err := svc.SubmitOrder(context.Background(), validSubmission())
		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)

		notifier.wait(t)
	})

	t.Run("unconfigured mail is a normal outcome", func(t *testing.T) {
		repo := new(mockOrderRepo)
		repo.On("SaveOrder", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("SaveCustomerInfo", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("SaveItems", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		notifier := newRecordingNotifier(service.NotifyResult{Sent: false, Reason: service.ReasonUnconfigured})
		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, new(mockCache), notifier, newRecordingEvents(nil))

		_, err := svc.SubmitOrder(context.Background(), validSubmission())
		require.NoError(t, err)
		notifier.wait(t)
	})
}

func TestOrderService_GetOrderByID(t *testing.T) {
	validOrder := entities.Order{ID: "o-1", Status: entities.StatusPending, TotalAmount: 900}
	validData, err := validOrder.Marshal()
	require.NoError(t, err)

	t.Run("served from cache", func(t *testing.T) {
		repo := new(mockOrderRepo)
		cache := new(mockCache)
		cache.On("Get", "o-1").Return(validData, true).Once()

		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, cache, newRecordingNotifier(service.NotifyResult{}), newRecordingEvents(nil))

		got, err := svc.GetOrderByID(context.Background(), "o-1")
		require.NoError(t, err)
		assert.Equal(t, validOrder, got)
		repo.AssertNotCalled(t, "GetOrderByID", mock.Anything, mock.Anything)
	})

	t.Run("broken cache entry falls through to the store", func(t *testing.T) {
		repo := new(mockOrderRepo)
		repo.On("GetOrderByID", mock.Anything, "o-1").Return(validOrder, nil).Once()

		cache := new(mockCache)
		cache.On("Get", "o-1").Return([]byte("broken"), true).Once()
		cache.On("Remove", "o-1").Once()
		cache.On("Set", "o-1", validData).Once()

		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, cache, newRecordingNotifier(service.NotifyResult{}), newRecordingEvents(nil))

		got, err := svc.GetOrderByID(context.Background(), "o-1")
		require.NoError(t, err)
		assert.Equal(t, validOrder, got)
		cache.AssertExpectations(t)
	})

	t.Run("cache miss reads the store and fills the cache", func(t *testing.T) {
		repo := new(mockOrderRepo)
		repo.On("GetOrderByID", mock.Anything, "o-1").Return(validOrder, nil).Once()

		cache := new(mockCache)
		cache.On("Get", "o-1").Return(nil, false).Once()
		cache.On("Set", "o-1", validData).Once()

		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, cache, newRecordingNotifier(service.NotifyResult{}), newRecordingEvents(nil))

		got, err := svc.GetOrderByID(context.Background(), "o-1")
		require.NoError(t, err)
		assert.Equal(t, validOrder, got)
		cache.AssertExpectations(t)
	})

	t.Run("not found is not retried", func(t *testing.T) {
		repo := new(mockOrderRepo)
		repo.On("GetOrderByID", mock.Anything, "missing").
			Return(entities.Order{}, entities.ErrOrderNotFound).Once()

		cache := new(mockCache)
		cache.On("Get", "missing").Return(nil, false).Once()

		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, cache, newRecordingNotifier(service.NotifyResult{}), newRecordingEvents(nil))

		_, err := svc.GetOrderByID(context.Background(), "missing")
		require.ErrorIs(t, err, entities.ErrOrderNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("transient store error is retried", func(t *testing.T) {
		repo := new(mockOrderRepo)
		repo.On("GetOrderByID", mock.Anything, "o-1").
			Return(entities.Order{}, errors.New("connection reset")).Once()
		repo.On("GetOrderByID", mock.Anything, "o-1").Return(validOrder, nil).Once()

		cache := new(mockCache)
		cache.On("Get", "o-1").Return(nil, false).Once()
		cache.On("Set", "o-1", validData).Once()

		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, cache, newRecordingNotifier(service.NotifyResult{}), newRecordingEvents(nil))

		got, err := svc.GetOrderByID(context.Background(), "o-1")
		require.NoError(t, err)
		assert.Equal(t, validOrder, got)
		repo.AssertExpectations(t)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	pendingOrder := entities.Order{ID: "o-1", Status: entities.StatusPending}

	t.Run("allowed transition is applied", func(t *testing.T) {
		updated := pendingOrder
		updated.Status = entities.StatusProcessing

		repo := new(mockOrderRepo)
		repo.On("GetOrderByID", mock.Anything, "o-1").Return(pendingOrder, nil).Once()
		repo.On("UpdateOrderStatus", mock.Anything, "o-1", entities.StatusProcessing).Return(updated, nil).Once()

		updatedData, err := updated.Marshal()
		require.NoError(t, err)

		cache := new(mockCache)
		cache.On("Set", "o-1", updatedData).Once()

		events := newRecordingEvents(nil)
		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, cache, newRecordingNotifier(service.NotifyResult{}), events)

		got, err := svc.UpdateOrderStatus(context.Background(), "o-1", "processing")
		require.NoError(t, err)
		assert.Equal(t, entities.StatusProcessing, got.Status)

		cache.AssertExpectations(t)

		select {
		case <-events.done:
		case <-time.After(time.Second):
			t.Fatal("status changed event was never published")
		}
		require.Len(t, events.changed, 1)
		assert.Equal(t, entities.StatusProcessing, events.changed[0].Status)
	})

	t.Run("rejected transition touches nothing", func(t *testing.T) {
		repo := new(mockOrderRepo)
		repo.On("GetOrderByID", mock.Anything, "o-1").Return(pendingOrder, nil).Once()

		cache := new(mockCache)
		events := newRecordingEvents(nil)
		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, cache, newRecordingNotifier(service.NotifyResult{}), events)

		_, err := svc.UpdateOrderStatus(context.Background(), "o-1", "delivered")

		var te *entities.InvalidTransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, entities.StatusPending, te.From)

		repo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
		assert.Empty(t, events.changed)
	})

	t.Run("unknown order", func(t *testing.T) {
		repo := new(mockOrderRepo)
		repo.On("GetOrderByID", mock.Anything, "missing").
			Return(entities.Order{}, entities.ErrOrderNotFound).Once()

		svc := service.NewOrderService(discardLogger(), passthroughTx{}, repo, new(mockCache), newRecordingNotifier(service.NotifyResult{}), newRecordingEvents(nil))

		_, err := svc.UpdateOrderStatus(context.Background(), "missing", "processing")
		require.ErrorIs(t, err, entities.ErrOrderNotFound)
	})
}
