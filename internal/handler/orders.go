package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/bunaihills/shop-service/internal/entities"
	"github.com/bunaihills/shop-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

type OrderService interface {
	SubmitOrder(ctx context.Context, body []byte) (entities.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, requested string) (entities.Order, error)
}

type OrdersHandler struct {
	logger *slog.Logger
	svc    OrderService
}

func NewOrdersHandler(logger *slog.Logger, svc OrderService) *OrdersHandler {
	return &OrdersHandler{
		logger: logger.With(slog.String("handler", "orders")),
		svc:    svc,
	}
}

func (h *OrdersHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.SubmitOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrderByID)
		r.Put("/{id}", h.UpdateOrderStatus)
	})
}

// SubmitOrder handles POST /orders. Validation failures name the first
// offending field; once the order is durably saved the response is 201
// no matter what the confirmation dispatch does afterwards.
func (h *OrdersHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.WriteError(w, "No request body received", http.StatusBadRequest)
		return
	}

	order, err := h.svc.SubmitOrder(ctx, body)

	var ve *entities.ValidationError
	if errors.As(err, &ve) {
		utils.WriteError(w, ve.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "order submission failed", slog.Any("error", err))
		utils.WriteError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, SubmitOrderResponse{
		Success: true,
		OrderID: order.ID,
		Message: "Order placed successfully",
	}, http.StatusCreated)
}

// ListOrders handles GET /orders, newest first.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.svc.ListOrders(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slog.Any("error", err))
		utils.WriteError(w, "Failed to fetch orders", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrdersToJSON(orders), http.StatusOK)
}

// GetOrderByID handles GET /orders/{id}.
func (h *OrdersHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "id")

	order, err := h.svc.GetOrderByID(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order",
			slog.String("order_id", orderID), slog.Any("error", err))
		utils.WriteError(w, "Failed to fetch order", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpdateOrderStatus handles PUT /orders/{id} with body {"orderStatus": ...}.
func (h *OrdersHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "id")

	var req UpdateOrderStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil || req.OrderStatus == "" {
		utils.WriteError(w, "orderStatus is required", http.StatusBadRequest)
		return
	}

	order, err := h.svc.UpdateOrderStatus(ctx, orderID, req.OrderStatus)

	var te *entities.InvalidTransitionError
	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "Order not found", http.StatusNotFound)
		return
	case errors.As(err, &te):
		utils.WriteError(w, te.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to update order status",
			slog.String("order_id", orderID), slog.Any("error", err))
		utils.WriteError(w, "Failed to update order", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}
