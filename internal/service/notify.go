package service

import (
	"context"
	"log/slog"

	"github.com/bunaihills/shop-service/internal/entities"
	"github.com/bunaihills/shop-service/internal/mailer"
)

// NotifyResult reports the outcome of a confirmation dispatch. It is
// never an error: notification is best-effort and its outcome must not
// leak into the submission result.
type NotifyResult struct {
	Sent   bool
	Reason string
}

const (
	// ReasonUnconfigured marks a skipped dispatch because no mail
	// credentials are present. This is a normal outcome.
	ReasonUnconfigured = "unconfigured"
	// ReasonTransportError marks an attempted dispatch the transport
	// rejected. The error is logged, never surfaced.
	ReasonTransportError = "transport-error"
)

type Mailer interface {
	Configured() bool
	Send(msg mailer.Message) error
}

type OrderNotifier struct {
	logger   *slog.Logger
	mailer   Mailer
	shopName string
}

func NewOrderNotifier(logger *slog.Logger, m Mailer, shopName string) *OrderNotifier {
	return &OrderNotifier{
		logger:   logger.With(slog.String("component", "notifier")),
		mailer:   m,
		shopName: shopName,
	}
}

// Notify renders and sends the order confirmation to the customer.
func (n *OrderNotifier) Notify(ctx context.Context, order entities.Order) NotifyResult {
	if !n.mailer.Configured() {
		n.logger.DebugContext(ctx, "mailer unconfigured, skipping confirmation",
			slog.String("order_id", order.ID))
		notificationsTotal.WithLabelValues(ReasonUnconfigured).Inc()
		return NotifyResult{Sent: false, Reason: ReasonUnconfigured}
	}

	html, err := mailer.RenderOrderConfirmation(
		n.shopName,
		order.CustomerInfo.FullName,
		order.ID,
		order.TotalAmount,
		order.PaymentMethod,
		order.CreatedAt,
	)
	if err == nil {
		err = n.mailer.Send(mailer.Message{
			To:      order.CustomerInfo.Email,
			Subject: "Order Confirmation - " + order.ID,
			HTML:    html,
		})
	}
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to send order confirmation",
			slog.String("order_id", order.ID), slog.Any("error", err))
		notificationsTotal.WithLabelValues(ReasonTransportError).Inc()
		return NotifyResult{Sent: false, Reason: ReasonTransportError}
	}

	n.logger.InfoContext(ctx, "order confirmation sent",
		slog.String("order_id", order.ID))
	notificationsTotal.WithLabelValues("sent").Inc()
	return NotifyResult{Sent: true}
}
