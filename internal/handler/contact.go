package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bunaihills/shop-service/internal/entities"
	"github.com/bunaihills/shop-service/internal/mailer"
	"github.com/bunaihills/shop-service/internal/service"
	"github.com/bunaihills/shop-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ContactRepo interface {
	SaveMessage(ctx context.Context, m entities.ContactMessage) (entities.ContactMessage, error)
	ListMessages(ctx context.Context) ([]entities.ContactMessage, error)
}

type ContactHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	repo     ContactRepo
	mailer   service.Mailer
	shopName string
	// adminEmail receives contact-form relays
	adminEmail string
}

func NewContactHandler(logger *slog.Logger, repo ContactRepo, m service.Mailer, shopName, adminEmail string) *ContactHandler {
	return &ContactHandler{
		logger:     logger.With(slog.String("handler", "contact")),
		validate:   validator.New(),
		repo:       repo,
		mailer:     m,
		shopName:   shopName,
		adminEmail: adminEmail,
	}
}

func (h *ContactHandler) Init(r chi.Router) {
	r.Route("/contact", func(r chi.Router) {
		r.Post("/", h.SubmitMessage)
		r.Get("/", h.ListMessages)
		r.Post("/reply", h.Reply)
	})
}

// SubmitMessage stores a contact-form message and relays it to the
// admin address. The relay is skipped when the mailer is unconfigured.
func (h *ContactHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ContactRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "All fields are required", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, "All fields are required", http.StatusBadRequest)
		return
	}

	saved, err := h.repo.SaveMessage(ctx, entities.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save contact message", slog.Any("error", err))
		utils.WriteError(w, "Error processing your request", http.StatusInternalServerError)
		return
	}

	if h.mailer.Configured() {
		html, err := mailer.RenderContactNotification(h.shopName, saved.Name, saved.Email, saved.Message, saved.CreatedAt)
		if err == nil {
			err = h.mailer.Send(mailer.Message{
				To:      h.adminEmail,
				Subject: "New Contact Form Submission from " + saved.Name,
				HTML:    html,
			})
		}
		if err != nil {
			// the message is already saved, the relay is best-effort
			h.logger.ErrorContext(ctx, "failed to relay contact message",
				slog.String("message_id", saved.ID), slog.Any("error", err))
		}
	}

	utils.WriteMessage(w, "Thank you for your message! We will get back to you soon.", http.StatusOK)
}

func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	messages, err := h.repo.ListMessages(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list contact messages", slog.Any("error", err))
		utils.WriteError(w, "Error fetching contacts", http.StatusInternalServerError)
		return
	}

	out := make([]ContactMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, ContactMessageEntityToJSON(m))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

// Reply sends an admin reply to a customer.
func (h *ContactHandler) Reply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ContactReplyRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "Email and message are required", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, "Email and message are required", http.StatusBadRequest)
		return
	}

	if !h.mailer.Configured() {
		utils.WriteError(w, "Mail transport is not configured", http.StatusServiceUnavailable)
		return
	}

	subject := req.Subject
	if subject == "" {
		subject = "Reply from " + h.shopName
	}

	html, err := mailer.RenderContactReply(h.shopName, req.Message, time.Now().UTC())
	if err == nil {
		err = h.mailer.Send(mailer.Message{To: req.ToEmail, Subject: subject, HTML: html})
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to send reply", slog.Any("error", err))
		utils.WriteError(w, "Error sending reply", http.StatusInternalServerError)
		return
	}

	utils.WriteMessage(w, "Reply sent successfully", http.StatusOK)
}
