package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/bunaihills/shop-service/internal/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ContactMessage struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

func ContactMessageToEntity(m ContactMessage) entities.ContactMessage {
	return entities.ContactMessage{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

type contactRepo struct {
	base
}

func NewContactRepo(db *sqlx.DB) *contactRepo {
	return &contactRepo{base: newBase(db)}
}

func (r *contactRepo) SaveMessage(ctx context.Context, m entities.ContactMessage) (entities.ContactMessage, error) {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()

	query, args := r.qb.Insert("contact_messages").
		Columns("id", "name", "email", "message", "created_at").
		Values(m.ID, m.Name, m.Email, m.Message, m.CreatedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return entities.ContactMessage{}, fmt.Errorf("failed to save contact message: %w", err)
	}
	return m, nil
}

func (r *contactRepo) ListMessages(ctx context.Context) ([]entities.ContactMessage, error) {
	query, args := r.qb.Select("id", "name", "email", "message", "created_at").
		From("contact_messages").
		OrderBy("created_at DESC").
		MustSql()

	var rows []ContactMessage
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select contact messages: %w", err)
	}

	messages := make([]entities.ContactMessage, 0, len(rows))
	for _, m := range rows {
		messages = append(messages, ContactMessageToEntity(m))
	}
	return messages, nil
}
