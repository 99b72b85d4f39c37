package repo

import (
	"encoding/json"
	"time"

	"github.com/bunaihills/shop-service/internal/entities"
)

type Order struct {
	ID            string    `db:"id"`
	TotalAmount   float64   `db:"total_amount"`
	PaymentMethod string    `db:"payment_method"`
	OrderStatus   string    `db:"order_status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type Customer struct {
	OrderID  string `db:"order_id"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
	Phone    string `db:"phone"`
	Address  string `db:"address"`
	City     string `db:"city"`
	State    string `db:"state"`
	Pincode  string `db:"pincode"`
}

// Item rows keep the submitted line item verbatim as JSONB, with the
// position preserving input order.
type Item struct {
	OrderID  string `db:"order_id"`
	Position int    `db:"position"`
	Payload  []byte `db:"payload"`
}

func CustomerToEntity(c Customer) entities.CustomerInfo {
	return entities.CustomerInfo{
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
		Address:  c.Address,
		City:     c.City,
		State:    c.State,
		Pincode:  c.Pincode,
	}
}

func OrderToEntity(o Order, c Customer, items []Item) entities.Order {
	order := entities.Order{
		ID:            o.ID,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		Status:        entities.OrderStatus(o.OrderStatus),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		CustomerInfo:  CustomerToEntity(c),
	}

	if len(items) > 0 {
		order.Items = make([]json.RawMessage, len(items))
		for _, it := range items {
			if it.Position >= 0 && it.Position < len(items) {
				order.Items[it.Position] = json.RawMessage(it.Payload)
			}
		}
	}

	return order
}
