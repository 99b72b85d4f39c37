package entities

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type CustomerInfo struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	State    string
	Pincode  string
}

// Order is the central entity. Items are carried verbatim from the
// submission payload, the server never recomputes prices or stock.
type Order struct {
	ID            string
	CustomerInfo  CustomerInfo
	Items         []json.RawMessage
	TotalAmount   float64
	PaymentMethod string
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var ErrOrderNotFound = errors.New("order not found")

// ValidationCode tags the first check an order payload failed.
type ValidationCode string

const (
	CodeMissingBody          ValidationCode = "missing_body"
	CodeInvalidCustomerInfo  ValidationCode = "invalid_customer_info"
	CodeMissingCustomerField ValidationCode = "missing_customer_field"
	CodeMissingItems         ValidationCode = "missing_items"
	CodeMissingPaymentInfo   ValidationCode = "missing_payment_info"
)

type ValidationError struct {
	Code ValidationCode
	// Field is set only for CodeMissingCustomerField.
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeMissingBody:
		return "No request body received"
	case CodeInvalidCustomerInfo:
		return "customerInfo is required and must be an object"
	case CodeMissingCustomerField:
		return fmt.Sprintf("Missing customer field: %s", e.Field)
	case CodeMissingItems:
		return "Order items are required"
	case CodeMissingPaymentInfo:
		return "totalAmount and paymentMethod are required"
	default:
		return "invalid order payload"
	}
}

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(o)
}

func init() {
	gob.Register(Order{})
	gob.Register(CustomerInfo{})
}
