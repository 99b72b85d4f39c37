package service

import (
	"bytes"
	"encoding/json"

	"github.com/bunaihills/shop-service/internal/entities"
)

// ParseOrder validates a raw submission payload and builds an order
// draft with the initial pending status. Validation is fail-fast: the
// first violated check is reported and nothing else is inspected.
// The function is pure, it touches no state and no I/O.
func ParseOrder(body []byte) (entities.Order, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return entities.Order{}, &entities.ValidationError{Code: entities.CodeMissingBody}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return entities.Order{}, &entities.ValidationError{Code: entities.CodeMissingBody}
	}

	rawInfo, ok := fields["customerInfo"]
	if !ok {
		return entities.Order{}, &entities.ValidationError{Code: entities.CodeInvalidCustomerInfo}
	}
	var info map[string]json.RawMessage
	if err := json.Unmarshal(rawInfo, &info); err != nil || info == nil {
		return entities.Order{}, &entities.ValidationError{Code: entities.CodeInvalidCustomerInfo}
	}

	var customer entities.CustomerInfo
	// checked in this fixed order, the first missing field wins
	required := []struct {
		name string
		dst  *string
	}{
		{"fullName", &customer.FullName},
		{"email", &customer.Email},
		{"phone", &customer.Phone},
		{"address", &customer.Address},
		{"city", &customer.City},
		{"state", &customer.State},
		{"pincode", &customer.Pincode},
	}
	for _, f := range required {
		var value string
		if raw, ok := info[f.name]; ok {
			json.Unmarshal(raw, &value)
		}
		if value == "" {
			return entities.Order{}, &entities.ValidationError{
				Code:  entities.CodeMissingCustomerField,
				Field: f.name,
			}
		}
		*f.dst = value
	}

	var items []json.RawMessage
	if raw, ok := fields["items"]; ok {
		json.Unmarshal(raw, &items)
	}
	if len(items) == 0 {
		return entities.Order{}, &entities.ValidationError{Code: entities.CodeMissingItems}
	}

	var totalAmount float64
	if raw, ok := fields["totalAmount"]; ok {
		json.Unmarshal(raw, &totalAmount)
	}
	var paymentMethod string
	if raw, ok := fields["paymentMethod"]; ok {
		json.Unmarshal(raw, &paymentMethod)
	}
	if totalAmount <= 0 || paymentMethod == "" {
		return entities.Order{}, &entities.ValidationError{Code: entities.CodeMissingPaymentInfo}
	}

	return entities.Order{
		CustomerInfo:  customer,
		Items:         items,
		TotalAmount:   totalAmount,
		PaymentMethod: paymentMethod,
		Status:        entities.StatusPending,
	}, nil
}
