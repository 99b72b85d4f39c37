package service_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/bunaihills/shop-service/internal/entities"
	"github.com/bunaihills/shop-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBody(t *testing.T, mutate func(m map[string]any)) []byte {
	t.Helper()

	body := map[string]any{
		"customerInfo": map[string]any{
			"fullName": "Asha Negi",
			"email":    "asha@example.com",
			"phone":    "9876543210",
			"address":  "12 Mall Road",
			"city":     "Shimla",
			"state":    "Himachal Pradesh",
			"pincode":  "171001",
		},
		"items": []map[string]any{
			{"productId": "p1", "title": "Wool Shawl", "qty": 1, "price": 1200},
			{"productId": "p2", "title": "Knit Cap", "qty": 1, "price": 300},
		},
		"totalAmount":   1500,
		"paymentMethod": "cod",
	}
	if mutate != nil {
		mutate(body)
	}

	data, err := json.Marshal(body)
	require.NoError(t, err)
	return data
}

func TestParseOrder_Valid(t *testing.T) {
	order, err := service.ParseOrder(validBody(t, nil))
	require.NoError(t, err)

	assert.Equal(t, entities.StatusPending, order.Status)
	assert.Equal(t, "Asha Negi", order.CustomerInfo.FullName)
	assert.Equal(t, "171001", order.CustomerInfo.Pincode)
	assert.Equal(t, 1500.0, order.TotalAmount)
	assert.Equal(t, "cod", order.PaymentMethod)

	// line items pass through untouched
	require.Len(t, order.Items, 2)
	assert.JSONEq(t, `{"productId":"p1","title":"Wool Shawl","qty":1,"price":1200}`, string(order.Items[0]))
}

func TestParseOrder_MissingBody(t *testing.T) {
	for _, body := range [][]byte{nil, []byte(""), []byte("   "), []byte("{}"), []byte("not json")} {
		_, err := service.ParseOrder(body)

		var ve *entities.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, entities.CodeMissingBody, ve.Code)
		assert.Equal(t, "No request body received", ve.Error())
	}
}

func TestParseOrder_CustomerInfo(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"absent", func(m map[string]any) { delete(m, "customerInfo") }},
		{"null", func(m map[string]any) { m["customerInfo"] = nil }},
		{"string", func(m map[string]any) { m["customerInfo"] = "asha" }},
		{"array", func(m map[string]any) { m["customerInfo"] = []string{"asha"} }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.ParseOrder(validBody(t, tc.mutate))

			var ve *entities.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, entities.CodeInvalidCustomerInfo, ve.Code)
			assert.Equal(t, "customerInfo is required and must be an object", ve.Error())
		})
	}
}

func TestParseOrder_MissingCustomerField(t *testing.T) {
	fields := []string{"fullName", "email", "phone", "address", "city", "state", "pincode"}

	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			body := validBody(t, func(m map[string]any) {
				delete(m["customerInfo"].(map[string]any), field)
			})

			_, err := service.ParseOrder(body)

			var ve *entities.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, entities.CodeMissingCustomerField, ve.Code)
			assert.Equal(t, field, ve.Field)
			assert.Equal(t, fmt.Sprintf("Missing customer field: %s", field), ve.Error())
		})
	}

	t.Run("empty string counts as missing", func(t *testing.T) {
		body := validBody(t, func(m map[string]any) {
			m["customerInfo"].(map[string]any)["email"] = ""
		})

		_, err := service.ParseOrder(body)

		var ve *entities.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "email", ve.Field)
	})

	t.Run("first missing field wins", func(t *testing.T) {
		body := validBody(t, func(m map[string]any) {
			info := m["customerInfo"].(map[string]any)
			delete(info, "phone")
			delete(info, "city")
		})

		_, err := service.ParseOrder(body)

		var ve *entities.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "phone", ve.Field)
	})
}

func TestParseOrder_Items(t *testing.T) {
	for name, mutate := range map[string]func(m map[string]any){
		"absent": func(m map[string]any) { delete(m, "items") },
		"empty":  func(m map[string]any) { m["items"] = []any{} },
		"null":   func(m map[string]any) { m["items"] = nil },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := service.ParseOrder(validBody(t, mutate))

			var ve *entities.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, entities.CodeMissingItems, ve.Code)
			assert.Equal(t, "Order items are required", ve.Error())
		})
	}
}

func TestParseOrder_PaymentInfo(t *testing.T) {
	for name, mutate := range map[string]func(m map[string]any){
		"no total":       func(m map[string]any) { delete(m, "totalAmount") },
		"zero total":     func(m map[string]any) { m["totalAmount"] = 0 },
		"negative total": func(m map[string]any) { m["totalAmount"] = -10 },
		"no method":      func(m map[string]any) { delete(m, "paymentMethod") },
		"empty method":   func(m map[string]any) { m["paymentMethod"] = "" },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := service.ParseOrder(validBody(t, mutate))

			var ve *entities.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, entities.CodeMissingPaymentInfo, ve.Code)
			assert.Equal(t, "totalAmount and paymentMethod are required", ve.Error())
		})
	}
}

func TestParseOrder_CustomerCheckedBeforeItems(t *testing.T) {
	body := validBody(t, func(m map[string]any) {
		delete(m["customerInfo"].(map[string]any), "state")
		m["items"] = []any{}
	})

	_, err := service.ParseOrder(body)

	var ve *entities.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, entities.CodeMissingCustomerField, ve.Code)
	assert.Equal(t, "state", ve.Field)
}
