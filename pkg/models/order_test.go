package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentOrderStatus(t *testing.T) {
	assert.Equal(t, "PAYMENT_REJECTED", PaymentOrderStatus("REJECTED"))
	assert.Equal(t, "PAYMENT_pending", PaymentOrderStatus("pending"))
	assert.Equal(t, "PAYMENT_", PaymentOrderStatus(""))
}

func TestCreateOrderRequestValidate(t *testing.T) {
	qty, negQty := 2, -1
	price, negPrice := 10.0, -0.5

	ok := &CreateOrderRequest{Items: []OrderItem{{Name: "pizza", Quantity: &qty, Price: &price}, {Name: "free"}}}
	assert.NoError(t, ok.Validate())

	badQty := &CreateOrderRequest{Items: []OrderItem{{Name: "pizza", Quantity: &negQty, Price: &price}}}
	assert.True(t, errors.Is(badQty.Validate(), ErrNegativeQuantity))

	badPrice := &CreateOrderRequest{Items: []OrderItem{{Name: "pizza", Quantity: &qty, Price: &negPrice}}}
	assert.True(t, errors.Is(badPrice.Validate(), ErrNegativePrice))
}
