package models

import (
	"errors"
	"fmt"
)

// Order statuses surfaced to the caller.
const (
	OrderStatusError         = "ERROR"
	OrderStatusCreated       = "CREATED"
	OrderStatusAssigned      = "ASSIGNED"
	OrderStatusPendingDriver = "PENDING_DRIVER"
	paymentStatusPrefix      = "PAYMENT_"
)

// PaymentOrderStatus is the order status reported when the payment step did
// not approve the order. An empty payment status yields the bare prefix.
func PaymentOrderStatus(paymentStatus string) string {
	return paymentStatusPrefix + paymentStatus
}

// SagaState is the lifecycle position of an order inside one saga run.
type SagaState string

const (
	SagaCreating          SagaState = "CREATING"
	SagaCreated           SagaState = "CREATED"
	SagaPaymentEvaluating SagaState = "PAYMENT_EVALUATING"
	SagaAssigningDriver   SagaState = "ASSIGNING_DRIVER"
	SagaTerminal          SagaState = "TERMINAL"
)

type OrderItem struct {
	Name     string   `json:"name"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
}

type DeliveryAddress struct {
	Street    string   `json:"street,omitempty"`
	City      string   `json:"city,omitempty"`
	ZipCode   string   `json:"zipCode,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type CreateOrderRequest struct {
	CustomerID      string           `json:"customerId"`
	RestaurantID    string           `json:"restaurantId"`
	Items           []OrderItem      `json:"items"`
	DeliveryAddress *DeliveryAddress `json:"deliveryAddress,omitempty"`
}

var (
	ErrNegativeQuantity = errors.New("item quantity must not be negative")
	ErrNegativePrice    = errors.New("item price must not be negative")
)

// Validate rejects items with a negative quantity or price.
func (r *CreateOrderRequest) Validate() error {
	for _, item := range r.Items {
		if item.Quantity != nil && *item.Quantity < 0 {
			return fmt.Errorf("%s: %w", item.Name, ErrNegativeQuantity)
		}
		if item.Price != nil && *item.Price < 0 {
			return fmt.Errorf("%s: %w", item.Name, ErrNegativePrice)
		}
	}
	return nil
}

// TotalAmount sums quantity*price over the items. A missing quantity or price
// counts as zero.
func (r *CreateOrderRequest) TotalAmount() float64 {
	var total float64
	for _, item := range r.Items {
		var qty int
		var price float64
		if item.Quantity != nil {
			qty = *item.Quantity
		}
		if item.Price != nil {
			price = *item.Price
		}
		total += price * float64(qty)
	}
	return total
}

func (r *CreateOrderRequest) ItemNames() []string {
	names := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		names = append(names, item.Name)
	}
	return names
}

type DriverInfo struct {
	DriverID             string `json:"driverId"`
	DriverName           string `json:"driverName"`
	Vehicle              string `json:"vehicle"`
	EstimatedTimeMinutes int32  `json:"estimatedTimeMinutes"`
}

type CreateOrderResponse struct {
	OrderID       string      `json:"orderId"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	Driver        *DriverInfo `json:"driver"`
	Message       string      `json:"message"`
}

type OrderStatusResponse struct {
	OrderID string  `json:"orderId"`
	Status  *string `json:"status"`
	Message string  `json:"message"`
}

// Order is the in-flight state of one saga run. It is never stored.
type Order struct {
	ID            string
	State         SagaState
	Status        string
	PaymentStatus string
	Driver        *DriverInfo
}
