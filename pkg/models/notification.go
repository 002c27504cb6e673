package models

import "time"

const (
	NotifyCreated        = "CREATED"
	NotifyPaymentFailed  = "PAYMENT_FAILED"
	NotifyDriverAssigned = "DRIVER_ASSIGNED"
	NotifyPendingDriver  = "PENDING_DRIVER"
	NotifyUnknownPayment = "UNKNOWN_PAYMENT"

	UpdateSubscribed   = "SUBSCRIBED"
	UpdateNotification = "NOTIFICATION"
)

type NotificationEvent struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

type NotificationRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}
