package models

const (
	PaymentApproved = "APPROVED"
	PaymentRejected = "REJECTED"
	PaymentPending  = "PENDING"
	PaymentFailed   = "FAILED"

	PaymentMethodCreditCard = "CREDIT_CARD"
)

type PaymentOutcome struct {
	PaymentID string
	Status    string
	Message   string
}
