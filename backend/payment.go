package backend

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodgateway/pkg/logger"
	"foodgateway/pkg/models"
	"foodgateway/pkg/rpc"
	"foodgateway/storage"
)

// ManualReviewThreshold is the largest amount approved without review.
const ManualReviewThreshold = 1000.00

type Decision struct {
	Status  string
	Message string
	Debit   bool
}

// Decide applies the payment policy. The balance check runs before the
// threshold check.
func Decide(balance, amount float64, method string) Decision {
	switch {
	case balance < amount:
		return Decision{
			Status:  models.PaymentRejected,
			Message: fmt.Sprintf("Insufficient balance: has $%.2f, needs $%.2f", balance, amount),
		}
	case amount > ManualReviewThreshold:
		return Decision{Status: models.PaymentPending, Message: "High amount requires manual review"}
	default:
		return Decision{Status: models.PaymentApproved, Message: method + " payment approved", Debit: true}
	}
}

type Authorizer struct {
	ledger storage.ILedgerStorage
	log    logger.ILogger
}

func NewAuthorizer(ledger storage.ILedgerStorage, log logger.ILogger) *Authorizer {
	return &Authorizer{ledger: ledger, log: log}
}

// Authorize decides and, on approval, debits the account in one atomic step.
func (a *Authorizer) Authorize(ctx context.Context, accountID string, amount float64, method string) (models.PaymentOutcome, error) {
	var d Decision
	balance, err := a.ledger.Update(ctx, accountID, func(current float64) (float64, bool) {
		d = Decide(current, amount, method)
		if !d.Debit {
			return current, false
		}
		return current - amount, true
	})
	if err != nil {
		return models.PaymentOutcome{}, fmt.Errorf("update ledger: %w", err)
	}

	outcome := models.PaymentOutcome{
		PaymentID: uuid.NewString(),
		Status:    d.Status,
		Message:   d.Message,
	}

	switch d.Status {
	case models.PaymentRejected:
		a.log.Warning("payment rejected: insufficient balance", logger.String("account", accountID), logger.Float64("amount", amount))
	case models.PaymentPending:
		a.log.Info("payment pending review", logger.String("account", accountID), logger.Float64("amount", amount))
	default:
		a.log.Info("payment approved", logger.String("account", accountID), logger.Float64("new_balance", balance))
	}
	return outcome, nil
}

type PaymentServer struct {
	authorizer *Authorizer
	log        logger.ILogger
}

func NewPaymentServer(authorizer *Authorizer, log logger.ILogger) *PaymentServer {
	return &PaymentServer{authorizer: authorizer, log: log}
}

func (s *PaymentServer) ProcessPayment(ctx context.Context, in *rpc.PaymentRequest) (*rpc.PaymentResponse, error) {
	s.log.Info("processing payment",
		logger.String("order_id", in.OrderID),
		logger.String("user_id", in.UserID),
		logger.Float64("amount", in.Amount),
		logger.String("method", in.PaymentMethod))

	outcome, err := s.authorizer.Authorize(ctx, in.UserID, in.Amount, in.PaymentMethod)
	if err != nil {
		s.log.Error("failed to authorize payment", logger.String("order_id", in.OrderID), logger.Error(err))
		return nil, status.Errorf(codes.Internal, "authorize payment: %v", err)
	}

	return &rpc.PaymentResponse{
		PaymentID: outcome.PaymentID,
		Status:    outcome.Status,
		Message:   outcome.Message,
	}, nil
}
