package service

import (
	"context"

	"verser/internal/models"
	"verser/internal/repository"

	"github.com/google/uuid"
)

// PaymentService provides the mock payment flow: no processor is contacted,
// every valid payment settles immediately.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
}

// NewPaymentService returns a new PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// CreatePaymentInput is the input for creating a payment. Amount is in minor
// units (cents).
type CreatePaymentInput struct {
	UserID   uint
	Amount   int64
	Currency string
}

// CreatePayment validates and records a payment as completed.
func (s *PaymentService) CreatePayment(ctx context.Context, in CreatePaymentInput) (*models.Payment, error) {
	if in.Amount <= 0 {
		return nil, models.NewValidationError("Payment amount must be positive")
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}
	if len(in.Currency) != 3 {
		return nil, models.NewValidationError("Currency must be a 3-letter code")
	}

	payment := &models.Payment{
		UserID:    in.UserID,
		Amount:    in.Amount,
		Currency:  in.Currency,
		Status:    models.PaymentStatusCompleted,
		Reference: uuid.NewString(),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListPayments returns the user's payments, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, userID uint, limit, offset int) ([]*models.Payment, error) {
	return s.paymentRepo.ListByUser(ctx, userID, limit, offset)
}
