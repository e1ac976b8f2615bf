package repository

import (
	"context"

	"github.com/alimikegami/laundry-payment-service/internal/domain"
)

type PaymentRepository interface {
	// UpdatePaymentByQrisID applies data to every payment whose qris_id
	// matches and returns the updated rows.
	UpdatePaymentByQrisID(ctx context.Context, qrisID string, data domain.PaymentUpdate) (payments []domain.Payment, err error)
	GetTransactionByID(ctx context.Context, id string) (data domain.Transaction, err error)
	GetPaymentsByTransactionID(ctx context.Context, transactionID string, status domain.PaymentStatus) (payments []domain.Payment, err error)
}
