package memory

import (
	"context"
	"sync"

	"github.com/alimikegami/laundry-payment-service/internal/domain"
	"github.com/alimikegami/laundry-payment-service/pkg/errs"
)

// PaymentRepository keeps pembayaran and transaksi rows in memory. It counts
// calls per operation so tests can assert which store operations ran.
type PaymentRepository struct {
	mu           sync.RWMutex
	payments     []domain.Payment
	transactions map[domain.ID]domain.Transaction

	updateCalls int
	readCalls   int

	// UpdateErr, when set, is returned by UpdatePaymentByQrisID.
	UpdateErr error
	// ReadErr, when set, is returned by both read operations.
	ReadErr error
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		transactions: make(map[domain.ID]domain.Transaction),
	}
}

func (r *PaymentRepository) AddPayment(p domain.Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments = append(r.payments, p)
}

func (r *PaymentRepository) AddTransaction(t domain.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions[t.ID] = t
}

func (r *PaymentRepository) Payments() []domain.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Payment, len(r.payments))
	copy(out, r.payments)
	return out
}

func (r *PaymentRepository) UpdateCalls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.updateCalls
}

func (r *PaymentRepository) ReadCalls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.readCalls
}

func (r *PaymentRepository) UpdatePaymentByQrisID(ctx context.Context, qrisID string, data domain.PaymentUpdate) ([]domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.updateCalls++
	if r.UpdateErr != nil {
		return nil, r.UpdateErr
	}

	var updated []domain.Payment
	for i := range r.payments {
		if r.payments[i].QrisID != qrisID {
			continue
		}
		r.payments[i].Status = data.Status
		r.payments[i].GatewayResponse = data.GatewayResponse
		r.payments[i].PaidAt = data.PaidAt
		updated = append(updated, r.payments[i])
	}

	return updated, nil
}

func (r *PaymentRepository) GetTransactionByID(ctx context.Context, id string) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.readCalls++
	if r.ReadErr != nil {
		return domain.Transaction{}, r.ReadErr
	}

	t, ok := r.transactions[domain.ID(id)]
	if !ok {
		return domain.Transaction{}, errs.ErrNotFound
	}

	return t, nil
}

func (r *PaymentRepository) GetPaymentsByTransactionID(ctx context.Context, transactionID string, status domain.PaymentStatus) ([]domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.readCalls++
	if r.ReadErr != nil {
		return nil, r.ReadErr
	}

	var payments []domain.Payment
	for _, p := range r.payments {
		if p.TransactionID == domain.ID(transactionID) && p.Status == status {
			payments = append(payments, p)
		}
	}

	return payments, nil
}
