package service

import (
	"context"
	"errors"
	"time"

	"github.com/alimikegami/laundry-payment-service/internal/domain"
	"github.com/alimikegami/laundry-payment-service/internal/infrastructure/metrics"
	"github.com/alimikegami/laundry-payment-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const reconcileTimeout = 10 * time.Second

// reconcileInBackground checks whether the transaction is fully paid without
// holding up the webhook acknowledgement. Failures are only logged.
func (s *PaymentServiceImpl) reconcileInBackground(ctx context.Context, transactionID domain.ID) {
	s.reconciliations.Add(1)

	go func() {
		defer s.reconciliations.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reconcileTimeout)
		defer cancel()

		logger := log.Ctx(ctx).With().Str("component", "ReconcileTransaction").Str("transaksi_id", transactionID.String()).Logger()

		fullyPaid, err := s.reconcileTransaction(ctx, transactionID.String())
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				logger.Warn().Msg("transaction not found, skipping reconciliation")
				return
			}
			logger.Error().Err(err).Msg("")
			return
		}

		if fullyPaid {
			metrics.IncFullyPaid()
			logger.Info().Msg("Transaction fully paid, can update transaksi status if needed")
		}
	}()
}

// reconcileTransaction reports whether the settled payments of a transaction
// cover its total price. It reads only.
func (s *PaymentServiceImpl) reconcileTransaction(ctx context.Context, transactionID string) (bool, error) {
	var (
		transaction domain.Transaction
		paid        []domain.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		transaction, err = s.repository.GetTransactionByID(gctx, transactionID)
		return
	})
	g.Go(func() (err error) {
		paid, err = s.repository.GetPaymentsByTransactionID(gctx, transactionID, domain.PaymentStatusPaid)
		return
	})

	if err := g.Wait(); err != nil {
		return false, err
	}

	return domain.TotalPaid(paid) >= transaction.TotalPrice, nil
}
