package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alimikegami/laundry-payment-service/internal/domain"
	"github.com/alimikegami/laundry-payment-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type PostgresPaymentRepository struct {
	db *sqlx.DB
}

func CreatePostgresPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

func (r *PostgresPaymentRepository) UpdatePaymentByQrisID(ctx context.Context, qrisID string, data domain.PaymentUpdate) (payments []domain.Payment, err error) {
	err = r.db.SelectContext(ctx, &payments,
		`UPDATE pembayaran SET status = $1, gateway_response = $2::jsonb, tanggal_bayar = $3
		WHERE qris_id = $4
		RETURNING id, transaksi_id, qris_id, jumlah, status, tanggal_bayar`,
		data.Status, string(data.GatewayResponse), data.PaidAt, qrisID)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdatePaymentByQrisID").Msg("")
		return nil, err
	}

	return payments, nil
}

func (r *PostgresPaymentRepository) GetTransactionByID(ctx context.Context, id string) (data domain.Transaction, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT id, total_harga FROM transaksi WHERE id = $1", id)
	err = row.StructScan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return data, errs.ErrNotFound
		}
		log.Error().Err(err).Str("component", "GetTransactionByID").Msg("")
		return data, err
	}

	return
}

func (r *PostgresPaymentRepository) GetPaymentsByTransactionID(ctx context.Context, transactionID string, status domain.PaymentStatus) (payments []domain.Payment, err error) {
	err = r.db.SelectContext(ctx, &payments,
		"SELECT id, transaksi_id, qris_id, jumlah, status, tanggal_bayar FROM pembayaran WHERE transaksi_id = $1 AND status = $2",
		transactionID, status)
	if err != nil {
		log.Error().Err(err).Str("component", "GetPaymentsByTransactionID").Msg("")
		return nil, err
	}

	return payments, nil
}
