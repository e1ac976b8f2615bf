package domain

import (
	"encoding/json"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "lunas"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusFailed  PaymentStatus = "gagal"
	PaymentStatusExpired PaymentStatus = "expired"
)

// Payment is a row of the pembayaran table.
type Payment struct {
	ID              ID              `db:"id" json:"id"`
	TransactionID   ID              `db:"transaksi_id" json:"transaksi_id"`
	QrisID          string          `db:"qris_id" json:"qris_id"`
	Amount          float64         `db:"jumlah" json:"jumlah"`
	Status          PaymentStatus   `db:"status" json:"status"`
	GatewayResponse json.RawMessage `db:"gateway_response" json:"gateway_response,omitempty"`
	PaidAt          *time.Time      `db:"tanggal_bayar" json:"tanggal_bayar,omitempty"`
}

// PaymentUpdate is what a gateway notification writes onto a payment.
type PaymentUpdate struct {
	Status          PaymentStatus   `db:"status" json:"status"`
	GatewayResponse json.RawMessage `db:"gateway_response" json:"gateway_response"`
	PaidAt          *time.Time      `db:"tanggal_bayar" json:"tanggal_bayar"`
}

// Transaction is a row of the transaksi table, the laundry order being paid.
type Transaction struct {
	ID         ID      `db:"id" json:"id"`
	TotalPrice float64 `db:"total_harga" json:"total_harga"`
}
