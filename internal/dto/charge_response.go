package dto

import "time"

type ChargeResponse struct {
	QrisID            string    `json:"qris_id"`
	QrisString        string    `json:"qris_string"`
	QrisURL           string    `json:"qris_url"`
	ExpiredAt         time.Time `json:"expired_at"`
	OrderID           string    `json:"order_id"`
	Amount            float64   `json:"amount"`
	TransactionStatus string    `json:"transaction_status"`
}
