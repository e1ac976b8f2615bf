package dto

import "github.com/alimikegami/laundry-payment-service/internal/domain"

type ChargeRequest struct {
	TransactionID domain.ID     `json:"transaksi_id"`
	Amount        domain.Amount `json:"amount"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone,omitempty"`
	CustomerEmail string        `json:"customer_email,omitempty"`
}
