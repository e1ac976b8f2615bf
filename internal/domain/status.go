package domain

// MapTransactionStatus translates a Midtrans transaction_status into the
// payment status stored on pembayaran. Unknown values are treated as pending.
func MapTransactionStatus(transactionStatus string) PaymentStatus {
	switch transactionStatus {
	case "capture", "settlement":
		return PaymentStatusPaid
	case "pending":
		return PaymentStatusPending
	case "deny", "cancel", "failure":
		return PaymentStatusFailed
	case "expire":
		return PaymentStatusExpired
	default:
		return PaymentStatusPending
	}
}

// TotalPaid sums the amounts of the given payments.
func TotalPaid(payments []Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}
