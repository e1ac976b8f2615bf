package dto

type NotificationResponse struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}
