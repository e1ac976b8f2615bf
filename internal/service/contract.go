package service

import (
	"context"

	"github.com/alimikegami/laundry-payment-service/internal/dto"
)

type PaymentService interface {
	CreateQris(ctx context.Context, req dto.ChargeRequest) (resp dto.ChargeResponse, err error)
	HandleNotification(ctx context.Context, req dto.PaymentNotification) (resp dto.NotificationResponse, err error)
	// Wait blocks until background reconciliations started by
	// HandleNotification have finished.
	Wait()
}
