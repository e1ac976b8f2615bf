package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alimikegami/laundry-payment-service/config"
	"github.com/alimikegami/laundry-payment-service/internal/domain"
	"github.com/alimikegami/laundry-payment-service/internal/dto"
	"github.com/alimikegami/laundry-payment-service/internal/infrastructure/metrics"
	paymentgateway "github.com/alimikegami/laundry-payment-service/internal/infrastructure/payment-gateway"
	"github.com/alimikegami/laundry-payment-service/internal/repository"
	"github.com/alimikegami/laundry-payment-service/pkg/errs"
	"github.com/alimikegami/laundry-payment-service/pkg/utils"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/rs/zerolog/log"
)

const (
	orderIDPrefix        = "LAUNDRY"
	qrisAcquirer         = "gopay"
	qrisExpiryMinutes    = 15
	defaultCustomerEmail = "customer@laundry.local"
	laundryItemName      = "Pembayaran Laundry"
	qrCodeActionName     = "generate-qr-code"
	chargeCreatedCode    = "201"
)

type PaymentServiceImpl struct {
	repository repository.PaymentRepository
	gateway    paymentgateway.Gateway
	config     *config.Config

	now             func() time.Time
	lastOrderMillis atomic.Int64
	reconciliations sync.WaitGroup
}

func CreatePaymentService(repository repository.PaymentRepository, gateway paymentgateway.Gateway, config *config.Config) PaymentService {
	return &PaymentServiceImpl{
		repository: repository,
		gateway:    gateway,
		config:     config,
		now:        time.Now,
	}
}

func (s *PaymentServiceImpl) CreateQris(ctx context.Context, req dto.ChargeRequest) (resp dto.ChargeResponse, err error) {
	if req.TransactionID == "" || req.Amount <= 0 || req.CustomerName == "" {
		return resp, errs.ErrMissingChargeFields
	}

	if !s.config.MidtransConfig.IsConfigured() {
		log.Ctx(ctx).Error().Str("component", "CreateQris").Msg("MIDTRANS_SERVER_KEY is not set")
		return resp, errs.ErrGatewayNotConfigured
	}

	now := s.now()
	orderID := fmt.Sprintf("%s-%s-%d", orderIDPrefix, req.TransactionID, s.nextOrderMillis(now))
	chargeReq := buildChargeRequest(orderID, int64(math.Round(float64(req.Amount))), req)

	chargeResp, err := s.gateway.Charge(ctx, chargeReq)
	if err != nil {
		metrics.IncCharge("error")
		log.Ctx(ctx).Error().Err(err).Str("component", "CreateQris").Msg("")
		return resp, err
	}

	if chargeResp.StatusCode != chargeCreatedCode {
		metrics.IncCharge("rejected")
		log.Ctx(ctx).Error().Str("component", "CreateQris").Interface("midtrans_response", chargeResp).Msg("Midtrans error")
		return resp, errs.WithDetails(errs.ErrCreateQris, chargeResp.StatusMessage)
	}

	amount, err := strconv.ParseFloat(chargeResp.GrossAmount, 64)
	if err != nil {
		metrics.IncCharge("error")
		return resp, fmt.Errorf("invalid gross_amount %q in midtrans response: %w", chargeResp.GrossAmount, err)
	}

	metrics.IncCharge("created")

	return dto.ChargeResponse{
		QrisID:            chargeResp.TransactionID,
		QrisString:        chargeResp.QRString,
		QrisURL:           qrCodeURL(chargeResp.Actions),
		ExpiredAt:         now.Add(qrisExpiryMinutes * time.Minute).UTC(),
		OrderID:           chargeResp.OrderID,
		Amount:            amount,
		TransactionStatus: chargeResp.TransactionStatus,
	}, nil
}

func (s *PaymentServiceImpl) HandleNotification(ctx context.Context, req dto.PaymentNotification) (resp dto.NotificationResponse, err error) {
	if !s.config.MidtransConfig.IsConfigured() || !s.config.RecordStoreConfig.IsConfigured() {
		log.Ctx(ctx).Error().Str("component", "HandleNotification").Msg("Missing environment variables")
		return resp, errs.ErrServerConfiguration
	}

	expected := GenerateSignature(req.OrderID, req.StatusCode, req.GrossAmount, s.config.MidtransConfig.ServerKey)
	if !signatureMatches(expected, req.SignatureKey) {
		log.Ctx(ctx).Error().Str("component", "HandleNotification").
			Str("expected", expected).
			Str("received", req.SignatureKey).
			Msg("Invalid signature")
		return resp, errs.ErrInvalidSignature
	}

	paymentStatus := domain.MapTransactionStatus(req.TransactionStatus)

	// An unreadable time must not cost the status update; tanggal_bayar stays NULL.
	paidAt, err := utils.PaymentTime(req.SettlementTime, req.TransactionTime)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "HandleNotification").
			Str("settlement_time", req.SettlementTime).
			Str("transaction_time", req.TransactionTime).
			Msg("Unparsable payment time")
		paidAt = nil
	}

	gatewayResponse := req.Raw
	if len(gatewayResponse) == 0 {
		gatewayResponse, err = json.Marshal(req)
		if err != nil {
			return resp, fmt.Errorf("error marshalling notification: %w", err)
		}
	}

	log.Ctx(ctx).Info().Str("component", "HandleNotification").
		Str("payment_status", string(paymentStatus)).
		Str("transaction_id", req.TransactionID).
		Msg("Updating payment status")

	updated, err := s.repository.UpdatePaymentByQrisID(ctx, req.TransactionID, domain.PaymentUpdate{
		Status:          paymentStatus,
		GatewayResponse: gatewayResponse,
		PaidAt:          paidAt,
	})
	if err != nil {
		return resp, errs.WithDetails(errs.ErrUpdatePaymentStatus, err.Error())
	}

	metrics.IncNotification(string(paymentStatus))
	log.Ctx(ctx).Info().Str("component", "HandleNotification").Int("updated", len(updated)).Msg("Payment updated")

	if paymentStatus == domain.PaymentStatusPaid && len(updated) > 0 {
		s.reconcileInBackground(ctx, updated[0].TransactionID)
	}

	return dto.NotificationResponse{
		Status:        "ok",
		PaymentStatus: string(paymentStatus),
	}, nil
}

func (s *PaymentServiceImpl) Wait() {
	s.reconciliations.Wait()
}

// nextOrderMillis returns now in milliseconds, bumped past the last value it
// handed out so order ids stay unique within the process.
func (s *PaymentServiceImpl) nextOrderMillis(now time.Time) int64 {
	for {
		last := s.lastOrderMillis.Load()
		millis := now.UnixMilli()
		if millis <= last {
			millis = last + 1
		}
		if s.lastOrderMillis.CompareAndSwap(last, millis) {
			return millis
		}
	}
}

func buildChargeRequest(orderID string, grossAmount int64, req dto.ChargeRequest) *coreapi.ChargeReq {
	email := req.CustomerEmail
	if email == "" {
		email = defaultCustomerEmail
	}

	items := []midtrans.ItemDetails{
		{
			ID:    req.TransactionID.String(),
			Price: grossAmount,
			Qty:   1,
			Name:  laundryItemName,
		},
	}

	return &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeQris,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: grossAmount,
		},
		Qris: &coreapi.QrisDetails{
			Acquirer: qrisAcquirer,
		},
		CustomerDetails: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Phone: req.CustomerPhone,
			Email: email,
		},
		Items: &items,
		CustomExpiry: &coreapi.CustomExpiry{
			ExpiryDuration: qrisExpiryMinutes,
			Unit:           "minute",
		},
	}
}

func qrCodeURL(actions []coreapi.Action) string {
	for _, action := range actions {
		if action.Name == qrCodeActionName {
			return action.URL
		}
	}
	return ""
}
