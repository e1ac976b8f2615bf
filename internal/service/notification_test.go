package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alimikegami/laundry-payment-service/config"
	"github.com/alimikegami/laundry-payment-service/internal/domain"
	"github.com/alimikegami/laundry-payment-service/internal/dto"
	"github.com/alimikegami/laundry-payment-service/internal/repository/memory"
	"github.com/alimikegami/laundry-payment-service/pkg/errs"
	"github.com/stretchr/testify/suite"
)

type NotificationTestSuite struct {
	suite.Suite
	repo    *memory.PaymentRepository
	gateway *fakeGateway
	svc     *PaymentServiceImpl
}

func (s *NotificationTestSuite) SetupTest() {
	s.repo = memory.NewPaymentRepository()
	s.repo.AddTransaction(domain.Transaction{ID: "T1", TotalPrice: 50000})
	s.repo.AddPayment(domain.Payment{ID: "P1", TransactionID: "T1", QrisID: "qris-1", Amount: 50000, Status: domain.PaymentStatusPending})
	s.gateway = &fakeGateway{}
	s.svc = newTestService(s.repo, s.gateway, testConfig())
}

func (s *NotificationTestSuite) TearDownTest() {
	s.svc.Wait()
}

func signedNotification(transactionStatus string) dto.PaymentNotification {
	n := dto.PaymentNotification{
		OrderID:           "LAUNDRY-1-1000",
		TransactionID:     "qris-1",
		StatusCode:        "200",
		GrossAmount:       "50000",
		TransactionStatus: transactionStatus,
		TransactionTime:   "2024-05-01 10:15:30",
	}
	n.SignatureKey = GenerateSignature(n.OrderID, n.StatusCode, n.GrossAmount, testServerKey)
	n.Raw, _ = json.Marshal(map[string]string{
		"order_id":           n.OrderID,
		"transaction_id":     n.TransactionID,
		"status_code":        n.StatusCode,
		"gross_amount":       n.GrossAmount,
		"transaction_status": n.TransactionStatus,
		"transaction_time":   n.TransactionTime,
		"signature_key":      n.SignatureKey,
	})
	return n
}

func (s *NotificationTestSuite) Test_GenerateSignature() {
	expected := "00ebfe1d43e6e85467c5fa5321c6b3a160486978c7f1e720d5a0a2271e2a526d7800e2b714cad7ed8ab92b412c58a310940f551f3170b3aa9c9328642c3ba080"

	s.Equal(expected, GenerateSignature("LAUNDRY-1-1000", "200", "50000", "K"))
}

func (s *NotificationTestSuite) Test_SettlementEndToEnd() {
	n := signedNotification("settlement")
	n.SettlementTime = "2024-05-01 10:20:00"
	n.Raw = json.RawMessage(`{"order_id":"LAUNDRY-1-1000","settlement_time":"2024-05-01 10:20:00"}`)

	resp, err := s.svc.HandleNotification(context.Background(), n)
	s.Require().NoError(err)
	s.Equal(dto.NotificationResponse{Status: "ok", PaymentStatus: "lunas"}, resp)

	s.Equal(1, s.repo.UpdateCalls())
	payment := s.repo.Payments()[0]
	s.Equal(domain.PaymentStatusPaid, payment.Status)
	s.JSONEq(string(n.Raw), string(payment.GatewayResponse))
	s.Require().NotNil(payment.PaidAt)
	s.True(time.Date(2024, 5, 1, 3, 20, 0, 0, time.UTC).Equal(*payment.PaidAt))
}

func (s *NotificationTestSuite) Test_PaidAtFallsBackToTransactionTime() {
	_, err := s.svc.HandleNotification(context.Background(), signedNotification("capture"))
	s.Require().NoError(err)

	payment := s.repo.Payments()[0]
	s.Require().NotNil(payment.PaidAt)
	s.True(time.Date(2024, 5, 1, 3, 15, 30, 0, time.UTC).Equal(*payment.PaidAt))
}

func (s *NotificationTestSuite) Test_StatusMapping() {
	testCases := map[string]string{
		"capture":    "lunas",
		"settlement": "lunas",
		"pending":    "pending",
		"deny":       "gagal",
		"cancel":     "gagal",
		"failure":    "gagal",
		"expire":     "expired",
		"<unknown>":  "pending",
	}

	for transactionStatus, expected := range testCases {
		s.Run(transactionStatus, func() {
			resp, err := s.svc.HandleNotification(context.Background(), signedNotification(transactionStatus))
			s.Require().NoError(err)
			s.Equal(expected, resp.PaymentStatus)
			s.Equal(domain.PaymentStatus(expected), s.repo.Payments()[0].Status)
		})
	}
}

func (s *NotificationTestSuite) Test_InvalidSignature() {
	n := signedNotification("settlement")
	n.SignatureKey = "deadbeef"

	_, err := s.svc.HandleNotification(context.Background(), n)
	s.ErrorIs(err, errs.ErrInvalidSignature)
	s.Equal(0, s.repo.UpdateCalls())
	s.Equal(domain.PaymentStatusPending, s.repo.Payments()[0].Status)
}

func (s *NotificationTestSuite) Test_TamperedAmount() {
	n := signedNotification("settlement")
	n.GrossAmount = "1"

	_, err := s.svc.HandleNotification(context.Background(), n)
	s.ErrorIs(err, errs.ErrInvalidSignature)
	s.Equal(0, s.repo.UpdateCalls())
}

func (s *NotificationTestSuite) Test_MissingConfiguration() {
	testCases := map[string]func(conf *config.Config){
		"server key":        func(conf *config.Config) { conf.MidtransConfig.ServerKey = "" },
		"store url":         func(conf *config.Config) { conf.RecordStoreConfig.URL = "" },
		"store service key": func(conf *config.Config) { conf.RecordStoreConfig.ServiceKey = "" },
	}

	for name, modify := range testCases {
		s.Run(name, func() {
			repo := memory.NewPaymentRepository()
			conf := testConfig()
			modify(conf)
			svc := newTestService(repo, &fakeGateway{}, conf)

			_, err := svc.HandleNotification(context.Background(), signedNotification("settlement"))
			s.ErrorIs(err, errs.ErrServerConfiguration)
			s.Equal(0, repo.UpdateCalls())
			s.Equal(0, repo.ReadCalls())
		})
	}
}

func (s *NotificationTestSuite) Test_StoreError() {
	s.repo.UpdateErr = errors.New("connection refused")

	_, err := s.svc.HandleNotification(context.Background(), signedNotification("settlement"))
	s.Require().ErrorIs(err, errs.ErrUpdatePaymentStatus)
	s.Equal("connection refused", errs.GetErrorDetails(err))
	s.Equal(1, s.repo.UpdateCalls())
}

func (s *NotificationTestSuite) Test_UnparsablePaymentTimeStillUpdates() {
	n := signedNotification("settlement")
	n.TransactionTime = "01/05/2024"

	resp, err := s.svc.HandleNotification(context.Background(), n)
	s.Require().NoError(err)
	s.Equal("lunas", resp.PaymentStatus)

	s.Equal(1, s.repo.UpdateCalls())
	payment := s.repo.Payments()[0]
	s.Equal(domain.PaymentStatusPaid, payment.Status)
	s.Nil(payment.PaidAt)
}

func (s *NotificationTestSuite) Test_RFC3339SettlementTime() {
	n := signedNotification("settlement")
	n.SettlementTime = "2024-05-01T10:20:00+07:00"

	_, err := s.svc.HandleNotification(context.Background(), n)
	s.Require().NoError(err)

	payment := s.repo.Payments()[0]
	s.Require().NotNil(payment.PaidAt)
	s.True(time.Date(2024, 5, 1, 3, 20, 0, 0, time.UTC).Equal(*payment.PaidAt))
}

func (s *NotificationTestSuite) Test_ReconciliationRunsOnlyWhenPaid() {
	_, err := s.svc.HandleNotification(context.Background(), signedNotification("pending"))
	s.Require().NoError(err)
	s.svc.Wait()
	s.Equal(0, s.repo.ReadCalls())

	_, err = s.svc.HandleNotification(context.Background(), signedNotification("settlement"))
	s.Require().NoError(err)
	s.svc.Wait()
	s.Equal(2, s.repo.ReadCalls())
}

func (s *NotificationTestSuite) Test_NoReconciliationWithoutUpdatedRows() {
	n := signedNotification("settlement")
	n.TransactionID = "qris-unknown"

	resp, err := s.svc.HandleNotification(context.Background(), n)
	s.Require().NoError(err)
	s.Equal("lunas", resp.PaymentStatus)
	s.svc.Wait()
	s.Equal(0, s.repo.ReadCalls())
}

func (s *NotificationTestSuite) Test_UnderpaidLeavesStoreUntouched() {
	repo := memory.NewPaymentRepository()
	repo.AddTransaction(domain.Transaction{ID: "T2", TotalPrice: 100000})
	repo.AddPayment(domain.Payment{ID: "P1", TransactionID: "T2", QrisID: "qris-1", Amount: 50000, Status: domain.PaymentStatusPending})
	repo.AddPayment(domain.Payment{ID: "P2", TransactionID: "T2", QrisID: "qris-2", Amount: 50000, Status: domain.PaymentStatusPending})
	svc := newTestService(repo, &fakeGateway{}, testConfig())

	_, err := svc.HandleNotification(context.Background(), signedNotification("settlement"))
	s.Require().NoError(err)
	svc.Wait()

	s.Equal(1, repo.UpdateCalls())
	payments := repo.Payments()
	s.Equal(domain.PaymentStatusPaid, payments[0].Status)
	s.Equal(domain.PaymentStatusPending, payments[1].Status)

	fullyPaid, err := svc.reconcileTransaction(context.Background(), "T2")
	s.Require().NoError(err)
	s.False(fullyPaid)
}

func (s *NotificationTestSuite) Test_ReconcileFullyPaid() {
	s.repo.AddPayment(domain.Payment{ID: "P2", TransactionID: "T1", QrisID: "qris-2", Amount: 10000, Status: domain.PaymentStatusPaid})

	_, err := s.svc.HandleNotification(context.Background(), signedNotification("settlement"))
	s.Require().NoError(err)

	fullyPaid, err := s.svc.reconcileTransaction(context.Background(), "T1")
	s.Require().NoError(err)
	s.True(fullyPaid)
}

func (s *NotificationTestSuite) Test_ReconciliationFailureDoesNotFailWebhook() {
	s.repo.ReadErr = errors.New("read timeout")

	resp, err := s.svc.HandleNotification(context.Background(), signedNotification("settlement"))
	s.Require().NoError(err)
	s.Equal("ok", resp.Status)
	s.svc.Wait()

	_, err = s.svc.reconcileTransaction(context.Background(), "T1")
	s.Error(err)
}

func (s *NotificationTestSuite) Test_ReconciliationSurvivesRequestCancellation() {
	ctx, cancel := context.WithCancel(context.Background())

	_, err := s.svc.HandleNotification(ctx, signedNotification("settlement"))
	cancel()
	s.Require().NoError(err)
	s.svc.Wait()

	s.Equal(2, s.repo.ReadCalls())
}

func TestNotificationTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationTestSuite))
}
