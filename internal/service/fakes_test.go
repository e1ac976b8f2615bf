package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alimikegami/laundry-payment-service/config"
	"github.com/alimikegami/laundry-payment-service/internal/repository/memory"
	"github.com/midtrans/midtrans-go/coreapi"
)

type fakeGateway struct {
	mu       sync.Mutex
	requests []*coreapi.ChargeReq
	resp     *coreapi.ChargeResponse
	err      error
}

func (g *fakeGateway) Charge(ctx context.Context, req *coreapi.ChargeReq) (*coreapi.ChargeResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	if g.resp != nil {
		return g.resp, nil
	}

	return &coreapi.ChargeResponse{
		StatusCode:        "201",
		StatusMessage:     "QRIS transaction is created",
		TransactionID:     "qris-" + req.TransactionDetails.OrderID,
		OrderID:           req.TransactionDetails.OrderID,
		GrossAmount:       "50000.00",
		TransactionStatus: "pending",
		QRString:          "00020101021126",
		Actions: []coreapi.Action{
			{Name: "get-status", Method: "GET", URL: "https://api.sandbox.midtrans.com/v2/status"},
			{Name: "generate-qr-code", Method: "GET", URL: "https://api.sandbox.midtrans.com/v2/qris/qr-code"},
		},
	}, nil
}

func (g *fakeGateway) Requests() []*coreapi.ChargeReq {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.requests
}

var errNetwork = errors.New("dial tcp 10.0.0.1:443: i/o timeout")

const testServerKey = "K"

func testConfig() *config.Config {
	return &config.Config{
		MidtransConfig: config.MidtransConfig{
			ServerKey: testServerKey,
		},
		RecordStoreConfig: config.RecordStoreConfig{
			URL:        "https://project.supabase.co",
			ServiceKey: "service-role",
		},
	}
}

func newTestService(repo *memory.PaymentRepository, gateway *fakeGateway, conf *config.Config) *PaymentServiceImpl {
	svc := CreatePaymentService(repo, gateway, conf).(*PaymentServiceImpl)
	svc.now = func() time.Time {
		return time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
	}
	return svc
}
