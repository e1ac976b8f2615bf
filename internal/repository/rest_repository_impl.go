package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alimikegami/laundry-payment-service/config"
	"github.com/alimikegami/laundry-payment-service/internal/domain"
	circuitbreaker "github.com/alimikegami/laundry-payment-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/laundry-payment-service/pkg/errs"
	"github.com/alimikegami/laundry-payment-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// RestPaymentRepository talks to the record store through its PostgREST
// endpoint (Supabase /rest/v1) using the service role key.
type RestPaymentRepository struct {
	baseURL    string
	serviceKey string
	client     *http.Client
	cb         *gobreaker.CircuitBreaker[[]byte]
}

func CreateRestPaymentRepository(conf config.RecordStoreConfig, client *http.Client) PaymentRepository {
	return &RestPaymentRepository{
		baseURL:    strings.TrimRight(conf.URL, "/") + "/rest/v1",
		serviceKey: conf.ServiceKey,
		client:     client,
		cb:         circuitbreaker.CreateCircuitBreaker[[]byte]("record-store"),
	}
}

// tanggal_bayar is left out: its JSON form depends on the column type and
// nothing downstream reads it back.
const paymentColumns = "id,transaksi_id,qris_id,jumlah,status"

type restError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (r *RestPaymentRepository) send(ctx context.Context, method, table string, query url.Values, body []byte) ([]byte, error) {
	req := httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/%s?%s", r.baseURL, table, query.Encode()),
		Method: method,
		Body:   body,
		Headers: map[string]string{
			"apikey":        r.serviceKey,
			"Authorization": "Bearer " + r.serviceKey,
			"Content-Type":  "application/json",
			"Accept":        "application/json",
			"Prefer":        "return=representation",
		},
	}

	return r.cb.Execute(func() ([]byte, error) {
		statusCode, respBody, err := httpclient.SendRequest(ctx, r.client, req)
		if err != nil {
			return nil, err
		}

		if statusCode < 200 || statusCode >= 300 {
			var restErr restError
			if err := json.Unmarshal(respBody, &restErr); err == nil && restErr.Message != "" {
				return nil, fmt.Errorf("record store returned %d: %s", statusCode, restErr.Message)
			}
			return nil, fmt.Errorf("record store returned %d: %s", statusCode, string(respBody))
		}

		return respBody, nil
	})
}

func (r *RestPaymentRepository) UpdatePaymentByQrisID(ctx context.Context, qrisID string, data domain.PaymentUpdate) (payments []domain.Payment, err error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payment update: %w", err)
	}

	query := url.Values{}
	query.Set("qris_id", "eq."+qrisID)
	query.Set("select", paymentColumns)

	respBody, err := r.send(ctx, http.MethodPatch, "pembayaran", query, body)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdatePaymentByQrisID").Msg("")
		return nil, err
	}

	if err := json.Unmarshal(respBody, &payments); err != nil {
		return nil, fmt.Errorf("error unmarshalling updated payments: %w", err)
	}

	return payments, nil
}

func (r *RestPaymentRepository) GetTransactionByID(ctx context.Context, id string) (data domain.Transaction, err error) {
	query := url.Values{}
	query.Set("id", "eq."+id)
	query.Set("select", "id,total_harga")

	respBody, err := r.send(ctx, http.MethodGet, "transaksi", query, nil)
	if err != nil {
		log.Error().Err(err).Str("component", "GetTransactionByID").Msg("")
		return data, err
	}

	var rows []domain.Transaction
	if err := json.Unmarshal(respBody, &rows); err != nil {
		return data, fmt.Errorf("error unmarshalling transaction: %w", err)
	}

	if len(rows) == 0 {
		return data, errs.ErrNotFound
	}

	return rows[0], nil
}

func (r *RestPaymentRepository) GetPaymentsByTransactionID(ctx context.Context, transactionID string, status domain.PaymentStatus) (payments []domain.Payment, err error) {
	query := url.Values{}
	query.Set("transaksi_id", "eq."+transactionID)
	query.Set("status", "eq."+string(status))
	query.Set("select", paymentColumns)

	respBody, err := r.send(ctx, http.MethodGet, "pembayaran", query, nil)
	if err != nil {
		log.Error().Err(err).Str("component", "GetPaymentsByTransactionID").Msg("")
		return nil, err
	}

	if err := json.Unmarshal(respBody, &payments); err != nil {
		return nil, fmt.Errorf("error unmarshalling payments: %w", err)
	}

	return payments, nil
}
