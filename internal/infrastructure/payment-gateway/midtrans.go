package paymentgateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alimikegami/laundry-payment-service/config"
	circuitbreaker "github.com/alimikegami/laundry-payment-service/internal/infrastructure/circuit-breaker"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// Gateway submits a charge to the payment gateway. A response is returned
// whenever the gateway answered with a status_code, including rejections;
// err is reserved for transport and decoding failures.
type Gateway interface {
	Charge(ctx context.Context, req *coreapi.ChargeReq) (*coreapi.ChargeResponse, error)
}

type MidtransClient struct {
	client *coreapi.Client
	cb     *gobreaker.CircuitBreaker[*coreapi.ChargeResponse]
}

func CreateMidtransClient(conf config.MidtransConfig, client *http.Client) *MidtransClient {
	midtransClient := &coreapi.Client{}
	midtransClient.New(conf.ServerKey, conf.Environment())

	httpClient := midtrans.GetHttpClient(conf.Environment())
	httpClient.HttpClient = withBaseURL(client, conf)
	midtransClient.HttpClient = httpClient

	return &MidtransClient{
		client: midtransClient,
		cb:     circuitbreaker.CreateCircuitBreaker[*coreapi.ChargeResponse]("midtrans"),
	}
}

// Charge runs coreapi.ChargeTransaction. The SDK builds its own requests, so
// ctx only gates the call and is not propagated to the outbound request.
func (m *MidtransClient) Charge(ctx context.Context, req *coreapi.ChargeReq) (*coreapi.ChargeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return m.cb.Execute(func() (*coreapi.ChargeResponse, error) {
		resp, midtransErr := m.client.ChargeTransaction(req)
		if midtransErr == nil {
			return resp, nil
		}

		// The SDK decodes the body before reporting API errors, so a
		// rejection still carries status_code and status_message.
		if resp != nil && resp.StatusCode != "" {
			return resp, nil
		}

		return nil, fmt.Errorf("error calling midtrans charge: %s", midtransErr.Message)
	})
}

// withBaseURL returns client unchanged unless MIDTRANS_BASE_URL is set. The
// SDK derives the API host from the environment, so an override is applied
// at the transport level.
func withBaseURL(client *http.Client, conf config.MidtransConfig) *http.Client {
	if conf.BaseURL == "" {
		return client
	}

	base, err := url.Parse(conf.APIBaseURL())
	if err != nil || base.Host == "" {
		log.Error().Err(err).Str("component", "CreateMidtransClient").Str("base_url", conf.BaseURL).Msg("ignoring invalid MIDTRANS_BASE_URL")
		return client
	}

	next := client.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	overridden := *client
	overridden.Transport = &baseURLTransport{base: base, next: next}

	return &overridden
}

type baseURLTransport struct {
	base *url.URL
	next http.RoundTripper
}

func (t *baseURLTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = t.base.Scheme
	r.URL.Host = t.base.Host
	r.URL.Path = strings.TrimRight(t.base.Path, "/") + req.URL.Path
	r.Host = ""

	return t.next.RoundTrip(r)
}
